package auth

// SessionDto is the transport shape for login requests.
type SessionDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenDto is the login response payload.
type TokenDto struct {
	Token string `json:"token"`
}

// ValidationError is a simple validation failure from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d SessionDto) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}
