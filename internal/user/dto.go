package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
)

// UserDto is the external representation of a user. Fields are pointers so
// that "absent" is distinguishable from a zero value: on update, nil means
// leave the stored column untouched. The password is write-only; reads never
// populate it.
type UserDto struct {
	Id            *uuid.UUID `json:"id,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Password      *string    `json:"password,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Role          *string    `json:"role,omitempty"`
	DateCreated   *time.Time `json:"date_created,omitempty"`
	DateActivated *time.Time `json:"date_activated,omitempty"`
	DateLastLogin *time.Time `json:"date_last_login,omitempty"`
}

// Request is the union-style service request: operations use the fields
// they need and leave the rest absent.
type Request struct {
	Principal core.Principal `json:"principal"`
	Id        *uuid.UUID     `json:"id,omitempty"`
	Item      *UserDto       `json:"item,omitempty"`
}

// FromDatamodel maps a stored user to its external shape. The password hash
// is omitted by construction, not redacted afterwards.
func FromDatamodel(u *userDatamodel.User) UserDto {
	return UserDto{
		Id:            &u.ID,
		Name:          &u.Name,
		Email:         &u.Email,
		Role:          &u.Role,
		DateCreated:   &u.DateCreated,
		DateActivated: u.DateActivated,
		DateLastLogin: u.DateLastLogin,
	}
}
