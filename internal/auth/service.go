package auth

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docvault/docvault/internal/database"
)

// Service authenticates credentials and issues session tokens. Login
// stamping (date_last_login, and date_activated on first login) happens in
// the same unit of work as the credential lookup.
type Service struct {
	units          database.Opener
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(units database.Opener, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		units:          units,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate verifies an email/password pair and returns a signed session
// token. Credential failures are indistinguishable by design: a missing
// user and a wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(dto SessionDto) (TokenDto, error) {
	if err := dto.Validate(); err != nil {
		return TokenDto{}, err
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		s.logger.Error("failed to begin session unit of work", "error", err)
		return TokenDto{}, err
	}
	defer uow.Dispose()

	u, err := uow.Users().ReadByEmail(dto.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return TokenDto{}, ErrInvalidCredentials
		}
		s.logger.Error("failed to read user for session", "error", err)
		return TokenDto{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return TokenDto{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	changes := database.Changes{"date_last_login": now}
	if u.DateActivated == nil {
		changes["date_activated"] = now
	}
	if _, err := uow.Users().UpdateById(u.ID, changes); err != nil {
		s.logger.Error("failed to stamp login", "error", err, "user_id", u.ID)
		return TokenDto{}, err
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error("failed to commit session unit of work", "error", err)
		return TokenDto{}, err
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID.String(), u.Name, u.Role)
	if err != nil {
		s.logger.Error("failed to sign session token", "error", err, "user_id", u.ID)
		return TokenDto{}, err
	}

	s.logger.Info("session created", "user_id", u.ID)
	return TokenDto{Token: token}, nil
}

// ValidateToken verifies a session token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}
