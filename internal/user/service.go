package user

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/docvault/docvault/internal/core"
	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
	"github.com/docvault/docvault/internal/database"
)

// Service implements the user operations. Every operation checks the acting
// principal before touching the store, runs its repository calls inside one
// unit of work, and returns a three-way outcome: Fail for handled rejections
// with a descriptive message, Error after rollback with a generic one.
type Service struct {
	units      database.Opener
	bcryptCost int
	logger     *slog.Logger
}

func NewService(units database.Opener, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		units:      units,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) errored(uow database.UnitOfWork, op string, err error) core.Response[UserDto] {
	s.logger.Error("user service operation failed", "op", op, "error", err)
	if uow != nil {
		_ = uow.Rollback()
	}
	return core.Errored[UserDto]()
}

// Create stores a new user. Name, email, and password are required; name
// and email must not already be in use. Only the generated id is echoed
// back.
func (s *Service) Create(req Request) core.Response[UserDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[UserDto]("requesting user is not permitted to create users")
	}
	if req.Item == nil {
		return core.Fail[UserDto]("requested new user was not defined")
	}
	item := req.Item
	if item.Name == nil || *item.Name == "" ||
		item.Email == nil || *item.Email == "" ||
		item.Password == nil || *item.Password == "" {
		return core.Fail[UserDto]("name, email, and password are required to create a user")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "create", err)
	}
	defer uow.Dispose()

	nameCount, err := uow.Users().CountByColumnValue("name", *item.Name)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if nameCount > 0 {
		return core.Fail[UserDto]("requested new user name already in use")
	}
	emailCount, err := uow.Users().CountByColumnValue("email", *item.Email)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if emailCount > 0 {
		return core.Fail[UserDto]("requested new user email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*item.Password), s.bcryptCost)
	if err != nil {
		return s.errored(uow, "create", err)
	}

	role := core.RoleBasic
	if item.Role != nil {
		role = *item.Role
	}
	newUser := &userDatamodel.User{
		ID:          uuid.New(),
		Name:        *item.Name,
		Password:    string(hash),
		Email:       *item.Email,
		Role:        role,
		DateCreated: time.Now().UTC(),
	}
	newID, err := uow.Users().Create(newUser)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "create", err)
	}

	s.logger.Info("user created", "user_id", newID)
	return core.ItemOf(&UserDto{Id: &newID})
}

// ReadAll returns every user without password fields.
func (s *Service) ReadAll(req Request) core.Response[UserDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[UserDto]("requesting user is not permitted to list users")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_all", err)
	}
	defer uow.Dispose()

	users, err := uow.Users().ReadAll()
	if err != nil {
		return s.errored(uow, "read_all", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_all", err)
	}

	dtos := make([]UserDto, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, FromDatamodel(&u))
	}
	return core.ListOf(dtos)
}

func (s *Service) ReadById(req Request) core.Response[UserDto] {
	if req.Id == nil {
		return core.Fail[UserDto]("requested user id was not defined")
	}
	if !req.Principal.IsAdmin() && !req.Principal.IsSelf(*req.Id) {
		return core.Fail[UserDto]("requesting user is not permitted to read this user")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_id", err)
	}
	defer uow.Dispose()

	u, err := uow.Users().ReadById(*req.Id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return core.Fail[UserDto]("user was not found")
		}
		return s.errored(uow, "read_by_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_id", err)
	}

	dto := FromDatamodel(u)
	return core.ItemOf(&dto)
}

// UpdateById applies a sparse merge: only fields present in the request are
// written, absent fields stay untouched. Zero rows affected is a Fail.
func (s *Service) UpdateById(req Request) core.Response[UserDto] {
	if req.Item == nil {
		return core.Fail[UserDto]("requested user for update was not defined")
	}
	if req.Item.Id == nil {
		return core.Fail[UserDto]("requested user id for update was not defined")
	}
	if !req.Principal.IsAdmin() && !req.Principal.IsSelf(*req.Item.Id) {
		return core.Fail[UserDto]("requesting user is not permitted to update this user")
	}

	item := req.Item
	changes := database.Changes{}
	if item.Name != nil {
		changes["name"] = *item.Name
	}
	if item.Email != nil {
		changes["email"] = *item.Email
	}
	if item.Role != nil {
		// Role escalation stays an admin-only operation.
		if !req.Principal.IsAdmin() {
			return core.Fail[UserDto]("requesting user is not permitted to change roles")
		}
		changes["role"] = *item.Role
	}
	if item.DateActivated != nil {
		changes["date_activated"] = *item.DateActivated
	}
	if item.DateLastLogin != nil {
		changes["date_last_login"] = *item.DateLastLogin
	}
	if len(changes) == 0 {
		return core.Fail[UserDto]("no updatable user fields were provided")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "update_by_id", err)
	}
	defer uow.Dispose()

	updated, err := uow.Users().UpdateById(*item.Id, changes)
	if err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	if !updated {
		return core.Fail[UserDto]("user was not updated")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	return core.Done[UserDto]()
}

// UpdatePasswordById is isolated from the general update so a password
// change can never ride along unnoticed on another merge.
func (s *Service) UpdatePasswordById(req Request) core.Response[UserDto] {
	if req.Item == nil {
		return core.Fail[UserDto]("requested user for update was not defined")
	}
	if req.Item.Id == nil {
		return core.Fail[UserDto]("requested user id for update was not defined")
	}
	if req.Item.Password == nil || *req.Item.Password == "" {
		return core.Fail[UserDto]("requested new user password was not defined")
	}
	if !req.Principal.IsAdmin() && !req.Principal.IsSelf(*req.Item.Id) {
		return core.Fail[UserDto]("requesting user is not permitted to change this password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*req.Item.Password), s.bcryptCost)
	if err != nil {
		return s.errored(nil, "update_password_by_id", err)
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "update_password_by_id", err)
	}
	defer uow.Dispose()

	updated, err := uow.Users().UpdateById(*req.Item.Id, database.Changes{"password": string(hash)})
	if err != nil {
		return s.errored(uow, "update_password_by_id", err)
	}
	if !updated {
		return core.Fail[UserDto]("user password was not updated")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "update_password_by_id", err)
	}
	return core.Done[UserDto]()
}

// DeleteById removes a user and, in the same transaction, the memberships
// that reference them so no orphaned join rows survive.
func (s *Service) DeleteById(req Request) core.Response[UserDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[UserDto]("requesting user is not permitted to delete users")
	}
	if req.Id == nil {
		return core.Fail[UserDto]("requested user id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_id", err)
	}
	defer uow.Dispose()

	if _, err := uow.Memberships().DeleteByUserId(*req.Id); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	deleted, err := uow.Users().DeleteById(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if !deleted {
		// Dispose rolls the open unit back, abandoning the cascade.
		return core.Fail[UserDto]("user was not deleted")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}

	s.logger.Info("user deleted", "user_id", *req.Id)
	return core.Done[UserDto]()
}
