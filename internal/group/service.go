package group

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	groupDatamodel "github.com/docvault/docvault/internal/core/datamodel/group"
	"github.com/docvault/docvault/internal/database"
)

// Service implements group operations. A group owns its memberships and
// permits, so deletion removes all three inside one unit of work.
type Service struct {
	units  database.Opener
	logger *slog.Logger
}

func NewService(units database.Opener, logger *slog.Logger) *Service {
	return &Service{units: units, logger: logger}
}

func (s *Service) errored(uow database.UnitOfWork, op string, err error) core.Response[GroupDto] {
	s.logger.Error("group service operation failed", "op", op, "error", err)
	if uow != nil {
		_ = uow.Rollback()
	}
	return core.Errored[GroupDto]()
}

// Create stores a new group. The name is required and must be unique,
// symmetric to the user name/email checks.
func (s *Service) Create(req Request) core.Response[GroupDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[GroupDto]("requesting user is not permitted to create groups")
	}
	if req.Item == nil {
		return core.Fail[GroupDto]("requested new group was not defined")
	}
	if req.Item.Name == nil || *req.Item.Name == "" {
		return core.Fail[GroupDto]("name is required to create a group")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "create", err)
	}
	defer uow.Dispose()

	nameCount, err := uow.Groups().CountByColumnValue("name", *req.Item.Name)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if nameCount > 0 {
		return core.Fail[GroupDto]("requested new group name already in use")
	}

	newGroup := &groupDatamodel.Group{
		ID:          uuid.New(),
		Name:        *req.Item.Name,
		Description: req.Item.Description,
		DateCreated: time.Now().UTC(),
	}
	newID, err := uow.Groups().Create(newGroup)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "create", err)
	}

	s.logger.Info("group created", "group_id", newID)
	return core.ItemOf(&GroupDto{Id: &newID})
}

func (s *Service) ReadAll(req Request) core.Response[GroupDto] {
	if !req.Principal.IsManager() {
		return core.Fail[GroupDto]("requesting user is not permitted to list groups")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_all", err)
	}
	defer uow.Dispose()

	groups, err := uow.Groups().ReadAll()
	if err != nil {
		return s.errored(uow, "read_all", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_all", err)
	}

	dtos := make([]GroupDto, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, FromDatamodel(&g))
	}
	return core.ListOf(dtos)
}

func (s *Service) ReadById(req Request) core.Response[GroupDto] {
	if req.Id == nil {
		return core.Fail[GroupDto]("requested group id was not defined")
	}
	if !req.Principal.IsManager() {
		return core.Fail[GroupDto]("requesting user is not permitted to read groups")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_id", err)
	}
	defer uow.Dispose()

	g, err := uow.Groups().ReadById(*req.Id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return core.Fail[GroupDto]("group was not found")
		}
		return s.errored(uow, "read_by_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_id", err)
	}

	dto := FromDatamodel(g)
	return core.ItemOf(&dto)
}

// UpdateById applies a sparse merge of name and description.
func (s *Service) UpdateById(req Request) core.Response[GroupDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[GroupDto]("requesting user is not permitted to update groups")
	}
	if req.Item == nil {
		return core.Fail[GroupDto]("requested group for update was not defined")
	}
	if req.Item.Id == nil {
		return core.Fail[GroupDto]("requested group id for update was not defined")
	}

	changes := database.Changes{}
	if req.Item.Name != nil {
		changes["name"] = *req.Item.Name
	}
	if req.Item.Description != nil {
		changes["description"] = *req.Item.Description
	}
	if len(changes) == 0 {
		return core.Fail[GroupDto]("no updatable group fields were provided")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "update_by_id", err)
	}
	defer uow.Dispose()

	updated, err := uow.Groups().UpdateById(*req.Item.Id, changes)
	if err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	if !updated {
		return core.Fail[GroupDto]("group was not updated")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	return core.Done[GroupDto]()
}

// DeleteById removes a group together with its memberships and permits in
// one transaction. The dependent deletes succeed even when no rows match;
// only a missing group itself is a Fail.
func (s *Service) DeleteById(req Request) core.Response[GroupDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[GroupDto]("requesting user is not permitted to delete groups")
	}
	if req.Id == nil {
		return core.Fail[GroupDto]("requested group id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_id", err)
	}
	defer uow.Dispose()

	if _, err := uow.Memberships().DeleteByGroupId(*req.Id); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if _, err := uow.Permits().DeleteByGroupId(*req.Id); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	deleted, err := uow.Groups().DeleteById(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if !deleted {
		return core.Fail[GroupDto]("group was not deleted")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}

	s.logger.Info("group deleted", "group_id", *req.Id)
	return core.Done[GroupDto]()
}
