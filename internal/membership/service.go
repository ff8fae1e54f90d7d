package membership

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	membershipDatamodel "github.com/docvault/docvault/internal/core/datamodel/membership"
	"github.com/docvault/docvault/internal/database"
)

// Service implements membership operations, including the bulk deletes used
// when a group or user is removed. The single-record delete treats zero
// affected rows as a Fail; the bulk deletes treat zero as Success because a
// cascade over an empty set is a valid result.
type Service struct {
	units  database.Opener
	logger *slog.Logger
}

func NewService(units database.Opener, logger *slog.Logger) *Service {
	return &Service{units: units, logger: logger}
}

func (s *Service) errored(uow database.UnitOfWork, op string, err error) core.Response[MembershipDto] {
	s.logger.Error("membership service operation failed", "op", op, "error", err)
	if uow != nil {
		_ = uow.Rollback()
	}
	return core.Errored[MembershipDto]()
}

// Create links a user to a group. Both sides must exist and the pair must
// not already be linked.
func (s *Service) Create(req Request) core.Response[MembershipDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[MembershipDto]("requesting user is not permitted to create memberships")
	}
	if req.Item == nil {
		return core.Fail[MembershipDto]("requested new membership was not defined")
	}
	if req.Item.UserId == nil || req.Item.GroupId == nil {
		return core.Fail[MembershipDto]("user id and group id are required to create a membership")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "create", err)
	}
	defer uow.Dispose()

	userCount, err := uow.Users().CountByColumnValue("id", *req.Item.UserId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if userCount == 0 {
		return core.Fail[MembershipDto]("requested membership user does not exist")
	}
	groupCount, err := uow.Groups().CountByColumnValue("id", *req.Item.GroupId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if groupCount == 0 {
		return core.Fail[MembershipDto]("requested membership group does not exist")
	}
	existing, err := uow.Memberships().CountByUserAndGroup(*req.Item.UserId, *req.Item.GroupId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if existing > 0 {
		return core.Fail[MembershipDto]("requested user is already a member of the group")
	}

	newMembership := &membershipDatamodel.Membership{
		ID:          uuid.New(),
		UserID:      *req.Item.UserId,
		GroupID:     *req.Item.GroupId,
		DateCreated: time.Now().UTC(),
	}
	newID, err := uow.Memberships().Create(newMembership)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "create", err)
	}

	s.logger.Info("membership created",
		"membership_id", newID,
		"user_id", *req.Item.UserId,
		"group_id", *req.Item.GroupId)
	return core.ItemOf(&MembershipDto{Id: &newID})
}

func (s *Service) ReadAll(req Request) core.Response[MembershipDto] {
	if !req.Principal.IsManager() {
		return core.Fail[MembershipDto]("requesting user is not permitted to list memberships")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_all", err)
	}
	defer uow.Dispose()

	memberships, err := uow.Memberships().ReadAll()
	if err != nil {
		return s.errored(uow, "read_all", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_all", err)
	}

	dtos := make([]MembershipDto, 0, len(memberships))
	for _, m := range memberships {
		dtos = append(dtos, FromDatamodel(&m))
	}
	return core.ListOf(dtos)
}

// ReadByGroupId lists the memberships of one group; req.Id is the group id.
func (s *Service) ReadByGroupId(req Request) core.Response[MembershipDto] {
	if req.Id == nil {
		return core.Fail[MembershipDto]("requested group id was not defined")
	}
	if !req.Principal.IsManager() {
		return core.Fail[MembershipDto]("requesting user is not permitted to list memberships")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_group_id", err)
	}
	defer uow.Dispose()

	memberships, err := uow.Memberships().ReadByGroupId(*req.Id)
	if err != nil {
		return s.errored(uow, "read_by_group_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_group_id", err)
	}

	dtos := make([]MembershipDto, 0, len(memberships))
	for _, m := range memberships {
		dtos = append(dtos, FromDatamodel(&m))
	}
	return core.ListOf(dtos)
}

// ReadByUserId lists the memberships of one user; req.Id is the user id.
func (s *Service) ReadByUserId(req Request) core.Response[MembershipDto] {
	if req.Id == nil {
		return core.Fail[MembershipDto]("requested user id was not defined")
	}
	if !req.Principal.IsManager() && !req.Principal.IsSelf(*req.Id) {
		return core.Fail[MembershipDto]("requesting user is not permitted to list these memberships")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_user_id", err)
	}
	defer uow.Dispose()

	memberships, err := uow.Memberships().ReadByUserId(*req.Id)
	if err != nil {
		return s.errored(uow, "read_by_user_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_user_id", err)
	}

	dtos := make([]MembershipDto, 0, len(memberships))
	for _, m := range memberships {
		dtos = append(dtos, FromDatamodel(&m))
	}
	return core.ListOf(dtos)
}

func (s *Service) DeleteById(req Request) core.Response[MembershipDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[MembershipDto]("requesting user is not permitted to delete memberships")
	}
	if req.Id == nil {
		return core.Fail[MembershipDto]("requested membership id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_id", err)
	}
	defer uow.Dispose()

	deleted, err := uow.Memberships().DeleteById(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if !deleted {
		return core.Fail[MembershipDto]("membership was not deleted")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	return core.Done[MembershipDto]()
}

// DeleteByGroupId removes every membership of a group; req.Id is the group
// id. Zero matching rows is Success, which keeps the operation safe to call
// from cascading group deletion.
func (s *Service) DeleteByGroupId(req Request) core.Response[MembershipDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[MembershipDto]("requesting user is not permitted to delete memberships")
	}
	if req.Id == nil {
		return core.Fail[MembershipDto]("requested group id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_group_id", err)
	}
	defer uow.Dispose()

	affected, err := uow.Memberships().DeleteByGroupId(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_group_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_group_id", err)
	}

	s.logger.Info("memberships deleted for group", "group_id", *req.Id, "affected", affected)
	return core.Done[MembershipDto]()
}

// DeleteByUserId removes every membership of a user; req.Id is the user id.
// Zero matching rows is Success.
func (s *Service) DeleteByUserId(req Request) core.Response[MembershipDto] {
	if !req.Principal.IsAdmin() {
		return core.Fail[MembershipDto]("requesting user is not permitted to delete memberships")
	}
	if req.Id == nil {
		return core.Fail[MembershipDto]("requested user id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_user_id", err)
	}
	defer uow.Dispose()

	affected, err := uow.Memberships().DeleteByUserId(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_user_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_user_id", err)
	}

	s.logger.Info("memberships deleted for user", "user_id", *req.Id, "affected", affected)
	return core.Done[MembershipDto]()
}
