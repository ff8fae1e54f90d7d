package permit

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
	"github.com/docvault/docvault/internal/database"
)

// Service implements permit operations. A permit lets every member of its
// group read the referenced document.
type Service struct {
	units  database.Opener
	logger *slog.Logger
}

func NewService(units database.Opener, logger *slog.Logger) *Service {
	return &Service{units: units, logger: logger}
}

func (s *Service) errored(uow database.UnitOfWork, op string, err error) core.Response[PermitDto] {
	s.logger.Error("permit service operation failed", "op", op, "error", err)
	if uow != nil {
		_ = uow.Rollback()
	}
	return core.Errored[PermitDto]()
}

// Create grants a group access to a document. Both sides must exist and the
// grant must not already be present.
func (s *Service) Create(req Request) core.Response[PermitDto] {
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to create permits")
	}
	if req.Item == nil {
		return core.Fail[PermitDto]("requested new permit was not defined")
	}
	if req.Item.GroupId == nil || req.Item.DocumentId == nil {
		return core.Fail[PermitDto]("group id and document id are required to create a permit")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "create", err)
	}
	defer uow.Dispose()

	groupCount, err := uow.Groups().CountByColumnValue("id", *req.Item.GroupId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if groupCount == 0 {
		return core.Fail[PermitDto]("requested permit group does not exist")
	}
	documentCount, err := uow.Documents().CountByColumnValue("id", *req.Item.DocumentId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if documentCount == 0 {
		return core.Fail[PermitDto]("requested permit document does not exist")
	}
	existing, err := uow.Permits().CountByGroupAndDocument(*req.Item.GroupId, *req.Item.DocumentId)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if existing > 0 {
		return core.Fail[PermitDto]("requested permit already exists for the group and document")
	}

	newPermit := &permitDatamodel.Permit{
		ID:          uuid.New(),
		GroupID:     *req.Item.GroupId,
		DocumentID:  *req.Item.DocumentId,
		DateCreated: time.Now().UTC(),
	}
	newID, err := uow.Permits().Create(newPermit)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "create", err)
	}

	s.logger.Info("permit created",
		"permit_id", newID,
		"group_id", *req.Item.GroupId,
		"document_id", *req.Item.DocumentId)
	return core.ItemOf(&PermitDto{Id: &newID})
}

func (s *Service) ReadAll(req Request) core.Response[PermitDto] {
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to list permits")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_all", err)
	}
	defer uow.Dispose()

	permits, err := uow.Permits().ReadAll()
	if err != nil {
		return s.errored(uow, "read_all", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_all", err)
	}

	dtos := make([]PermitDto, 0, len(permits))
	for _, p := range permits {
		dtos = append(dtos, FromDatamodel(&p))
	}
	return core.ListOf(dtos)
}

func (s *Service) ReadById(req Request) core.Response[PermitDto] {
	if req.Id == nil {
		return core.Fail[PermitDto]("requested permit id was not defined")
	}
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to read permits")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_id", err)
	}
	defer uow.Dispose()

	p, err := uow.Permits().ReadById(*req.Id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return core.Fail[PermitDto]("permit was not found")
		}
		return s.errored(uow, "read_by_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_id", err)
	}

	dto := FromDatamodel(p)
	return core.ItemOf(&dto)
}

func (s *Service) DeleteById(req Request) core.Response[PermitDto] {
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to delete permits")
	}
	if req.Id == nil {
		return core.Fail[PermitDto]("requested permit id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_id", err)
	}
	defer uow.Dispose()

	deleted, err := uow.Permits().DeleteById(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if !deleted {
		return core.Fail[PermitDto]("permit was not deleted")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	return core.Done[PermitDto]()
}

// DeleteByGroupId removes every permit held by a group; req.Id is the group
// id. Zero matching rows is Success, cascade-safe.
func (s *Service) DeleteByGroupId(req Request) core.Response[PermitDto] {
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to delete permits")
	}
	if req.Id == nil {
		return core.Fail[PermitDto]("requested group id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_group_id", err)
	}
	defer uow.Dispose()

	affected, err := uow.Permits().DeleteByGroupId(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_group_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_group_id", err)
	}

	s.logger.Info("permits deleted for group", "group_id", *req.Id, "affected", affected)
	return core.Done[PermitDto]()
}

// DeleteByDocumentId removes every permit on a document; req.Id is the
// document id. Zero matching rows is Success, cascade-safe.
func (s *Service) DeleteByDocumentId(req Request) core.Response[PermitDto] {
	if !req.Principal.IsManager() {
		return core.Fail[PermitDto]("requesting user is not permitted to delete permits")
	}
	if req.Id == nil {
		return core.Fail[PermitDto]("requested document id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_document_id", err)
	}
	defer uow.Dispose()

	affected, err := uow.Permits().DeleteByDocumentId(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_document_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_document_id", err)
	}

	s.logger.Info("permits deleted for document", "document_id", *req.Id, "affected", affected)
	return core.Done[PermitDto]()
}
