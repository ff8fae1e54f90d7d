package document

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	documentDatamodel "github.com/docvault/docvault/internal/core/datamodel/document"
	"github.com/docvault/docvault/internal/database"
)

// Service implements document operations. Managers curate documents; basic
// users may only read what one of their groups holds a permit for.
type Service struct {
	units  database.Opener
	logger *slog.Logger
}

func NewService(units database.Opener, logger *slog.Logger) *Service {
	return &Service{units: units, logger: logger}
}

func (s *Service) errored(uow database.UnitOfWork, op string, err error) core.Response[DocumentDto] {
	s.logger.Error("document service operation failed", "op", op, "error", err)
	if uow != nil {
		_ = uow.Rollback()
	}
	return core.Errored[DocumentDto]()
}

// Create stores a new document. Filename, content type, and content are
// required; the filename must be unique. The poster is recorded from the
// acting principal, never from the request body.
func (s *Service) Create(req Request) core.Response[DocumentDto] {
	if !req.Principal.IsManager() {
		return core.Fail[DocumentDto]("requesting user is not permitted to post documents")
	}
	if req.Item == nil {
		return core.Fail[DocumentDto]("requested new document was not defined")
	}
	item := req.Item
	if item.Filename == nil || *item.Filename == "" ||
		item.ContentType == nil || *item.ContentType == "" ||
		len(item.Content) == 0 {
		return core.Fail[DocumentDto]("filename, content type, and content are required to post a document")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "create", err)
	}
	defer uow.Dispose()

	filenameCount, err := uow.Documents().CountByColumnValue("filename", *item.Filename)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if filenameCount > 0 {
		return core.Fail[DocumentDto]("requested document filename already in use")
	}

	newDocument := &documentDatamodel.Document{
		ID:          uuid.New(),
		Filename:    *item.Filename,
		ContentType: *item.ContentType,
		Description: item.Description,
		Category:    item.Category,
		Content:     item.Content,
		DatePosted:  time.Now().UTC(),
		UserPosted:  req.Principal.ID,
	}
	newID, err := uow.Documents().Create(newDocument)
	if err != nil {
		return s.errored(uow, "create", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "create", err)
	}

	s.logger.Info("document posted", "document_id", newID, "filename", *item.Filename)
	return core.ItemOf(&DocumentDto{Id: &newID})
}

// ReadAll lists document metadata. Managers see everything; other users see
// only the documents their group permits cover.
func (s *Service) ReadAll(req Request) core.Response[DocumentDto] {
	if req.Principal.IsZero() {
		return core.Fail[DocumentDto]("requesting user was not defined")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_all", err)
	}
	defer uow.Dispose()

	var documents []documentDatamodel.Document
	if req.Principal.IsManager() {
		documents, err = uow.Documents().ReadAll()
	} else {
		documents, err = uow.Documents().ReadAllForUser(req.Principal.ID)
	}
	if err != nil {
		return s.errored(uow, "read_all", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_all", err)
	}

	dtos := make([]DocumentDto, 0, len(documents))
	for _, d := range documents {
		dtos = append(dtos, FromDatamodel(&d))
	}
	return core.ListOf(dtos)
}

// ReadById returns one document with content. Non-managers must belong to a
// group holding a permit for it.
func (s *Service) ReadById(req Request) core.Response[DocumentDto] {
	if req.Id == nil {
		return core.Fail[DocumentDto]("requested document id was not defined")
	}
	if req.Principal.IsZero() {
		return core.Fail[DocumentDto]("requesting user was not defined")
	}

	uow, err := s.units.Begin(true)
	if err != nil {
		return s.errored(nil, "read_by_id", err)
	}
	defer uow.Dispose()

	if !req.Principal.IsManager() {
		permitted, err := uow.Permits().CountForUserAndDocument(req.Principal.ID, *req.Id)
		if err != nil {
			return s.errored(uow, "read_by_id", err)
		}
		if permitted == 0 {
			return core.Fail[DocumentDto]("requesting user is not permitted to read this document")
		}
	}

	d, err := uow.Documents().ReadById(*req.Id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return core.Fail[DocumentDto]("document was not found")
		}
		return s.errored(uow, "read_by_id", err)
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "read_by_id", err)
	}

	dto := FromDatamodelWithContent(d)
	return core.ItemOf(&dto)
}

// UpdateById applies a sparse merge of document metadata. Content is
// immutable after posting; a changed file is a new document.
func (s *Service) UpdateById(req Request) core.Response[DocumentDto] {
	if !req.Principal.IsManager() {
		return core.Fail[DocumentDto]("requesting user is not permitted to update documents")
	}
	if req.Item == nil {
		return core.Fail[DocumentDto]("requested document for update was not defined")
	}
	if req.Item.Id == nil {
		return core.Fail[DocumentDto]("requested document id for update was not defined")
	}

	changes := database.Changes{}
	if req.Item.Filename != nil {
		changes["filename"] = *req.Item.Filename
	}
	if req.Item.ContentType != nil {
		changes["content_type"] = *req.Item.ContentType
	}
	if req.Item.Description != nil {
		changes["description"] = *req.Item.Description
	}
	if req.Item.Category != nil {
		changes["category"] = *req.Item.Category
	}
	if len(changes) == 0 {
		return core.Fail[DocumentDto]("no updatable document fields were provided")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "update_by_id", err)
	}
	defer uow.Dispose()

	updated, err := uow.Documents().UpdateById(*req.Item.Id, changes)
	if err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	if !updated {
		return core.Fail[DocumentDto]("document was not updated")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "update_by_id", err)
	}
	return core.Done[DocumentDto]()
}

// DeleteById removes a document and its permits in one transaction.
func (s *Service) DeleteById(req Request) core.Response[DocumentDto] {
	if !req.Principal.IsManager() {
		return core.Fail[DocumentDto]("requesting user is not permitted to delete documents")
	}
	if req.Id == nil {
		return core.Fail[DocumentDto]("requested document id was not defined")
	}

	uow, err := s.units.Begin(false)
	if err != nil {
		return s.errored(nil, "delete_by_id", err)
	}
	defer uow.Dispose()

	if _, err := uow.Permits().DeleteByDocumentId(*req.Id); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	deleted, err := uow.Documents().DeleteById(*req.Id)
	if err != nil {
		return s.errored(uow, "delete_by_id", err)
	}
	if !deleted {
		return core.Fail[DocumentDto]("document was not deleted")
	}
	if err := uow.Commit(); err != nil {
		return s.errored(uow, "delete_by_id", err)
	}

	s.logger.Info("document deleted", "document_id", *req.Id)
	return core.Done[DocumentDto]()
}
