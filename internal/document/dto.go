package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	documentDatamodel "github.com/docvault/docvault/internal/core/datamodel/document"
)

// DocumentDto is the external representation of a document. Content is only
// populated on single-document reads; listings carry metadata alone.
type DocumentDto struct {
	Id          *uuid.UUID `json:"id,omitempty"`
	Filename    *string    `json:"filename,omitempty"`
	ContentType *string    `json:"content_type,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Content     []byte     `json:"content,omitempty"`
	DatePosted  *time.Time `json:"date_posted,omitempty"`
	UserPosted  *uuid.UUID `json:"user_posted,omitempty"`
}

type Request struct {
	Principal core.Principal `json:"principal"`
	Id        *uuid.UUID     `json:"id,omitempty"`
	Item      *DocumentDto   `json:"item,omitempty"`
}

func FromDatamodel(d *documentDatamodel.Document) DocumentDto {
	return DocumentDto{
		Id:          &d.ID,
		Filename:    &d.Filename,
		ContentType: &d.ContentType,
		Description: d.Description,
		Category:    d.Category,
		DatePosted:  &d.DatePosted,
		UserPosted:  &d.UserPosted,
	}
}

func FromDatamodelWithContent(d *documentDatamodel.Document) DocumentDto {
	dto := FromDatamodel(d)
	dto.Content = d.Content
	return dto
}
