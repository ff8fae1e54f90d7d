package permit

import (
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
)

// PermitDto is the external representation of a group-to-document grant.
type PermitDto struct {
	Id          *uuid.UUID `json:"id,omitempty"`
	GroupId     *uuid.UUID `json:"group_id,omitempty"`
	DocumentId  *uuid.UUID `json:"document_id,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
}

// Request is the union-style service request. Id names a permit for the
// point operations and the scoping group/document for the bulk deletes.
type Request struct {
	Principal core.Principal `json:"principal"`
	Id        *uuid.UUID     `json:"id,omitempty"`
	Item      *PermitDto     `json:"item,omitempty"`
}

func FromDatamodel(p *permitDatamodel.Permit) PermitDto {
	return PermitDto{
		Id:          &p.ID,
		GroupId:     &p.GroupID,
		DocumentId:  &p.DocumentID,
		DateCreated: &p.DateCreated,
	}
}
