package group

import (
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	groupDatamodel "github.com/docvault/docvault/internal/core/datamodel/group"
)

// GroupDto is the external representation of a group; nil fields are absent.
type GroupDto struct {
	Id          *uuid.UUID `json:"id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
}

type Request struct {
	Principal core.Principal `json:"principal"`
	Id        *uuid.UUID     `json:"id,omitempty"`
	Item      *GroupDto      `json:"item,omitempty"`
}

func FromDatamodel(g *groupDatamodel.Group) GroupDto {
	return GroupDto{
		Id:          &g.ID,
		Name:        &g.Name,
		Description: g.Description,
		DateCreated: &g.DateCreated,
	}
}
