package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal/core"
	membershipDatamodel "github.com/docvault/docvault/internal/core/datamodel/membership"
)

// MembershipDto is the external representation of a user-group link.
type MembershipDto struct {
	Id          *uuid.UUID `json:"id,omitempty"`
	UserId      *uuid.UUID `json:"user_id,omitempty"`
	GroupId     *uuid.UUID `json:"group_id,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
}

// Request is the union-style service request. Id names a membership for the
// point operations and the scoping user/group for the bulk deletes.
type Request struct {
	Principal core.Principal `json:"principal"`
	Id        *uuid.UUID     `json:"id,omitempty"`
	Item      *MembershipDto `json:"item,omitempty"`
}

func FromDatamodel(m *membershipDatamodel.Membership) MembershipDto {
	return MembershipDto{
		Id:          &m.ID,
		UserId:      &m.UserID,
		GroupId:     &m.GroupID,
		DateCreated: &m.DateCreated,
	}
}
