package permit

import (
	"time"

	"github.com/google/uuid"
)

// Permit grants a group access to a document. (group_id, document_id) is
// unique; members of the group inherit the grant.
type Permit struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	GroupID     uuid.UUID `gorm:"column:group_id;type:uuid;not null;uniqueIndex:idx_permits_group_document"`
	DocumentID  uuid.UUID `gorm:"column:document_id;type:uuid;not null;uniqueIndex:idx_permits_group_document"`
	DateCreated time.Time `gorm:"column:date_created;not null"`
}

func (Permit) TableName() string {
	return "permits"
}
