package group

import (
	"time"

	"github.com/google/uuid"
)

// Group is the persisted group record. A group exclusively owns its
// membership and permit rows; deleting a group deletes them in the same
// transaction.
type Group struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	DateCreated time.Time `gorm:"column:date_created;not null"`
}

func (Group) TableName() string {
	return "groups"
}
