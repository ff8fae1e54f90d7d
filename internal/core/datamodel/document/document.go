package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is a stored file plus its metadata. Access is governed by
// permits: a user may read a document when one of their groups holds a
// permit for it.
type Document struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Filename    string    `gorm:"column:filename;uniqueIndex;not null"`
	ContentType string    `gorm:"column:content_type;not null"`
	Description *string   `gorm:"column:description"`
	Category    *string   `gorm:"column:category"`
	Content     []byte    `gorm:"column:content"`
	DatePosted  time.Time `gorm:"column:date_posted;not null"`
	UserPosted  uuid.UUID `gorm:"column:user_posted;type:uuid;not null"`
}

func (Document) TableName() string {
	return "documents"
}
