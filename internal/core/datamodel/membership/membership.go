package membership

import (
	"time"

	"github.com/google/uuid"
)

// Membership links one user to one group. (user_id, group_id) is unique.
type Membership struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_memberships_user_group"`
	GroupID     uuid.UUID `gorm:"column:group_id;type:uuid;not null;uniqueIndex:idx_memberships_user_group"`
	DateCreated time.Time `gorm:"column:date_created;not null"`
}

func (Membership) TableName() string {
	return "memberships"
}
