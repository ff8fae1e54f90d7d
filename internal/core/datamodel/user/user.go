package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted user record. The password column holds a bcrypt
// hash; plaintext never reaches this struct.
type User struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;uniqueIndex;not null"`
	Password      string     `gorm:"column:password;not null"`
	Email         string     `gorm:"column:email;uniqueIndex;not null"`
	Role          string     `gorm:"column:role;not null;default:basic"`
	DateCreated   time.Time  `gorm:"column:date_created;not null"`
	DateActivated *time.Time `gorm:"column:date_activated"`
	DateLastLogin *time.Time `gorm:"column:date_last_login"`
}

func (User) TableName() string {
	return "users"
}
