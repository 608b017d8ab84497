package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a store account: manager, employee, or clerk.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username  string         `gorm:"size:255;unique;not null" json:"username"`
	FullName  string         `gorm:"size:255;not null" json:"full_name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      enum.Role      `gorm:"size:50;not null;default:'clerk'" json:"role"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == enum.RoleManager
}
