// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;column:user_id"`

	UserEmail string `json:"user_email" gorm:"type:varchar(150);not null;uniqueIndex;column:user_email"`
	UserName  string `json:"user_name" gorm:"type:varchar(100);not null;column:user_name"`
	UserRole  string `json:"user_role" gorm:"type:varchar(10);not null;default:'student';column:user_role"` // student | teacher | editor | admin

	// Empty for Google-only accounts.
	UserPasswordHash *string `json:"-" gorm:"type:varchar(100);column:user_password_hash"`

	UserIsActive bool `json:"user_is_active" gorm:"not null;default:true;column:user_is_active"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
