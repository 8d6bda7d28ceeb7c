package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel menyimpan kredensial login. Data role/school tinggal di profiles
// (satu profile per user, profile_id = user_id).
type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);uniqueIndex;not null" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(255);not null" json:"-"`
	UserCreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
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
