package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// School adalah tenant boundary — semua entitas lain di-scope ke satu school.
type SchoolModel struct {
	SchoolID        uuid.UUID `gorm:"column:school_id;type:uuid;primaryKey" json:"school_id"`
	SchoolName      string    `gorm:"column:school_name;type:varchar(255);not null" json:"school_name"`
	SchoolAddress   *string   `gorm:"column:school_address;type:text" json:"school_address"`
	SchoolCreatedAt time.Time `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
}

func (SchoolModel) TableName() string {
	return "schools"
}

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
