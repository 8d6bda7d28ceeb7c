package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel: satu baris per identitas. profile_id = user_id (subject dari
// identity provider). Role & school immutable setelah create — tidak ada
// edit flow.
type ProfileModel struct {
	ProfileID        uuid.UUID `gorm:"column:profile_id;type:uuid;primaryKey" json:"profile_id"`
	ProfileRole      string    `gorm:"column:profile_role;type:varchar(20);not null;index" json:"profile_role"`
	ProfileFullName  string    `gorm:"column:profile_full_name;type:varchar(255);not null" json:"profile_full_name"`
	ProfileSchoolID  uuid.UUID `gorm:"column:profile_school_id;type:uuid;not null;index" json:"profile_school_id"`
	ProfileGrade     *string   `gorm:"column:profile_grade;type:varchar(20)" json:"profile_grade"` // wajib iff role=student
	ProfileCreatedAt time.Time `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
