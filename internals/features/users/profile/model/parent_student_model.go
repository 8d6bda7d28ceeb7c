package model

import (
	"github.com/google/uuid"
)

// ParentStudentModel: link many-to-many parent ↔ student, tanpa payload.
// Menentukan anak mana yang boleh dilihat parent.
type ParentStudentModel struct {
	ParentStudentParentID  uuid.UUID `gorm:"column:parent_student_parent_id;type:uuid;primaryKey" json:"parent_student_parent_id"`
	ParentStudentStudentID uuid.UUID `gorm:"column:parent_student_student_id;type:uuid;primaryKey" json:"parent_student_student_id"`
}

func (ParentStudentModel) TableName() string {
	return "parent_students"
}
