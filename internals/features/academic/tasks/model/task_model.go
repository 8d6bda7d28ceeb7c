package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskModel: tugas dibuat teacher, di-scope ke satu grade dalam school-nya.
type TaskModel struct {
	TaskID          uuid.UUID `gorm:"column:task_id;type:uuid;primaryKey" json:"task_id"`
	TaskTeacherID   uuid.UUID `gorm:"column:task_teacher_id;type:uuid;not null;index" json:"task_teacher_id"`
	TaskTitle       string    `gorm:"column:task_title;type:varchar(255);not null" json:"task_title"`
	TaskDescription string    `gorm:"column:task_description;type:text;not null" json:"task_description"`
	TaskGrade       string    `gorm:"column:task_grade;type:varchar(20);not null;index" json:"task_grade"`
	TaskDueDate     time.Time `gorm:"column:task_due_date;not null" json:"task_due_date"`
	TaskSchoolID    uuid.UUID `gorm:"column:task_school_id;type:uuid;not null;index" json:"task_school_id"`
	TaskCreatedAt   time.Time `gorm:"column:task_created_at;autoCreateTime" json:"task_created_at"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

func (m *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskID == uuid.Nil {
		m.TaskID = uuid.New()
	}
	return nil
}
