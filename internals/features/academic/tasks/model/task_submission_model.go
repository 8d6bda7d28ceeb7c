package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskSubmissionModel: maksimal satu submission per (task, student).
// Keunikan ditegakkan check-then-insert di view layer, BUKAN unique
// constraint — dua submit nyaris bersamaan bisa lolos dua-duanya
// (kelemahan terdokumentasi, jangan "diperbaiki" diam-diam).
// Field mutable setelah create: grade_score (staff only, 0..100).
type TaskSubmissionModel struct {
	TaskSubmissionID         uuid.UUID  `gorm:"column:task_submission_id;type:uuid;primaryKey" json:"task_submission_id"`
	TaskSubmissionTaskID     uuid.UUID  `gorm:"column:task_submission_task_id;type:uuid;not null;index" json:"task_submission_task_id"`
	TaskSubmissionStudentID  uuid.UUID  `gorm:"column:task_submission_student_id;type:uuid;not null;index" json:"task_submission_student_id"`
	TaskSubmissionContent    string     `gorm:"column:task_submission_content;type:text;not null" json:"task_submission_content"`
	TaskSubmissionFileURL    *string    `gorm:"column:task_submission_file_url;type:varchar(512)" json:"task_submission_file_url"`
	TaskSubmissionGradeScore *float64   `gorm:"column:task_submission_grade_score" json:"task_submission_grade_score"`
	TaskSubmissionCreatedAt  time.Time  `gorm:"column:task_submission_created_at;autoCreateTime" json:"task_submission_created_at"`
}

func (TaskSubmissionModel) TableName() string {
	return "task_submissions"
}

func (m *TaskSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskSubmissionID == uuid.Nil {
		m.TaskSubmissionID = uuid.New()
	}
	return nil
}
