package dto

import (
	"time"

	"github.com/google/uuid"

	"escuelasegura_backend/internals/features/academic/tasks/model"
)

// ================== REQUEST ==================

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=5"`
	Grade       string `json:"grade" validate:"required,min=1,max=20"`
	DueDate     string `json:"due_date" validate:"required"`
}

// ParseDueDate menerima tanggal "2006-01-02" atau RFC3339.
func (r *CreateTaskRequest) ParseDueDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.DueDate); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, r.DueDate)
}

type CreateSubmissionRequest struct {
	Content string  `json:"content" validate:"required,min=1"`
	FileURL *string `json:"file_url" validate:"omitempty,url,max=512"`
}

// GradeScore dibatasi interval tertutup [0,100]; -1/101 ditolak sebagai
// validation error SEBELUM menyentuh store, bukan store error.
type GradeSubmissionRequest struct {
	GradeScore *float64 `json:"grade_score" validate:"required,gte=0,lte=100"`
}

// ================== RESPONSE ==================

type TaskResponse struct {
	TaskID          uuid.UUID `json:"task_id"`
	TaskTeacherID   uuid.UUID `json:"task_teacher_id"`
	TaskTitle       string    `json:"task_title"`
	TaskDescription string    `json:"task_description"`
	TaskGrade       string    `json:"task_grade"`
	TaskDueDate     string    `json:"task_due_date"`
	TaskSchoolID    uuid.UUID `json:"task_school_id"`
	TaskCreatedAt   string    `json:"task_created_at"`
}

type TaskSubmissionResponse struct {
	TaskSubmissionID         uuid.UUID `json:"task_submission_id"`
	TaskSubmissionTaskID     uuid.UUID `json:"task_submission_task_id"`
	TaskSubmissionStudentID  uuid.UUID `json:"task_submission_student_id"`
	TaskSubmissionContent    string    `json:"task_submission_content"`
	TaskSubmissionFileURL    *string   `json:"task_submission_file_url"`
	TaskSubmissionGradeScore *float64  `json:"task_submission_grade_score"`
	TaskSubmissionCreatedAt  string    `json:"task_submission_created_at"`
}

// ================ CONVERSION =================

func ToTaskResponse(m *model.TaskModel) *TaskResponse {
	return &TaskResponse{
		TaskID:          m.TaskID,
		TaskTeacherID:   m.TaskTeacherID,
		TaskTitle:       m.TaskTitle,
		TaskDescription: m.TaskDescription,
		TaskGrade:       m.TaskGrade,
		TaskDueDate:     m.TaskDueDate.Format("2006-01-02"),
		TaskSchoolID:    m.TaskSchoolID,
		TaskCreatedAt:   m.TaskCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToTaskResponseList(models []model.TaskModel) []TaskResponse {
	result := make([]TaskResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToTaskResponse(&m))
	}
	return result
}

func ToTaskSubmissionResponse(m *model.TaskSubmissionModel) *TaskSubmissionResponse {
	return &TaskSubmissionResponse{
		TaskSubmissionID:         m.TaskSubmissionID,
		TaskSubmissionTaskID:     m.TaskSubmissionTaskID,
		TaskSubmissionStudentID:  m.TaskSubmissionStudentID,
		TaskSubmissionContent:    m.TaskSubmissionContent,
		TaskSubmissionFileURL:    m.TaskSubmissionFileURL,
		TaskSubmissionGradeScore: m.TaskSubmissionGradeScore,
		TaskSubmissionCreatedAt:  m.TaskSubmissionCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToTaskSubmissionResponseList(models []model.TaskSubmissionModel) []TaskSubmissionResponse {
	result := make([]TaskSubmissionResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToTaskSubmissionResponse(&m))
	}
	return result
}
