package dto

import (
	"github.com/google/uuid"

	"escuelasegura_backend/internals/features/safety/incidents/model"
)

// ================== REQUEST ==================

type CreateIncidentRequest struct {
	StudentID   string `json:"student_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,oneof=conduct academic attendance positive"`
	Severity    string `json:"severity" validate:"required,oneof=mild moderate severe"`
	Description string `json:"description" validate:"required,min=5"`
}

// ================== RESPONSE ==================

type IncidentResponse struct {
	IncidentID          uuid.UUID `json:"incident_id"`
	IncidentStudentID   uuid.UUID `json:"incident_student_id"`
	IncidentCreatedBy   uuid.UUID `json:"incident_created_by"`
	IncidentType        string    `json:"incident_type"`
	IncidentSeverity    string    `json:"incident_severity"`
	IncidentDescription string    `json:"incident_description"`
	IncidentSchoolID    uuid.UUID `json:"incident_school_id"`
	IncidentCreatedAt   string    `json:"incident_created_at"`
}

// ================ CONVERSION =================

func ToIncidentResponse(m *model.IncidentModel) *IncidentResponse {
	return &IncidentResponse{
		IncidentID:          m.IncidentID,
		IncidentStudentID:   m.IncidentStudentID,
		IncidentCreatedBy:   m.IncidentCreatedBy,
		IncidentType:        m.IncidentType,
		IncidentSeverity:    m.IncidentSeverity,
		IncidentDescription: m.IncidentDescription,
		IncidentSchoolID:    m.IncidentSchoolID,
		IncidentCreatedAt:   m.IncidentCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToIncidentResponseList(models []model.IncidentModel) []IncidentResponse {
	result := make([]IncidentResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToIncidentResponse(&m))
	}
	return result
}
