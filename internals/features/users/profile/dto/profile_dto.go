package dto

import (
	"github.com/google/uuid"

	incidentDto "escuelasegura_backend/internals/features/safety/incidents/dto"
	reportDto "escuelasegura_backend/internals/features/safety/reports/dto"
	"escuelasegura_backend/internals/features/users/profile/model"
)

// ================== REQUEST ==================

type LinkParentStudentRequest struct {
	ParentID  string `json:"parent_id" validate:"required,uuid"`
	StudentID string `json:"student_id" validate:"required,uuid"`
}

// ================== RESPONSE ==================

type StudentSummaryResponse struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	ProfileFullName string    `json:"profile_full_name"`
	ProfileGrade    *string   `json:"profile_grade"`
	ProfileSchoolID uuid.UUID `json:"profile_school_id"`
}

// StudentRecordResponse: expediente = profil student + timeline incident +
// report yang menyebut student di involved_student_ids.
type StudentRecordResponse struct {
	Student         StudentSummaryResponse         `json:"student"`
	Incidents       []incidentDto.IncidentResponse `json:"incidents"`
	InvolvedReports []reportDto.ReportResponse     `json:"involved_reports"`
}

// ================ CONVERSION =================

func ToStudentSummaryResponse(m *model.ProfileModel) StudentSummaryResponse {
	return StudentSummaryResponse{
		ProfileID:       m.ProfileID,
		ProfileFullName: m.ProfileFullName,
		ProfileGrade:    m.ProfileGrade,
		ProfileSchoolID: m.ProfileSchoolID,
	}
}

func ToStudentSummaryResponseList(models []model.ProfileModel) []StudentSummaryResponse {
	result := make([]StudentSummaryResponse, 0, len(models))
	for _, m := range models {
		result = append(result, ToStudentSummaryResponse(&m))
	}
	return result
}
