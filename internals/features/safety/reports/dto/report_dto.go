package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"escuelasegura_backend/internals/features/safety/reports/model"
)

// ================== REQUEST ==================

type CreateReportRequest struct {
	IsAnonymous        bool     `json:"is_anonymous"`
	Category           string   `json:"category" validate:"required,oneof=bullying verbal physical sexual cyberbullying theft other"`
	Title              string   `json:"title" validate:"required,min=3,max=255"`
	Description        string   `json:"description" validate:"required,min=10"`
	Location           *string  `json:"location" validate:"omitempty,max=255"`
	InvolvedStudentIDs []string `json:"involved_student_ids" validate:"omitempty,dive,uuid"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review resolved dismissed"`
}

// ================== RESPONSE ==================

type ReportResponse struct {
	ReportID                 uuid.UUID  `json:"report_id"`
	ReportReporterID         *uuid.UUID `json:"report_reporter_id"`
	ReportIsAnonymous        bool       `json:"report_is_anonymous"`
	ReportCategory           string     `json:"report_category"`
	ReportTitle              string     `json:"report_title"`
	ReportDescription        string     `json:"report_description"`
	ReportLocation           *string    `json:"report_location"`
	ReportStatus             string     `json:"report_status"`
	ReportInvolvedStudentIDs []string   `json:"report_involved_student_ids"`
	ReportSchoolID           uuid.UUID  `json:"report_school_id"`
	ReportCreatedAt          string     `json:"report_created_at"`
}

// ================ CONVERSION =================

func (r *CreateReportRequest) ToModel() *model.ReportModel {
	return &model.ReportModel{
		ReportIsAnonymous:        r.IsAnonymous,
		ReportCategory:           r.Category,
		ReportTitle:              r.Title,
		ReportDescription:        r.Description,
		ReportLocation:           r.Location,
		ReportInvolvedStudentIDs: datatypes.NewJSONSlice(r.InvolvedStudentIDs),
	}
}

func ToReportResponse(m *model.ReportModel) *ReportResponse {
	return &ReportResponse{
		ReportID:                 m.ReportID,
		ReportReporterID:         m.ReportReporterID,
		ReportIsAnonymous:        m.ReportIsAnonymous,
		ReportCategory:           m.ReportCategory,
		ReportTitle:              m.ReportTitle,
		ReportDescription:        m.ReportDescription,
		ReportLocation:           m.ReportLocation,
		ReportStatus:             m.ReportStatus,
		ReportInvolvedStudentIDs: m.ReportInvolvedStudentIDs,
		ReportSchoolID:           m.ReportSchoolID,
		ReportCreatedAt:          m.ReportCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToReportResponseList(models []model.ReportModel) []ReportResponse {
	result := make([]ReportResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToReportResponse(&m))
	}
	return result
}
