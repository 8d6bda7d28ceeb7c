package dto

import (
	"github.com/google/uuid"

	"escuelasegura_backend/internals/features/safety/alerts/model"
)

// ================== REQUEST ==================

// Koordinat best-effort: client mengirim NULL saat geolocation ditolak /
// timeout (±10 detik di sisi client) — alert tetap dibuat.
type CreatePanicAlertRequest struct {
	Message   *string  `json:"message" validate:"omitempty,max=2000"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type AttendPanicAlertRequest struct {
	Status string `json:"status" validate:"required,oneof=attended false_alarm"`
}

// ================== RESPONSE ==================

type PanicAlertResponse struct {
	PanicAlertID         uuid.UUID  `json:"panic_alert_id"`
	PanicAlertStudentID  uuid.UUID  `json:"panic_alert_student_id"`
	PanicAlertMessage    *string    `json:"panic_alert_message"`
	PanicAlertLatitude   *float64   `json:"panic_alert_latitude"`
	PanicAlertLongitude  *float64   `json:"panic_alert_longitude"`
	PanicAlertStatus     string     `json:"panic_alert_status"`
	PanicAlertAttendedBy *uuid.UUID `json:"panic_alert_attended_by"`
	PanicAlertSchoolID   uuid.UUID  `json:"panic_alert_school_id"`
	PanicAlertCreatedAt  string     `json:"panic_alert_created_at"`
}

// ================ CONVERSION =================

func ToPanicAlertResponse(m *model.PanicAlertModel) *PanicAlertResponse {
	return &PanicAlertResponse{
		PanicAlertID:         m.PanicAlertID,
		PanicAlertStudentID:  m.PanicAlertStudentID,
		PanicAlertMessage:    m.PanicAlertMessage,
		PanicAlertLatitude:   m.PanicAlertLatitude,
		PanicAlertLongitude:  m.PanicAlertLongitude,
		PanicAlertStatus:     m.PanicAlertStatus,
		PanicAlertAttendedBy: m.PanicAlertAttendedBy,
		PanicAlertSchoolID:   m.PanicAlertSchoolID,
		PanicAlertCreatedAt:  m.PanicAlertCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToPanicAlertResponseList(models []model.PanicAlertModel) []PanicAlertResponse {
	result := make([]PanicAlertResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToPanicAlertResponse(&m))
	}
	return result
}
