package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PanicAlertModel: dibuat hanya oleh student, untuk dirinya sendiri, selalu
// status=active. Koordinat best-effort (NULL saat geolocation ditolak/timeout).
// Field mutable setelah create: status + attended_by (oleh staff).
type PanicAlertModel struct {
	PanicAlertID         uuid.UUID  `gorm:"column:panic_alert_id;type:uuid;primaryKey" json:"panic_alert_id"`
	PanicAlertStudentID  uuid.UUID  `gorm:"column:panic_alert_student_id;type:uuid;not null;index" json:"panic_alert_student_id"`
	PanicAlertMessage    *string    `gorm:"column:panic_alert_message;type:text" json:"panic_alert_message"`
	PanicAlertLatitude   *float64   `gorm:"column:panic_alert_latitude" json:"panic_alert_latitude"`
	PanicAlertLongitude  *float64   `gorm:"column:panic_alert_longitude" json:"panic_alert_longitude"`
	PanicAlertStatus     string     `gorm:"column:panic_alert_status;type:varchar(20);not null;index" json:"panic_alert_status"`
	PanicAlertAttendedBy *uuid.UUID `gorm:"column:panic_alert_attended_by;type:uuid" json:"panic_alert_attended_by"`
	PanicAlertSchoolID   uuid.UUID  `gorm:"column:panic_alert_school_id;type:uuid;not null;index" json:"panic_alert_school_id"`
	PanicAlertCreatedAt  time.Time  `gorm:"column:panic_alert_created_at;autoCreateTime" json:"panic_alert_created_at"`
}

func (PanicAlertModel) TableName() string {
	return "panic_alerts"
}

func (m *PanicAlertModel) BeforeCreate(tx *gorm.DB) error {
	if m.PanicAlertID == uuid.Nil {
		m.PanicAlertID = uuid.New()
	}
	return nil
}
