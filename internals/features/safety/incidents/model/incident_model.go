package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncidentModel: catatan expediente per student, dibuat oleh staff.
// Append-only — tidak ada jalur edit/delete.
type IncidentModel struct {
	IncidentID          uuid.UUID `gorm:"column:incident_id;type:uuid;primaryKey" json:"incident_id"`
	IncidentStudentID   uuid.UUID `gorm:"column:incident_student_id;type:uuid;not null;index" json:"incident_student_id"`
	IncidentCreatedBy   uuid.UUID `gorm:"column:incident_created_by;type:uuid;not null" json:"incident_created_by"`
	IncidentType        string    `gorm:"column:incident_type;type:varchar(20);not null" json:"incident_type"`
	IncidentSeverity    string    `gorm:"column:incident_severity;type:varchar(20);not null" json:"incident_severity"`
	IncidentDescription string    `gorm:"column:incident_description;type:text;not null" json:"incident_description"`
	IncidentSchoolID    uuid.UUID `gorm:"column:incident_school_id;type:uuid;not null;index" json:"incident_school_id"`
	IncidentCreatedAt   time.Time `gorm:"column:incident_created_at;autoCreateTime" json:"incident_created_at"`
}

func (IncidentModel) TableName() string {
	return "incidents"
}

func (m *IncidentModel) BeforeCreate(tx *gorm.DB) error {
	if m.IncidentID == uuid.Nil {
		m.IncidentID = uuid.New()
	}
	return nil
}
