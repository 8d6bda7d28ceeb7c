package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportModel: laporan insiden keamanan. Invariant anonimitas: kalau
// report_is_anonymous = true maka report_reporter_id HARUS NULL di semua
// jalur create — anonimitas ditegakkan dengan omission, bukan enkripsi.
// Satu-satunya field mutable setelah create adalah report_status.
type ReportModel struct {
	ReportID                 uuid.UUID                    `gorm:"column:report_id;type:uuid;primaryKey" json:"report_id"`
	ReportReporterID         *uuid.UUID                   `gorm:"column:report_reporter_id;type:uuid;index" json:"report_reporter_id"`
	ReportIsAnonymous        bool                         `gorm:"column:report_is_anonymous;not null" json:"report_is_anonymous"`
	ReportCategory           string                       `gorm:"column:report_category;type:varchar(20);not null;index" json:"report_category"`
	ReportTitle              string                       `gorm:"column:report_title;type:varchar(255);not null" json:"report_title"`
	ReportDescription        string                       `gorm:"column:report_description;type:text;not null" json:"report_description"`
	ReportLocation           *string                      `gorm:"column:report_location;type:varchar(255)" json:"report_location"`
	ReportStatus             string                       `gorm:"column:report_status;type:varchar(20);not null;index" json:"report_status"`
	ReportInvolvedStudentIDs datatypes.JSONSlice[string]  `gorm:"column:report_involved_student_ids" json:"report_involved_student_ids"`
	ReportSchoolID           uuid.UUID                    `gorm:"column:report_school_id;type:uuid;not null;index" json:"report_school_id"`
	ReportCreatedAt          time.Time                    `gorm:"column:report_created_at;autoCreateTime" json:"report_created_at"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func (m *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReportID == uuid.Nil {
		m.ReportID = uuid.New()
	}
	return nil
}
