package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	"escuelasegura_backend/internals/features/home/notifications/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
)

// FanoutService mengubah satu write event menjadi sekumpulan Notification.
// Kontrak: jalan SETELAH write pemicunya commit, best-effort — kalau fanout
// gagal, write pemicunya tetap commit (tidak ada rollback dua fase).
// Recipient di-resolve saat event terjadi (snapshot): staff/student yang
// bergabung setelahnya tidak menerima notifikasi lama.
type FanoutService struct {
	DB *gorm.DB
}

func NewFanoutService(db *gorm.DB) *FanoutService {
	return &FanoutService{DB: db}
}

// ===================== Events =====================

type PanicAlertCreatedEvent struct {
	AlertID     uuid.UUID
	StudentID   uuid.UUID
	StudentName string
	SchoolID    uuid.UUID
	Message     *string
}

type ReportCreatedEvent struct {
	ReportID uuid.UUID
	SchoolID uuid.UUID
	Category string
	Title    string
}

type IncidentCreatedEvent struct {
	IncidentID  uuid.UUID
	StudentID   uuid.UUID
	StudentName string
	SchoolID    uuid.UUID
	Type        string
	Severity    string
}

type TaskCreatedEvent struct {
	TaskID   uuid.UUID
	SchoolID uuid.UUID
	Grade    string
	Title    string
	DueDate  time.Time
}

type ReportStatusChangedEvent struct {
	ReportID   uuid.UUID
	ReporterID *uuid.UUID // nil untuk report anonim → nol notifikasi
	OldStatus  string
	NewStatus  string
	Title      string
}

// ===================== Handlers =====================

// PanicAlertCreated → semua staff (teacher+director) di school yang sama.
func (s *FanoutService) PanicAlertCreated(ev PanicAlertCreatedEvent) error {
	staff, err := s.staffOfSchool(ev.SchoolID)
	if err != nil {
		log.Printf("[FANOUT] resolve staff gagal (panic alert %s): %v", ev.AlertID, err)
		return err
	}

	body := fmt.Sprintf("%s necesita ayuda urgente.", ev.StudentName)
	if ev.Message != nil && *ev.Message != "" {
		body = fmt.Sprintf("%s necesita ayuda urgente: %q", ev.StudentName, *ev.Message)
	}
	link := "/panel/alertas/" + ev.AlertID.String()

	notifs := make([]model.NotificationModel, 0, len(staff))
	for _, p := range staff {
		notifs = append(notifs, model.NotificationModel{
			NotificationRecipientID: p.ProfileID,
			NotificationType:        constants.NotificationTypePanicAlert,
			NotificationTitle:       "Alerta de pánico",
			NotificationBody:        body,
			NotificationLink:        &link,
		})
	}
	return s.insert(notifs)
}

// ReportCreated → semua staff di school, anonim atau tidak.
func (s *FanoutService) ReportCreated(ev ReportCreatedEvent) error {
	staff, err := s.staffOfSchool(ev.SchoolID)
	if err != nil {
		log.Printf("[FANOUT] resolve staff gagal (report %s): %v", ev.ReportID, err)
		return err
	}

	label, _ := constants.ReportCategoryLabel(ev.Category)
	link := "/reportes/" + ev.ReportID.String()

	notifs := make([]model.NotificationModel, 0, len(staff))
	for _, p := range staff {
		notifs = append(notifs, model.NotificationModel{
			NotificationRecipientID: p.ProfileID,
			NotificationType:        constants.NotificationTypeNewReport,
			NotificationTitle:       "Nuevo reporte",
			NotificationBody:        fmt.Sprintf("%s: %s", label, ev.Title),
			NotificationLink:        &link,
		})
	}
	return s.insert(notifs)
}

// IncidentCreated → parent yang ter-link (via parent_students) ke student.
func (s *FanoutService) IncidentCreated(ev IncidentCreatedEvent) error {
	var parentIDs []uuid.UUID
	if err := s.DB.Model(&profileModel.ParentStudentModel{}).
		Where("parent_student_student_id = ?", ev.StudentID).
		Pluck("parent_student_parent_id", &parentIDs).Error; err != nil {
		log.Printf("[FANOUT] resolve parents gagal (incident %s): %v", ev.IncidentID, err)
		return err
	}

	typeLabel, _ := constants.IncidentTypeLabel(ev.Type)
	severityLabel, _ := constants.SeverityLabel(ev.Severity)
	link := "/expedientes/" + ev.StudentID.String()

	notifs := make([]model.NotificationModel, 0, len(parentIDs))
	for _, pid := range parentIDs {
		notifs = append(notifs, model.NotificationModel{
			NotificationRecipientID: pid,
			NotificationType:        constants.NotificationTypeIncidentRegistered,
			NotificationTitle:       "Incidencia registrada",
			NotificationBody:        fmt.Sprintf("Se registró una incidencia (%s, %s) para %s.", typeLabel, severityLabel, ev.StudentName),
			NotificationLink:        &link,
		})
	}
	return s.insert(notifs)
}

// TaskCreated → semua student di (school, grade) saat event terjadi.
func (s *FanoutService) TaskCreated(ev TaskCreatedEvent) error {
	var students []profileModel.ProfileModel
	if err := s.DB.
		Where("profile_role = ? AND profile_school_id = ? AND profile_grade = ?",
			constants.RoleStudent, ev.SchoolID, ev.Grade).
		Find(&students).Error; err != nil {
		log.Printf("[FANOUT] resolve students gagal (task %s): %v", ev.TaskID, err)
		return err
	}

	link := "/tareas/" + ev.TaskID.String()
	body := fmt.Sprintf("Nueva tarea: %s (entrega %s)", ev.Title, ev.DueDate.Format("2006-01-02"))

	notifs := make([]model.NotificationModel, 0, len(students))
	for _, p := range students {
		notifs = append(notifs, model.NotificationModel{
			NotificationRecipientID: p.ProfileID,
			NotificationType:        constants.NotificationTypeNewTask,
			NotificationTitle:       "Nueva tarea",
			NotificationBody:        body,
			NotificationLink:        &link,
		})
	}
	return s.insert(notifs)
}

// ReportStatusChanged → reporter asli, hanya kalau tidak anonim.
func (s *FanoutService) ReportStatusChanged(ev ReportStatusChangedEvent) error {
	if ev.ReporterID == nil {
		return nil // report anonim: nol notifikasi
	}

	label, _ := constants.ReportStatusLabel(ev.NewStatus)
	link := "/reportes/" + ev.ReportID.String()

	return s.insert([]model.NotificationModel{{
		NotificationRecipientID: *ev.ReporterID,
		NotificationType:        constants.NotificationTypeReportStatusChanged,
		NotificationTitle:       "Tu reporte fue actualizado",
		NotificationBody:        fmt.Sprintf("El reporte %q ahora está: %s", ev.Title, label),
		NotificationLink:        &link,
	}})
}

// ===================== Internals =====================

func (s *FanoutService) staffOfSchool(schoolID uuid.UUID) ([]profileModel.ProfileModel, error) {
	var staff []profileModel.ProfileModel
	err := s.DB.
		Where("profile_school_id = ? AND profile_role IN ?", schoolID, constants.StaffRoles).
		Find(&staff).Error
	return staff, err
}

func (s *FanoutService) insert(notifs []model.NotificationModel) error {
	if len(notifs) == 0 {
		return nil
	}
	if err := s.DB.Create(&notifs).Error; err != nil {
		log.Printf("[FANOUT] insert %d notifikasi gagal: %v", len(notifs), err)
		return err
	}
	return nil
}
