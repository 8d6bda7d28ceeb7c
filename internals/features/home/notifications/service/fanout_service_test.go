package service

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"escuelasegura_backend/internals/constants"
	databases "escuelasegura_backend/internals/databases"
	"escuelasegura_backend/internals/features/home/notifications/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "fanout_test.db")
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dbPath}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := databases.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, role string, schoolID uuid.UUID, grade string) uuid.UUID {
	t.Helper()
	p := profileModel.ProfileModel{
		ProfileID:       uuid.New(),
		ProfileRole:     role,
		ProfileFullName: role + " de prueba",
		ProfileSchoolID: schoolID,
	}
	if grade != "" {
		p.ProfileGrade = &grade
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p.ProfileID
}

func notificationsFor(t *testing.T, db *gorm.DB, recipient uuid.UUID) []model.NotificationModel {
	t.Helper()
	var out []model.NotificationModel
	if err := db.Where("notification_recipient_id = ?", recipient).Find(&out).Error; err != nil {
		t.Fatalf("query notifications: %v", err)
	}
	return out
}

func TestPanicAlertFanoutReachesEveryStaffOnce(t *testing.T) {
	db := newTestDB(t)
	schoolID := uuid.New()
	otherSchool := uuid.New()

	teacher := seedProfile(t, db, constants.RoleTeacher, schoolID, "")
	director := seedProfile(t, db, constants.RoleDirector, schoolID, "")
	student := seedProfile(t, db, constants.RoleStudent, schoolID, "3A")
	parent := seedProfile(t, db, constants.RoleParent, schoolID, "")
	foreignTeacher := seedProfile(t, db, constants.RoleTeacher, otherSchool, "")

	svc := NewFanoutService(db)
	msg := "Estoy en el patio"
	err := svc.PanicAlertCreated(PanicAlertCreatedEvent{
		AlertID:     uuid.New(),
		StudentID:   student,
		StudentName: "Ana López",
		SchoolID:    schoolID,
		Message:     &msg,
	})
	if err != nil {
		t.Fatalf("fanout: %v", err)
	}

	for _, staffID := range []uuid.UUID{teacher, director} {
		got := notificationsFor(t, db, staffID)
		if len(got) != 1 {
			t.Fatalf("staff %s: got %d notifications, want 1", staffID, len(got))
		}
		if got[0].NotificationType != constants.NotificationTypePanicAlert {
			t.Fatalf("type = %q", got[0].NotificationType)
		}
		if got[0].NotificationIsRead {
			t.Fatal("new notification must start unread")
		}
	}
	for _, excluded := range []uuid.UUID{student, parent, foreignTeacher} {
		if got := notificationsFor(t, db, excluded); len(got) != 0 {
			t.Fatalf("recipient %s should receive nothing, got %d", excluded, len(got))
		}
	}
}

func TestTaskFanoutSnapshotsRecipientsAtEventTime(t *testing.T) {
	db := newTestDB(t)
	schoolID := uuid.New()

	inGrade := seedProfile(t, db, constants.RoleStudent, schoolID, "3A")
	otherGrade := seedProfile(t, db, constants.RoleStudent, schoolID, "4B")

	svc := NewFanoutService(db)
	ev := TaskCreatedEvent{
		TaskID:   uuid.New(),
		SchoolID: schoolID,
		Grade:    "3A",
		Title:    "Ensayo de historia",
	}
	if err := svc.TaskCreated(ev); err != nil {
		t.Fatalf("fanout: %v", err)
	}

	if got := notificationsFor(t, db, inGrade); len(got) != 1 {
		t.Fatalf("student in grade: got %d, want 1", len(got))
	}
	if got := notificationsFor(t, db, otherGrade); len(got) != 0 {
		t.Fatalf("student in other grade: got %d, want 0", len(got))
	}

	// Student yang bergabung SETELAH event tidak menerima apa-apa tanpa
	// fanout baru: recipient adalah snapshot saat event terjadi.
	lateJoiner := seedProfile(t, db, constants.RoleStudent, schoolID, "3A")
	if got := notificationsFor(t, db, lateJoiner); len(got) != 0 {
		t.Fatalf("late joiner: got %d, want 0", len(got))
	}
}

func TestReportStatusChangedSkipsAnonymousReporter(t *testing.T) {
	db := newTestDB(t)
	svc := NewFanoutService(db)

	if err := svc.ReportStatusChanged(ReportStatusChangedEvent{
		ReportID:  uuid.New(),
		OldStatus: constants.ReportStatusPending,
		NewStatus: constants.ReportStatusResolved,
		Title:     "Acoso en el pasillo",
	}); err != nil {
		t.Fatalf("fanout anon: %v", err)
	}
	var total int64
	db.Model(&model.NotificationModel{}).Count(&total)
	if total != 0 {
		t.Fatalf("anonymous report status change produced %d notifications, want 0", total)
	}

	reporter := uuid.New()
	if err := svc.ReportStatusChanged(ReportStatusChangedEvent{
		ReportID:   uuid.New(),
		ReporterID: &reporter,
		OldStatus:  constants.ReportStatusPending,
		NewStatus:  constants.ReportStatusInReview,
		Title:      "Acoso en el pasillo",
	}); err != nil {
		t.Fatalf("fanout non-anon: %v", err)
	}
	got := notificationsFor(t, db, reporter)
	if len(got) != 1 {
		t.Fatalf("reporter: got %d, want 1", len(got))
	}
	if got[0].NotificationType != constants.NotificationTypeReportStatusChanged {
		t.Fatalf("type = %q", got[0].NotificationType)
	}
}

func TestIncidentFanoutReachesOnlyLinkedParents(t *testing.T) {
	db := newTestDB(t)
	schoolID := uuid.New()

	student := seedProfile(t, db, constants.RoleStudent, schoolID, "3A")
	linkedParent := seedProfile(t, db, constants.RoleParent, schoolID, "")
	unlinkedParent := seedProfile(t, db, constants.RoleParent, schoolID, "")

	if err := db.Create(&profileModel.ParentStudentModel{
		ParentStudentParentID:  linkedParent,
		ParentStudentStudentID: student,
	}).Error; err != nil {
		t.Fatalf("seed link: %v", err)
	}

	svc := NewFanoutService(db)
	if err := svc.IncidentCreated(IncidentCreatedEvent{
		IncidentID:  uuid.New(),
		StudentID:   student,
		StudentName: "Ana López",
		SchoolID:    schoolID,
		Type:        constants.IncidentTypeConduct,
		Severity:    constants.SeverityModerate,
	}); err != nil {
		t.Fatalf("fanout: %v", err)
	}

	if got := notificationsFor(t, db, linkedParent); len(got) != 1 {
		t.Fatalf("linked parent: got %d, want 1", len(got))
	}
	if got := notificationsFor(t, db, unlinkedParent); len(got) != 0 {
		t.Fatalf("unlinked parent: got %d, want 0", len(got))
	}
}
