package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"escuelasegura_backend/internals/constants"
	databases "escuelasegura_backend/internals/databases"
	notifModel "escuelasegura_backend/internals/features/home/notifications/model"
	alertRoute "escuelasegura_backend/internals/features/safety/alerts/route"
	"escuelasegura_backend/internals/features/safety/alerts/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "alerts_test.db")
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dbPath}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := databases.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, c.Get("X-Test-User"))
		c.Locals(helperAuth.LocRole, c.Get("X-Test-Role"))
		c.Locals(helperAuth.LocSchoolID, c.Get("X-Test-School"))
		c.Locals(helperAuth.LocGrade, c.Get("X-Test-Grade"))
		return c.Next()
	})
	alertRoute.PanicAlertUserRoutes(app.Group("/api/u"), db)
	alertRoute.PanicAlertStaffRoutes(app.Group("/api/a"), db)
	return app, db
}

type testActor struct {
	userID   uuid.UUID
	role     string
	schoolID uuid.UUID
}

func doJSON(t *testing.T, app *fiber.App, actor testActor, method, path string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-User", actor.userID.String())
	req.Header.Set("X-Test-Role", actor.role)
	req.Header.Set("X-Test-School", actor.schoolID.String())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestCreatePanicAlertSelfAndActive(t *testing.T) {
	app, db := newTestApp(t)
	schoolID := uuid.New()
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: schoolID}

	teacherID := uuid.New()
	if err := db.Create(&profileModel.ProfileModel{
		ProfileID:       teacherID,
		ProfileRole:     constants.RoleTeacher,
		ProfileFullName: "Profesor de prueba",
		ProfileSchoolID: schoolID,
	}).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}

	// Tanpa body: message & koordinat opsional.
	resp := doJSON(t, app, student, "POST", "/api/u/panic-alerts", fiber.Map{})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var alert model.PanicAlertModel
	if err := db.First(&alert).Error; err != nil {
		t.Fatalf("fetch alert: %v", err)
	}
	if alert.PanicAlertStudentID != student.userID {
		t.Fatal("alert must always belong to the calling student")
	}
	if alert.PanicAlertStatus != constants.PanicStatusActive {
		t.Fatalf("status = %q, want active", alert.PanicAlertStatus)
	}
	if alert.PanicAlertLatitude != nil || alert.PanicAlertLongitude != nil {
		t.Fatal("coordinates must stay NULL when not sent")
	}

	// Fanout: teacher di school yang sama menerima notifikasi.
	var n int64
	db.Model(&notifModel.NotificationModel{}).
		Where("notification_recipient_id = ?", teacherID).
		Count(&n)
	if n != 1 {
		t.Fatalf("teacher notifications: got %d, want 1", n)
	}
}

func TestCreatePanicAlertCoordinateBounds(t *testing.T) {
	app, _ := newTestApp(t)
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: uuid.New()}

	resp := doJSON(t, app, student, "POST", "/api/u/panic-alerts", fiber.Map{
		"latitude": 91.0, "longitude": 0.0,
	})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("lat 91: status %d, want 422", resp.StatusCode)
	}
	resp = doJSON(t, app, student, "POST", "/api/u/panic-alerts", fiber.Map{
		"latitude": 19.43, "longitude": -99.13,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("valid coords: status %d, want 201", resp.StatusCode)
	}
}

func TestAttendPanicAlert(t *testing.T) {
	app, db := newTestApp(t)
	schoolID := uuid.New()
	staff := testActor{userID: uuid.New(), role: constants.RoleDirector, schoolID: schoolID}

	alert := model.PanicAlertModel{
		PanicAlertStudentID: uuid.New(),
		PanicAlertStatus:    constants.PanicStatusActive,
		PanicAlertSchoolID:  schoolID,
	}
	if err := db.Create(&alert).Error; err != nil {
		t.Fatalf("seed alert: %v", err)
	}
	path := "/api/a/panic-alerts/" + alert.PanicAlertID.String() + "/attend"

	// Status di luar attended/false_alarm → 422.
	resp := doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": "active"})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("invalid status: %d, want 422", resp.StatusCode)
	}

	// Staff school lain → 404.
	foreign := testActor{userID: uuid.New(), role: constants.RoleTeacher, schoolID: uuid.New()}
	resp = doJSON(t, app, foreign, "PATCH", path, fiber.Map{"status": constants.PanicStatusAttended})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("foreign staff: %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": constants.PanicStatusAttended})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("attend: %d, want 200", resp.StatusCode)
	}

	var row model.PanicAlertModel
	if err := db.First(&row, "panic_alert_id = ?", alert.PanicAlertID).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if row.PanicAlertStatus != constants.PanicStatusAttended {
		t.Fatalf("status = %q, want attended", row.PanicAlertStatus)
	}
	if row.PanicAlertAttendedBy == nil || *row.PanicAlertAttendedBy != staff.userID {
		t.Fatal("attended_by must record the acting staff member")
	}
}
