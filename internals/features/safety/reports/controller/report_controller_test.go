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
	reportRoute "escuelasegura_backend/internals/features/safety/reports/route"
	"escuelasegura_backend/internals/features/safety/reports/model"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

// Actor di-hydrate dari header tes, menggantikan middleware JWT.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "reports_test.db")
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
	reportRoute.ReportUserRoutes(app.Group("/api/u"), db)
	reportRoute.ReportStaffRoutes(app.Group("/api/a"), db)
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
			t.Fatalf("marshal body: %v", err)
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

func TestCreateReportAnonymousNeverStoresReporter(t *testing.T) {
	app, db := newTestApp(t)
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: uuid.New()}

	resp := doJSON(t, app, student, "POST", "/api/u/reports", fiber.Map{
		"is_anonymous": true,
		"category":     constants.ReportCategoryBullying,
		"title":        "Acoso en el patio",
		"description":  "Lo vi durante el recreo, cerca de las canchas.",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var row model.ReportModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("fetch row: %v", err)
	}
	if !row.ReportIsAnonymous {
		t.Fatal("row should be anonymous")
	}
	if row.ReportReporterID != nil {
		t.Fatalf("anonymous report stored reporter_id %s", row.ReportReporterID)
	}
	if row.ReportStatus != constants.ReportStatusPending {
		t.Fatalf("status = %q, want pending", row.ReportStatus)
	}
	if row.ReportSchoolID != student.schoolID {
		t.Fatal("school must come from actor, not body")
	}
}

func TestCreateReportNonAnonymousStoresReporter(t *testing.T) {
	app, db := newTestApp(t)
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: uuid.New()}

	resp := doJSON(t, app, student, "POST", "/api/u/reports", fiber.Map{
		"is_anonymous": false,
		"category":     constants.ReportCategoryTheft,
		"title":        "Robo de mochila",
		"description":  "Me quitaron la mochila en el salón durante el descanso.",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var row model.ReportModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("fetch row: %v", err)
	}
	if row.ReportReporterID == nil || *row.ReportReporterID != student.userID {
		t.Fatal("non-anonymous report must store the reporter id")
	}
}

func TestCreateReportValidation(t *testing.T) {
	app, _ := newTestApp(t)
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: uuid.New()}

	cases := []fiber.Map{
		{"category": "gossip", "title": "Algo", "description": "Descripción suficientemente larga."},
		{"category": constants.ReportCategoryVerbal, "title": "ab", "description": "Descripción suficientemente larga."},
		{"category": constants.ReportCategoryVerbal, "title": "Algo pasó", "description": "corta"},
	}
	for i, body := range cases {
		resp := doJSON(t, app, student, "POST", "/api/u/reports", body)
		if resp.StatusCode != fiber.StatusUnprocessableEntity {
			t.Fatalf("case %d: status = %d, want 422", i, resp.StatusCode)
		}
	}
}

func TestListReportsScopesAndFilters(t *testing.T) {
	app, db := newTestApp(t)
	schoolID := uuid.New()
	student := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: schoolID}
	otherStudent := uuid.New()

	seed := func(reporter *uuid.UUID, category, status string) {
		row := model.ReportModel{
			ReportReporterID:  reporter,
			ReportCategory:    category,
			ReportTitle:       "Reporte de prueba",
			ReportDescription: "Descripción de prueba suficientemente larga.",
			ReportStatus:      status,
			ReportSchoolID:    schoolID,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed report: %v", err)
		}
	}
	seed(&student.userID, constants.ReportCategoryBullying, constants.ReportStatusPending)
	seed(&student.userID, constants.ReportCategoryTheft, constants.ReportStatusResolved)
	seed(&otherStudent, constants.ReportCategoryBullying, constants.ReportStatusPending)
	seed(nil, constants.ReportCategoryVerbal, constants.ReportStatusPending) // anonim

	listLen := func(actor testActor, path string) int {
		resp := doJSON(t, app, actor, "GET", path, nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
		var envelope struct {
			Data []json.RawMessage `json:"data"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("decode %s: %v (%s)", path, err, raw)
		}
		return len(envelope.Data)
	}

	// Student: hanya baris miliknya (report anonim & milik orang lain tidak ikut).
	if got := listLen(student, "/api/u/reports"); got != 2 {
		t.Fatalf("student list: got %d, want 2", got)
	}

	// Staff: seluruh school; filter status & category digabung AND.
	staff := testActor{userID: uuid.New(), role: constants.RoleTeacher, schoolID: schoolID}
	if got := listLen(staff, "/api/u/reports"); got != 4 {
		t.Fatalf("staff list: got %d, want 4", got)
	}
	if got := listLen(staff, "/api/u/reports?status=pending"); got != 3 {
		t.Fatalf("staff pending: got %d, want 3", got)
	}
	if got := listLen(staff, "/api/u/reports?status=pending&category=bullying"); got != 2 {
		t.Fatalf("staff pending+bullying: got %d, want 2", got)
	}
	if got := listLen(staff, "/api/u/reports?status=all&category=all"); got != 4 {
		t.Fatalf("staff all/all: got %d, want 4", got)
	}

	// Staff dari school lain: nol baris.
	foreignStaff := testActor{userID: uuid.New(), role: constants.RoleDirector, schoolID: uuid.New()}
	if got := listLen(foreignStaff, "/api/u/reports"); got != 0 {
		t.Fatalf("foreign staff list: got %d, want 0", got)
	}
}

func TestGetReportOutsideScopeIs404(t *testing.T) {
	app, db := newTestApp(t)
	schoolID := uuid.New()
	owner := uuid.New()

	row := model.ReportModel{
		ReportReporterID:  &owner,
		ReportCategory:    constants.ReportCategoryPhysical,
		ReportTitle:       "Pelea en el pasillo",
		ReportDescription: "Dos alumnos se pelearon al salir de clase.",
		ReportStatus:      constants.ReportStatusPending,
		ReportSchoolID:    schoolID,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	path := "/api/u/reports/" + row.ReportID.String()

	// Student lain di school yang sama → 404 (bukan 403).
	peer := testActor{userID: uuid.New(), role: constants.RoleStudent, schoolID: schoolID}
	if resp := doJSON(t, app, peer, "GET", path, nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("peer student: status %d, want 404", resp.StatusCode)
	}

	// Staff di school lain → 404.
	foreign := testActor{userID: uuid.New(), role: constants.RoleTeacher, schoolID: uuid.New()}
	if resp := doJSON(t, app, foreign, "GET", path, nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("foreign staff: status %d, want 404", resp.StatusCode)
	}

	// Pemilik → 200.
	ownerActor := testActor{userID: owner, role: constants.RoleStudent, schoolID: schoolID}
	if resp := doJSON(t, app, ownerActor, "GET", path, nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("owner: status %d, want 200", resp.StatusCode)
	}
}

func TestUpdateReportStatusNotifiesOnlyOnRealChange(t *testing.T) {
	app, db := newTestApp(t)
	schoolID := uuid.New()
	reporter := uuid.New()
	staff := testActor{userID: uuid.New(), role: constants.RoleDirector, schoolID: schoolID}

	row := model.ReportModel{
		ReportReporterID:  &reporter,
		ReportCategory:    constants.ReportCategoryCyberbullying,
		ReportTitle:       "Mensajes de acoso",
		ReportDescription: "Recibí mensajes de acoso en el grupo del salón.",
		ReportStatus:      constants.ReportStatusPending,
		ReportSchoolID:    schoolID,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	path := "/api/a/reports/" + row.ReportID.String() + "/status"

	countNotifs := func() int64 {
		var n int64
		db.Model(&notifModel.NotificationModel{}).
			Where("notification_recipient_id = ?", reporter).
			Count(&n)
		return n
	}

	// Status sama → idempoten, nol notifikasi.
	resp := doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": constants.ReportStatusPending})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("same status: %d", resp.StatusCode)
	}
	if countNotifs() != 0 {
		t.Fatal("unchanged status must not notify")
	}

	// Perubahan nyata → satu notifikasi untuk reporter.
	resp = doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": constants.ReportStatusInReview})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("real change: %d", resp.StatusCode)
	}
	if got := countNotifs(); got != 1 {
		t.Fatalf("notifications after change: got %d, want 1", got)
	}

	// Transisi bebas: resolved → pending juga sah.
	resp = doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": constants.ReportStatusPending})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("reverse transition: %d", resp.StatusCode)
	}

	// Status tidak dikenal → 422.
	resp = doJSON(t, app, staff, "PATCH", path, fiber.Map{"status": "archived"})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("invalid status: %d, want 422", resp.StatusCode)
	}
}
