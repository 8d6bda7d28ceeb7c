package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/reports/dto"
	"escuelasegura_backend/internals/features/safety/reports/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

type ReportController struct {
	DB     *gorm.DB
	Fanout *fanout.FanoutService
}

func NewReportController(db *gorm.DB, f *fanout.FanoutService) *ReportController {
	return &ReportController{DB: db, Fanout: f}
}

// 🟢 POST /api/u/reports — student only (di-gate route-level).
// Invariant anonimitas: is_anonymous=true ⇒ reporter_id NULL, meskipun
// identitas pembuat diketahui di sini.
func (ctrl *ReportController) CreateReport(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	report := req.ToModel()
	report.ReportStatus = constants.ReportStatusPending
	report.ReportSchoolID = actor.SchoolID // tenant dari actor, bukan dari body
	if !req.IsAnonymous {
		reporterID := actor.UserID
		report.ReportReporterID = &reporterID
	}

	if err := ctrl.DB.Create(report).Error; err != nil {
		log.Printf("[ERROR] create report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create report")
	}

	// Fanout best-effort: gagal → log saja, report sudah commit.
	if err := ctrl.Fanout.ReportCreated(fanout.ReportCreatedEvent{
		ReportID: report.ReportID,
		SchoolID: report.ReportSchoolID,
		Category: report.ReportCategory,
		Title:    report.ReportTitle,
	}); err != nil {
		log.Printf("[WARNING] fanout report created: %v", err)
	}

	return helper.JsonCreated(c, "Reporte enviado", dto.ToReportResponse(report))
}

// 🟢 GET /api/u/reports — scoped per role.
// Student: hanya baris non-anonim miliknya. Staff: seluruh school.
// Filter status & category independen, default "all", kombinasi = AND.
func (ctrl *ReportController) ListReports(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ReportModel{}).Where("report_school_id = ?", actor.SchoolID)

	switch {
	case actor.Role == constants.RoleStudent:
		q = q.Where("report_reporter_id = ?", actor.UserID)
	case constants.IsStaffRole(actor.Role):
		// seluruh school
	default:
		return featuresMiddleware.WriteDeny(c, policy.Deny("role "+actor.Role+" cannot list reports", ""))
	}

	if status := c.Query("status"); status != "" && status != "all" {
		if !constants.IsValidReportStatus(status) {
			return helper.JsonValidationError(c, map[string][]string{"status": {"invalid"}})
		}
		q = q.Where("report_status = ?", status)
	}
	if category := c.Query("category"); category != "" && category != "all" {
		if !constants.IsValidReportCategory(category) {
			return helper.JsonValidationError(c, map[string][]string{"category": {"invalid"}})
		}
		q = q.Where("report_category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count reports")
	}

	var reports []model.ReportModel
	if err := q.Order("report_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&reports).Error; err != nil {
		log.Printf("[ERROR] list reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	return helper.JsonList(c, "", dto.ToReportResponseList(reports), helper.BuildPagination(paging, total))
}

// 🟢 GET /api/u/reports/:id
// Di luar scope actor dijawab 404 — "tidak ada" dan "ada tapi terlarang"
// sengaja tidak dibedakan.
func (ctrl *ReportController) GetReport(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var report model.ReportModel
	if err := ctrl.DB.Where("report_id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Report not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch report")
	}

	res := &policy.Resource{
		SchoolID:  report.ReportSchoolID,
		Anonymous: report.ReportIsAnonymous,
	}
	if report.ReportReporterID != nil {
		res.OwnerID = *report.ReportReporterID
	}
	if d := policy.Authorize(actor, policy.ActionViewReport, res); !d.Allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Report not found")
	}

	return helper.JsonOK(c, "", dto.ToReportResponse(&report))
}

// 🟢 PATCH /api/a/reports/:id/status — staff only (route gate).
// Transisi status bebas: any → any, tanpa workflow ordering (by product).
// Perubahan memicu notifikasi ke reporter asli iff non-anonim.
func (ctrl *ReportController) UpdateReportStatus(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var report model.ReportModel
	if err := ctrl.DB.Where("report_id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Report not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch report")
	}

	if d := policy.Authorize(actor, policy.ActionChangeReportStatus, &policy.Resource{
		SchoolID: report.ReportSchoolID,
	}); !d.Allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Report not found")
	}

	oldStatus := report.ReportStatus
	if oldStatus == req.Status {
		// idempoten: tidak ada perubahan, tidak ada notifikasi
		return helper.JsonUpdated(c, "Status unchanged", dto.ToReportResponse(&report))
	}

	if err := ctrl.DB.Model(&report).Update("report_status", req.Status).Error; err != nil {
		log.Printf("[ERROR] update report status: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update report")
	}
	report.ReportStatus = req.Status

	if err := ctrl.Fanout.ReportStatusChanged(fanout.ReportStatusChangedEvent{
		ReportID:   report.ReportID,
		ReporterID: report.ReportReporterID,
		OldStatus:  oldStatus,
		NewStatus:  req.Status,
		Title:      report.ReportTitle,
	}); err != nil {
		log.Printf("[WARNING] fanout status changed: %v", err)
	}

	return helper.JsonUpdated(c, "Estado actualizado", dto.ToReportResponse(&report))
}
