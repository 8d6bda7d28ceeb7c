package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/alerts/dto"
	"escuelasegura_backend/internals/features/safety/alerts/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
	"escuelasegura_backend/internals/policy"
)

type PanicAlertController struct {
	DB     *gorm.DB
	Fanout *fanout.FanoutService
}

func NewPanicAlertController(db *gorm.DB, f *fanout.FanoutService) *PanicAlertController {
	return &PanicAlertController{DB: db, Fanout: f}
}

// 🟢 POST /api/u/panic-alerts — student only, selalu untuk dirinya sendiri,
// selalu status=active. Koordinat boleh NULL (geolocation best-effort).
func (ctrl *PanicAlertController) CreatePanicAlert(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	var req dto.CreatePanicAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// self-only: student_id & school_id dari actor, tidak pernah dari body
	if d := policy.Authorize(actor, policy.ActionCreatePanicAlert, &policy.Resource{
		SchoolID: actor.SchoolID,
		OwnerID:  actor.UserID,
	}); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	alert := model.PanicAlertModel{
		PanicAlertStudentID: actor.UserID,
		PanicAlertMessage:   req.Message,
		PanicAlertLatitude:  req.Latitude,
		PanicAlertLongitude: req.Longitude,
		PanicAlertStatus:    constants.PanicStatusActive,
		PanicAlertSchoolID:  actor.SchoolID,
	}
	if err := ctrl.DB.Create(&alert).Error; err != nil {
		log.Printf("[ERROR] create panic alert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create alert")
	}

	studentName := ctrl.studentName(actor.UserID)
	if err := ctrl.Fanout.PanicAlertCreated(fanout.PanicAlertCreatedEvent{
		AlertID:     alert.PanicAlertID,
		StudentID:   alert.PanicAlertStudentID,
		StudentName: studentName,
		SchoolID:    alert.PanicAlertSchoolID,
		Message:     alert.PanicAlertMessage,
	}); err != nil {
		log.Printf("[WARNING] fanout panic alert: %v", err)
	}

	return helper.JsonCreated(c, "Alerta enviada. Ayuda está en camino.", dto.ToPanicAlertResponse(&alert))
}

// 🟢 GET /api/a/panic-alerts — staff melihat alert school-nya,
// ?status=active untuk panel.
func (ctrl *PanicAlertController) ListPanicAlerts(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PanicAlertModel{}).Where("panic_alert_school_id = ?", actor.SchoolID)
	if status := c.Query("status"); status != "" && status != "all" {
		if !constants.IsValidPanicStatus(status) {
			return helper.JsonValidationError(c, map[string][]string{"status": {"invalid"}})
		}
		q = q.Where("panic_alert_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count alerts")
	}

	var alerts []model.PanicAlertModel
	if err := q.Order("panic_alert_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&alerts).Error; err != nil {
		log.Printf("[ERROR] list panic alerts: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch alerts")
	}

	return helper.JsonList(c, "", dto.ToPanicAlertResponseList(alerts), helper.BuildPagination(paging, total))
}

// 🟢 PATCH /api/a/panic-alerts/:id/attend — staff menandai attended /
// false_alarm + attended_by. (Aksi ini diizinkan access rules sejak awal;
// surface-nya yang dulu belum ada.)
func (ctrl *PanicAlertController) AttendPanicAlert(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alert id")
	}

	var req dto.AttendPanicAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var alert model.PanicAlertModel
	if err := ctrl.DB.Where("panic_alert_id = ?", id).First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Alert not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch alert")
	}

	if d := policy.Authorize(actor, policy.ActionAttendPanicAlert, &policy.Resource{
		SchoolID: alert.PanicAlertSchoolID,
	}); !d.Allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Alert not found")
	}

	attendedBy := actor.UserID
	if err := ctrl.DB.Model(&alert).Updates(map[string]any{
		"panic_alert_status":      req.Status,
		"panic_alert_attended_by": attendedBy,
	}).Error; err != nil {
		log.Printf("[ERROR] attend panic alert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update alert")
	}
	alert.PanicAlertStatus = req.Status
	alert.PanicAlertAttendedBy = &attendedBy

	return helper.JsonUpdated(c, "Alerta atendida", dto.ToPanicAlertResponse(&alert))
}

func (ctrl *PanicAlertController) studentName(id uuid.UUID) string {
	var profile profileModel.ProfileModel
	if err := ctrl.DB.Where("profile_id = ?", id).First(&profile).Error; err != nil {
		return "Un alumno"
	}
	return profile.ProfileFullName
}
