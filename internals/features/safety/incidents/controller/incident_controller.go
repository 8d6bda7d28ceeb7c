package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/incidents/dto"
	"escuelasegura_backend/internals/features/safety/incidents/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

// Incident append-only: tidak ada endpoint update/delete di controller ini,
// dan memang tidak boleh ada.
type IncidentController struct {
	DB     *gorm.DB
	Fanout *fanout.FanoutService
}

func NewIncidentController(db *gorm.DB, f *fanout.FanoutService) *IncidentController {
	return &IncidentController{DB: db, Fanout: f}
}

// 🟢 POST /api/a/incidents — staff only (route gate), student harus
// satu school dengan actor.
func (ctrl *IncidentController) CreateIncident(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"StudentID": {"uuid"}})
	}

	var student profileModel.ProfileModel
	if err := ctrl.DB.
		Where("profile_id = ? AND profile_role = ? AND profile_school_id = ?",
			studentID, constants.RoleStudent, actor.SchoolID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// student tidak ada ATAU di luar tenant — respons sama
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify student")
	}

	incident := model.IncidentModel{
		IncidentStudentID:   studentID,
		IncidentCreatedBy:   actor.UserID,
		IncidentType:        req.Type,
		IncidentSeverity:    req.Severity,
		IncidentDescription: req.Description,
		IncidentSchoolID:    actor.SchoolID,
	}
	if err := ctrl.DB.Create(&incident).Error; err != nil {
		log.Printf("[ERROR] create incident: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create incident")
	}

	if err := ctrl.Fanout.IncidentCreated(fanout.IncidentCreatedEvent{
		IncidentID:  incident.IncidentID,
		StudentID:   incident.IncidentStudentID,
		StudentName: student.ProfileFullName,
		SchoolID:    incident.IncidentSchoolID,
		Type:        incident.IncidentType,
		Severity:    incident.IncidentSeverity,
	}); err != nil {
		log.Printf("[WARNING] fanout incident created: %v", err)
	}

	return helper.JsonCreated(c, "Incidencia registrada", dto.ToIncidentResponse(&incident))
}

// 🟢 GET /api/u/incidents/by-student/:studentId — bagian dari expediente.
// Staff: semua student school-nya. Parent: hanya anak yang ter-link.
// Student: ditolak (lihat RecordViewerRoles).
func (ctrl *IncidentController) ListIncidentsByStudent(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if allowed, err := CanViewStudent(ctrl.DB, actor.UserID, actor.Role, actor.SchoolID, studentID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify access")
	} else if !allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	var incidents []model.IncidentModel
	if err := ctrl.DB.
		Where("incident_student_id = ? AND incident_school_id = ?", studentID, actor.SchoolID).
		Order("incident_created_at DESC").
		Find(&incidents).Error; err != nil {
		log.Printf("[ERROR] list incidents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch incidents")
	}

	return helper.JsonOK(c, "", dto.ToIncidentResponseList(incidents))
}

// CanViewStudent: cek akses expediente untuk satu student.
// Dipakai juga oleh profile controller (student record view).
func CanViewStudent(db *gorm.DB, actorID uuid.UUID, actorRole string, actorSchoolID, studentID uuid.UUID) (bool, error) {
	switch {
	case constants.IsStaffRole(actorRole):
		var n int64
		err := db.Model(&profileModel.ProfileModel{}).
			Where("profile_id = ? AND profile_role = ? AND profile_school_id = ?",
				studentID, constants.RoleStudent, actorSchoolID).
			Count(&n).Error
		return n > 0, err
	case actorRole == constants.RoleParent:
		var n int64
		err := db.Model(&profileModel.ParentStudentModel{}).
			Where("parent_student_parent_id = ? AND parent_student_student_id = ?", actorID, studentID).
			Count(&n).Error
		return n > 0, err
	default:
		// student (dan role tak dikenal) tidak boleh membuka expediente
		return false, nil
	}
}
