package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	incidentController "escuelasegura_backend/internals/features/safety/incidents/controller"
	incidentDto "escuelasegura_backend/internals/features/safety/incidents/dto"
	incidentModel "escuelasegura_backend/internals/features/safety/incidents/model"
	reportDto "escuelasegura_backend/internals/features/safety/reports/dto"
	reportModel "escuelasegura_backend/internals/features/safety/reports/model"
	"escuelasegura_backend/internals/features/users/profile/dto"
	"escuelasegura_backend/internals/features/users/profile/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

// Expediente (student record): view agregat per student. Student sendiri
// TIDAK punya akses ke view ini — hanya staff dan parent ter-link.
type StudentRecordController struct {
	DB *gorm.DB
}

func NewStudentRecordController(db *gorm.DB) *StudentRecordController {
	return &StudentRecordController{DB: db}
}

// 🟢 GET /api/u/students — daftar expediente.
// Staff: semua student school-nya. Parent: hanya anak ter-link.
func (ctrl *StudentRecordController) ListStudents(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ProfileModel{}).
		Where("profile_role = ? AND profile_school_id = ?", constants.RoleStudent, actor.SchoolID)

	if actor.Role == constants.RoleParent {
		q = q.Joins("JOIN parent_students ON parent_students.parent_student_student_id = profiles.profile_id").
			Where("parent_students.parent_student_parent_id = ?", actor.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.ProfileModel
	if err := q.Order("profile_full_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		log.Printf("[ERROR] list students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.JsonList(c, "", dto.ToStudentSummaryResponseList(students), helper.BuildPagination(paging, total))
}

// 🟢 GET /api/u/students/:studentId — detail expediente (profil +
// timeline incident). Di luar scope → 404, sama dengan tidak ada.
func (ctrl *StudentRecordController) GetStudentRecord(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if allowed, err := incidentController.CanViewStudent(ctrl.DB, actor.UserID, actor.Role, actor.SchoolID, studentID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify access")
	} else if !allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	var student model.ProfileModel
	if err := ctrl.DB.
		Where("profile_id = ? AND profile_role = ?", studentID, constants.RoleStudent).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var incidents []incidentModel.IncidentModel
	if err := ctrl.DB.
		Where("incident_student_id = ?", studentID).
		Order("incident_created_at DESC").
		Find(&incidents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch incidents")
	}

	involved, err := ctrl.reportsInvolvingStudent(actor.SchoolID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	return helper.JsonOK(c, "", dto.StudentRecordResponse{
		Student:         dto.ToStudentSummaryResponse(&student),
		Incidents:       incidentDto.ToIncidentResponseList(incidents),
		InvolvedReports: reportDto.ToReportResponseList(involved),
	})
}

// 🟢 POST /api/a/parent-students — director me-link parent ↔ student
// (keduanya harus profile valid di school yang sama).
func (ctrl *StudentRecordController) LinkParentStudent(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	var req dto.LinkParentStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	parentID, _ := uuid.Parse(req.ParentID)
	studentID, _ := uuid.Parse(req.StudentID)

	var parent, student model.ProfileModel
	if err := ctrl.DB.
		Where("profile_id = ? AND profile_role = ? AND profile_school_id = ?",
			parentID, constants.RoleParent, actor.SchoolID).
		First(&parent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Parent not found")
	}
	if err := ctrl.DB.
		Where("profile_id = ? AND profile_role = ? AND profile_school_id = ?",
			studentID, constants.RoleStudent, actor.SchoolID).
		First(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	link := model.ParentStudentModel{
		ParentStudentParentID:  parentID,
		ParentStudentStudentID: studentID,
	}
	if err := ctrl.DB.Where(&link).FirstOrCreate(&link).Error; err != nil {
		log.Printf("[ERROR] link parent-student: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create link")
	}

	return helper.JsonCreated(c, "Vínculo creado", link)
}

// reportsInvolvingStudent: report sekolah yang menyebut studentID di
// involved_student_ids. Kolomnya JSON array, jadi filter akhir di Go —
// portable antara postgres dan sqlite.
func (ctrl *StudentRecordController) reportsInvolvingStudent(schoolID, studentID uuid.UUID) ([]reportModel.ReportModel, error) {
	var candidates []reportModel.ReportModel
	if err := ctrl.DB.
		Where("report_school_id = ? AND report_involved_student_ids IS NOT NULL", schoolID).
		Order("report_created_at DESC").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	want := studentID.String()
	out := make([]reportModel.ReportModel, 0, len(candidates))
	for _, r := range candidates {
		for _, id := range r.ReportInvolvedStudentIDs {
			if id == want {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}
