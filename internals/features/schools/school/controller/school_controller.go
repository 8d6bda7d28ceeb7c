package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/schools/school/dto"
	"escuelasegura_backend/internals/features/schools/school/model"
	helper "escuelasegura_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

// 🟢 GET /schools — publik: form registrasi butuh daftar school.
func (ctrl *SchoolController) ListSchools(c *fiber.Ctx) error {
	var schools []model.SchoolModel
	if err := ctrl.DB.Order("school_name ASC").Find(&schools).Error; err != nil {
		log.Printf("[ERROR] list schools: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch schools")
	}
	return helper.JsonOK(c, "", dto.ToSchoolResponseList(schools))
}

// 🟢 POST /api/a/schools — director only (route gate).
func (ctrl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	school := model.SchoolModel{
		SchoolName:    req.Name,
		SchoolAddress: req.Address,
	}
	if err := ctrl.DB.Create(&school).Error; err != nil {
		log.Printf("[ERROR] create school: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create school")
	}

	return helper.JsonCreated(c, "Escuela creada", dto.ToSchoolResponse(&school))
}
