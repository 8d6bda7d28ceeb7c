package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/schools/school/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func SchoolPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSchoolController(db)

	api.Get("/schools", ctrl.ListSchools)
}

func SchoolStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSchoolController(db)

	staff.Post("/schools", featuresMiddleware.RequireAction(policy.ActionCreateSchool), ctrl.CreateSchool)
}
