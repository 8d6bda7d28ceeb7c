package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/users/profile/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func StudentRecordUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentRecordController(db)

	students := user.Group("/students", featuresMiddleware.RequireAction(policy.ActionViewStudentRecord))
	students.Get("/", ctrl.ListStudents)
	students.Get("/:studentId", ctrl.GetStudentRecord)
}

func StudentRecordStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentRecordController(db)

	staff.Post("/parent-students", featuresMiddleware.RequireAction(policy.ActionLinkParentStudent), ctrl.LinkParentStudent)
}
