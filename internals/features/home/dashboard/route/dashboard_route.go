package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/home/dashboard/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func DashboardUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)

	user.Get("/dashboard", featuresMiddleware.RequireAction(policy.ActionViewDashboard), ctrl.GetDashboard)
}

func DashboardStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)

	staff.Get("/panel", featuresMiddleware.RequireAction(policy.ActionViewDirectorPanel), ctrl.GetDirectorPanel)
}
