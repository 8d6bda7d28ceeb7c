package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/alerts/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func PanicAlertUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPanicAlertController(db, fanout.NewFanoutService(db))

	alerts := user.Group("/panic-alerts")
	alerts.Post("/", featuresMiddleware.RequireAction(policy.ActionCreatePanicAlert), ctrl.CreatePanicAlert)
}

func PanicAlertStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPanicAlertController(db, fanout.NewFanoutService(db))

	alerts := staff.Group("/panic-alerts")
	alerts.Get("/", featuresMiddleware.RequireAction(policy.ActionViewPanicAlerts), ctrl.ListPanicAlerts)
	alerts.Patch("/:id/attend", featuresMiddleware.RequireAction(policy.ActionAttendPanicAlert), ctrl.AttendPanicAlert)
}
