package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/reports/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func ReportUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db, fanout.NewFanoutService(db))

	reports := user.Group("/reports")
	reports.Post("/", featuresMiddleware.RequireAction(policy.ActionCreateReport), ctrl.CreateReport)
	reports.Get("/", ctrl.ListReports)
	reports.Get("/:id", ctrl.GetReport)
}

func ReportStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db, fanout.NewFanoutService(db))

	reports := staff.Group("/reports")
	reports.Patch("/:id/status", featuresMiddleware.RequireAction(policy.ActionChangeReportStatus), ctrl.UpdateReportStatus)
}
