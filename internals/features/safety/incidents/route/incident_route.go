package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	"escuelasegura_backend/internals/features/safety/incidents/controller"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func IncidentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewIncidentController(db, fanout.NewFanoutService(db))

	incidents := user.Group("/incidents")
	incidents.Get("/by-student/:studentId", featuresMiddleware.RequireAction(policy.ActionViewStudentRecord), ctrl.ListIncidentsByStudent)
}

func IncidentStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewIncidentController(db, fanout.NewFanoutService(db))

	incidents := staff.Group("/incidents")
	incidents.Post("/", featuresMiddleware.RequireAction(policy.ActionCreateIncident), ctrl.CreateIncident)
}
