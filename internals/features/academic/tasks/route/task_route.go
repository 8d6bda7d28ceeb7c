package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/academic/tasks/controller"
	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

func TaskUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTaskController(db, fanout.NewFanoutService(db))

	tasks := user.Group("/tasks")
	tasks.Post("/", featuresMiddleware.RequireAction(policy.ActionCreateTask), ctrl.CreateTask)
	tasks.Get("/", ctrl.ListTasks)
	tasks.Get("/:id", ctrl.GetTask)
	tasks.Post("/:id/submissions", featuresMiddleware.RequireAction(policy.ActionSubmitTask), ctrl.CreateSubmission)
	tasks.Get("/:id/submissions", ctrl.ListSubmissions)
}

func TaskStaffRoutes(staff fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTaskController(db, fanout.NewFanoutService(db))

	staff.Patch("/submissions/:id/grade", featuresMiddleware.RequireAction(policy.ActionGradeSubmission), ctrl.GradeSubmission)
}
