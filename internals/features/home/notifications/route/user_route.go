package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/home/notifications/controller"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.GetMyNotifications)
	notification.Patch("/:id/read", ctrl.MarkAsRead)
	notification.Post("/read-all", ctrl.MarkAllAsRead)
}
