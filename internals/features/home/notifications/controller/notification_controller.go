package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/home/notifications/dto"
	"escuelasegura_backend/internals/features/home/notifications/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

// Tidak ada endpoint create di sini: Notification hanya dibuat oleh
// FanoutService. Surface HTTP-nya cuma baca + mark-read milik sendiri.
type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/u/notifications — strict milik recipient, terbaru dulu.
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ?", actor.UserID).
		Count(&total).Error; err != nil {
		log.Printf("[ERROR] count notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var notifs []model.NotificationModel
	if err := ctrl.DB.
		Where("notification_recipient_id = ?", actor.UserID).
		Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&notifs).Error; err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	var unread int64
	_ = ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ? AND notification_is_read = ?", actor.UserID, false).
		Count(&unread).Error

	return helper.JsonList(c, "", fiber.Map{
		"items":        dto.ToNotificationResponseList(notifs),
		"unread_count": unread,
	}, helper.BuildPagination(paging, total))
}

// 🟢 PATCH /api/u/notifications/:id/read — mark satu notifikasi milik sendiri.
// Baris milik orang lain dijawab 404, bukan 403 — tidak membocorkan eksistensi.
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	var notif model.NotificationModel
	if err := ctrl.DB.
		Where("notification_id = ? AND notification_recipient_id = ?", id, actor.UserID).
		First(&notif).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notification")
	}

	if err := ctrl.DB.Model(&notif).Update("notification_is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	notif.NotificationIsRead = true
	return helper.JsonUpdated(c, "Notification marked as read", dto.ToNotificationResponse(&notif))
}

// 🟢 POST /api/u/notifications/read-all — bulk update, hanya baris unread
// milik actor.
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	res := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ? AND notification_is_read = ?", actor.UserID, false).
		Update("notification_is_read", true)
	if res.Error != nil {
		log.Printf("[ERROR] mark all read: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}

	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{
		"updated": res.RowsAffected,
	})
}
