package dto

import (
	"github.com/google/uuid"

	"escuelasegura_backend/internals/features/home/notifications/model"
)

// ================== RESPONSE ==================
type NotificationResponse struct {
	NotificationID          uuid.UUID `json:"notification_id"`
	NotificationRecipientID uuid.UUID `json:"notification_recipient_id"`
	NotificationType        string    `json:"notification_type"`
	NotificationTitle       string    `json:"notification_title"`
	NotificationBody        string    `json:"notification_body"`
	NotificationLink        *string   `json:"notification_link"`
	NotificationIsRead      bool      `json:"notification_is_read"`
	NotificationCreatedAt   string    `json:"notification_created_at"`
}

// ================ CONVERSION =================
func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	return &NotificationResponse{
		NotificationID:          m.NotificationID,
		NotificationRecipientID: m.NotificationRecipientID,
		NotificationType:        m.NotificationType,
		NotificationTitle:       m.NotificationTitle,
		NotificationBody:        m.NotificationBody,
		NotificationLink:        m.NotificationLink,
		NotificationIsRead:      m.NotificationIsRead,
		NotificationCreatedAt:   m.NotificationCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToNotificationResponse(&m))
	}
	return result
}
