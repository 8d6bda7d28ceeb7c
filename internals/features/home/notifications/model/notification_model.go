package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel: dibuat eksklusif oleh Fanout service; satu-satunya
// mutasi adalah mark-read (single/bulk) oleh recipient-nya sendiri.
type NotificationModel struct {
	NotificationID          uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationRecipientID uuid.UUID `gorm:"column:notification_recipient_id;type:uuid;not null;index" json:"notification_recipient_id"`
	NotificationType        string    `gorm:"column:notification_type;type:varchar(30);not null" json:"notification_type"`
	NotificationTitle       string    `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody        string    `gorm:"column:notification_body;type:text;not null" json:"notification_body"`
	NotificationLink        *string   `gorm:"column:notification_link;type:varchar(512)" json:"notification_link"`
	NotificationIsRead      bool      `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationCreatedAt   time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
