package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification represents a message pushed by an administrator.
// A nil Recipient means the notification is a broadcast to everyone.
type Notification struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Recipient *string `json:"recipient" gorm:"type:varchar(100);index"`
	Content   string  `json:"content" gorm:"type:text" validate:"required"`
	IsRead    bool    `json:"is_read" gorm:"default:false"`
	gorm.Model
}

// NotificationSummary is the client-facing view of a notification.
type NotificationSummary struct {
	ID        string    `json:"id"`
	Recipient *string   `json:"recipient"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary builds the client-facing view.
func (n *Notification) Summary() NotificationSummary {
	return NotificationSummary{
		ID:        n.ID,
		Recipient: n.Recipient,
		Content:   n.Content,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
