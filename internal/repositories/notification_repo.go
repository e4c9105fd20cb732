package repositories

import "libris/internal/models"

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// List returns one page of notifications plus the total count of
	// matches. A non-empty keyword matches the content as a substring.
	List(page, pageSize int64, keyword string) ([]models.Notification, int64, error)
}
