package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"libris/internal/models"
)

// MockNotificationRepository is an in-memory implementation of NotificationRepository.
type MockNotificationRepository struct {
	notifications map[string]models.Notification
	mu            sync.RWMutex
}

// NewMockNotificationRepository creates a new instance of MockNotificationRepository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]models.Notification),
	}
}

// Create adds a new notification.
func (r *MockNotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	r.notifications[notification.ID] = *notification
	return nil
}

// List returns one page of notifications plus the total matching count.
func (r *MockNotificationRepository) List(page, pageSize int64, keyword string) ([]models.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Notification
	for _, n := range r.notifications {
		if keyword == "" || strings.Contains(n.Content, keyword) {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return pageWindow(matched, page, pageSize), int64(len(matched)), nil
}
