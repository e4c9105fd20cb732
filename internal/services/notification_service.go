package services

import (
	"encoding/json"
	"fmt"
	"log"

	"libris/internal/models"
	"libris/internal/repositories"
	"libris/pkg/rabbitmq"
)

// NotificationService handles business logic for admin notifications.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	publisher        rabbitmq.Publisher // nil when no broker is configured
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, publisher rabbitmq.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

// List returns one page of notification summaries plus the total count
// of matches. The keyword matches the content as a substring.
func (s *NotificationService) List(page, pageSize int64, keyword string) ([]models.NotificationSummary, int64, error) {
	notifications, total, err := s.notificationRepo.List(page, pageSize, keyword)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	summaries := make([]models.NotificationSummary, 0, len(notifications))
	for i := range notifications {
		summaries = append(summaries, notifications[i].Summary())
	}
	return summaries, total, nil
}

// PushToAll stores one broadcast notification and publishes a
// broadcast event for downstream delivery workers.
func (s *NotificationService) PushToAll(content string) error {
	notification := &models.Notification{
		Recipient: nil, // broadcast
		Content:   content,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to store broadcast notification: %w", err)
	}

	s.publishEvent(rabbitmq.RoutingKeyBroadcast, notification)
	return nil
}

// PushToUser stores a notification addressed to one user and publishes
// a targeted event. The username must belong to a known account.
func (s *NotificationService) PushToUser(username, content string) error {
	if _, err := s.userRepo.GetByUsername(username); err != nil {
		return err
	}

	recipient := username
	notification := &models.Notification{
		Recipient: &recipient,
		Content:   content,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to store notification for %s: %w", username, err)
	}

	s.publishEvent(rabbitmq.RoutingKeyTargeted, notification)
	return nil
}

// publishEvent emits the push event. Publish failures are logged, not
// returned: the notification is already persisted and listing must
// keep working without a broker.
func (s *NotificationService) publishEvent(routingKey string, notification *models.Notification) {
	if s.publisher == nil {
		log.Println("RabbitMQ publisher is not configured. Skipping notification event.")
		return
	}

	event := map[string]interface{}{
		"notification_id": notification.ID,
		"recipient":       notification.Recipient,
		"content":         notification.Content,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal notification event: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.NotificationExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish notification event %s: %v", notification.ID, err)
	}
}
