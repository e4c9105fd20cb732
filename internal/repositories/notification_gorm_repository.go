package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libris/internal/apperrors"
	"libris/internal/models"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create persists a new notification.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return apperrors.WrapDB(err, apperrors.ErrRecordNotFound, "create notification")
	}
	return nil
}

// List returns one page of notifications plus the total matching count.
func (r *GORMNotificationRepository) List(page, pageSize int64, keyword string) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{})
	if keyword != "" {
		query = query.Where("content LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	var notifications []models.Notification
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(int(offset)).Limit(int(pageSize)).Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}
