package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libris/internal/apperrors"
	"libris/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database. The unique index on
// username is the last line of defense against a registration race.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.WrapDB(err, apperrors.ErrUserNotFound, "create user")
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.WrapDB(err, apperrors.ErrUserNotFound, fmt.Sprintf("get user by ID %s", id))
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, apperrors.WrapDB(err, apperrors.ErrUserNotFound, fmt.Sprintf("get user by username %s", username))
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, apperrors.WrapDB(err, apperrors.ErrEmailNotFound, fmt.Sprintf("get user by email %s", email))
	}
	return &user, nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.WrapDB(res.Error, apperrors.ErrUserNotFound, "update user")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List returns one page of users plus the total matching count. The
// keyword, when present, is applied as a single OR group so it composes
// with any other condition by AND.
func (r *GORMUserRepository) List(page, pageSize int64, keyword string) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var users []models.User
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(int(offset)).Limit(int(pageSize)).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// CountActive counts users whose disabled flag is clear.
func (r *GORMUserRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return count, nil
}
