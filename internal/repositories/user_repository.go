package repositories

import "libris/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	// List returns one page of users plus the total count of matches.
	// A non-empty keyword matches username OR email as a substring.
	List(page, pageSize int64, keyword string) ([]models.User, int64, error)
	// CountActive counts users whose disabled flag is clear.
	CountActive() (int64, error)
}
