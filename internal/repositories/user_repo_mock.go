package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"libris/internal/apperrors"
	"libris/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return apperrors.ErrDuplicateUsername
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrEmailNotFound
}

// Update replaces an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

// List returns one page of users plus the total matching count.
func (r *MockUserRepository) List(page, pageSize int64, keyword string) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.User
	for _, u := range r.users {
		if keyword == "" || strings.Contains(u.Username, keyword) || strings.Contains(u.Email, keyword) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return pageWindow(matched, page, pageSize), int64(len(matched)), nil
}

// CountActive counts users whose disabled flag is clear.
func (r *MockUserRepository) CountActive() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if !u.Disabled {
			count++
		}
	}
	return count, nil
}

// pageWindow slices one page out of a matched result set.
func pageWindow[T any](matched []T, page, pageSize int64) []T {
	start := (page - 1) * pageSize
	if start >= int64(len(matched)) {
		return nil
	}
	end := start + pageSize
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end]
}
