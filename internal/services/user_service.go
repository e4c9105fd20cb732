package services

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"libris/internal/apperrors"
	"libris/internal/models"
	"libris/internal/repositories"
)

// UserService handles business logic for the user directory.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile returns a user by ID. A missing user is not an error;
// callers receive nil and render an empty result.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// ListUsers returns one page of user summaries plus the total count of
// matches. The keyword matches username or email as a substring.
func (s *UserService) ListUsers(page, pageSize int64, keyword string) ([]models.UserSummary, int64, error) {
	users, total, err := s.userRepo.List(page, pageSize, keyword)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, total, nil
}

// UpdateStatus sets or clears the disabled flag: status 1 disables the
// account, any other value re-enables it.
func (s *UserService) UpdateStatus(userID string, status int) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	user.Disabled = status == 1
	return s.userRepo.Update(user)
}

// UpdatePassword replaces the password after verifying the old one.
// The stored hash is untouched when the old password does not match.
func (s *UserService) UpdatePassword(userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// UpdateProfile sets the user's email.
func (s *UserService) UpdateProfile(userID, email string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	user.Email = email
	return s.userRepo.Update(user)
}

// ResetPassword replaces the password of the account registered with
// the given email. No identity proof beyond the email is required;
// that matches the product's semantics and is a known gap.
func (s *UserService) ResetPassword(email, newPassword string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// CountActive returns the number of enabled accounts as a decimal
// string, the format the count endpoints expose.
func (s *UserService) CountActive() (string, error) {
	count, err := s.userRepo.CountActive()
	if err != nil {
		return "", fmt.Errorf("failed to count users: %w", err)
	}
	return strconv.FormatInt(count, 10), nil
}
