package models

import "gorm.io/gorm"

// Roles assignable to an account.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a library account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(20);default:user"`
	Disabled   bool   `json:"-" gorm:"column:is_deleted;default:false"` // Account ban flag, exposed as 0/1 in summaries
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// UserSummary is the client-facing view of a user. The password hash
// never leaves the service layer.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsDeleted int    `json:"is_deleted"`
}

// Summary builds the client-facing view.
func (u *User) Summary() UserSummary {
	isDeleted := 0
	if u.Disabled {
		isDeleted = 1
	}
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsDeleted: isDeleted,
	}
}
