package models

import (
	"time"

	"gorm.io/gorm"
)

// Borrow record statuses.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

// BorrowRecord represents one loan of a book to a user.
type BorrowRecord struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string     `json:"user_id" gorm:"type:varchar(36);index"`
	BookTitle  string     `json:"book_title" gorm:"type:varchar(255)" validate:"required"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"` // nil until the book comes back
	Status     string     `json:"status" gorm:"type:varchar(20);default:borrowed"`
	gorm.Model
}

// BorrowRecordSummary is the client-facing view of a loan.
type BorrowRecordSummary struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookTitle  string     `json:"book_title"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
}

// Summary builds the client-facing view.
func (r *BorrowRecord) Summary() BorrowRecordSummary {
	return BorrowRecordSummary{
		ID:         r.ID,
		UserID:     r.UserID,
		BookTitle:  r.BookTitle,
		BorrowDate: r.BorrowDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Status:     r.Status,
	}
}
