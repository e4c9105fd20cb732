package repositories

import "libris/internal/models"

// BorrowRecordRepository defines the interface for loan data access.
type BorrowRecordRepository interface {
	Create(record *models.BorrowRecord) error
	GetByID(id string) (*models.BorrowRecord, error)
	Update(record *models.BorrowRecord) error
	// List returns one page of records plus the total count of matches.
	// Title and status filters are optional and combine with AND.
	List(page, pageSize int64, bookTitle, status string) ([]models.BorrowRecord, int64, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}
