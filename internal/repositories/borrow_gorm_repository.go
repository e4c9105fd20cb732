package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libris/internal/apperrors"
	"libris/internal/models"
)

// GORMBorrowRecordRepository is a GORM implementation of BorrowRecordRepository.
type GORMBorrowRecordRepository struct {
	db *gorm.DB
}

// NewGORMBorrowRecordRepository creates a new instance of GORMBorrowRecordRepository.
func NewGORMBorrowRecordRepository(db *gorm.DB) *GORMBorrowRecordRepository {
	return &GORMBorrowRecordRepository{
		db: db,
	}
}

// Create creates a new borrow record.
func (r *GORMBorrowRecordRepository) Create(record *models.BorrowRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := r.db.Create(record).Error; err != nil {
		return apperrors.WrapDB(err, apperrors.ErrRecordNotFound, "create borrow record")
	}
	return nil
}

// GetByID retrieves a borrow record by its ID.
func (r *GORMBorrowRecordRepository) GetByID(id string) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, apperrors.WrapDB(err, apperrors.ErrRecordNotFound, fmt.Sprintf("get borrow record by ID %s", id))
	}
	return &record, nil
}

// Update saves all fields of an existing borrow record.
func (r *GORMBorrowRecordRepository) Update(record *models.BorrowRecord) error {
	res := r.db.Save(record)
	if res.Error != nil {
		return apperrors.WrapDB(res.Error, apperrors.ErrRecordNotFound, "update borrow record")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// List returns one page of borrow records plus the total matching
// count. Title and status filters combine with AND when both present.
func (r *GORMBorrowRecordRepository) List(page, pageSize int64, bookTitle, status string) ([]models.BorrowRecord, int64, error) {
	query := r.db.Model(&models.BorrowRecord{})
	if bookTitle != "" {
		query = query.Where("book_title LIKE ?", "%"+bookTitle+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count borrow records: %w", err)
	}

	var records []models.BorrowRecord
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(int(offset)).Limit(int(pageSize)).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("list borrow records: %w", err)
	}
	return records, total, nil
}

// Count counts all borrow records.
func (r *GORMBorrowRecordRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.BorrowRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count borrow records: %w", err)
	}
	return count, nil
}

// CountByStatus counts borrow records with the given status.
func (r *GORMBorrowRecordRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.BorrowRecord{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count borrow records by status %s: %w", status, err)
	}
	return count, nil
}
