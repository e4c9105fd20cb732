package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"libris/internal/apperrors"
	"libris/internal/models"
)

// MockBorrowRecordRepository is an in-memory implementation of BorrowRecordRepository.
type MockBorrowRecordRepository struct {
	records map[string]models.BorrowRecord
	mu      sync.RWMutex
}

// NewMockBorrowRecordRepository creates a new instance of MockBorrowRecordRepository.
func NewMockBorrowRecordRepository() *MockBorrowRecordRepository {
	return &MockBorrowRecordRepository{
		records: make(map[string]models.BorrowRecord),
	}
}

// Create adds a new borrow record.
func (r *MockBorrowRecordRepository) Create(record *models.BorrowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.records[record.ID] = *record
	return nil
}

// GetByID returns a borrow record by its ID.
func (r *MockBorrowRecordRepository) GetByID(id string) (*models.BorrowRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return &record, nil
}

// Update replaces an existing borrow record.
func (r *MockBorrowRecordRepository) Update(record *models.BorrowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return apperrors.ErrRecordNotFound
	}
	r.records[record.ID] = *record
	return nil
}

// List returns one page of borrow records plus the total matching count.
func (r *MockBorrowRecordRepository) List(page, pageSize int64, bookTitle, status string) ([]models.BorrowRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.BorrowRecord
	for _, rec := range r.records {
		if bookTitle != "" && !strings.Contains(rec.BookTitle, bookTitle) {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return pageWindow(matched, page, pageSize), int64(len(matched)), nil
}

// Count counts all borrow records.
func (r *MockBorrowRecordRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.records)), nil
}

// CountByStatus counts borrow records with the given status.
func (r *MockBorrowRecordRepository) CountByStatus(status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, rec := range r.records {
		if rec.Status == status {
			count++
		}
	}
	return count, nil
}
