package services

import (
	"fmt"
	"strconv"
	"time"

	"libris/internal/apperrors"
	"libris/internal/models"
	"libris/internal/repositories"
)

// BorrowService handles business logic for borrow-record administration.
type BorrowService struct {
	recordRepo repositories.BorrowRecordRepository
}

// NewBorrowService creates a new BorrowService.
func NewBorrowService(recordRepo repositories.BorrowRecordRepository) *BorrowService {
	return &BorrowService{
		recordRepo: recordRepo,
	}
}

// ConfirmReturn marks a borrow record as returned and stamps the
// return date. Returning an already-returned record is rejected.
func (s *BorrowService) ConfirmReturn(recordID string) (*models.BorrowRecord, error) {
	record, err := s.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}

	if record.Status == models.StatusReturned {
		return nil, apperrors.ErrAlreadyReturned
	}

	now := time.Now()
	record.Status = models.StatusReturned
	record.ReturnDate = &now
	if err := s.recordRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to confirm return: %w", err)
	}
	return record, nil
}

// ListRecords returns one page of borrow-record summaries plus the
// total count of matches. Title and status filters are optional and
// combine with AND.
func (s *BorrowService) ListRecords(page, pageSize int64, bookTitle, status string) ([]models.BorrowRecordSummary, int64, error) {
	records, total, err := s.recordRepo.List(page, pageSize, bookTitle, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list borrow records: %w", err)
	}

	summaries := make([]models.BorrowRecordSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, records[i].Summary())
	}
	return summaries, total, nil
}

// CountAll returns the total number of borrow records as a decimal
// string.
func (s *BorrowService) CountAll() (string, error) {
	count, err := s.recordRepo.Count()
	if err != nil {
		return "", fmt.Errorf("failed to count borrow records: %w", err)
	}
	return strconv.FormatInt(count, 10), nil
}

// OverdueRate returns the share of overdue records as a percentage
// string. A zero total yields "0.00%" rather than a division by zero.
func (s *BorrowService) OverdueRate() (string, error) {
	return s.statusRate(models.StatusOverdue)
}

// ReturnedRate returns the share of returned records as a percentage
// string. A zero total yields "0.00%".
func (s *BorrowService) ReturnedRate() (string, error) {
	return s.statusRate(models.StatusReturned)
}

func (s *BorrowService) statusRate(status string) (string, error) {
	total, err := s.recordRepo.Count()
	if err != nil {
		return "", fmt.Errorf("failed to count borrow records: %w", err)
	}
	if total == 0 {
		return "0.00%", nil
	}

	matching, err := s.recordRepo.CountByStatus(status)
	if err != nil {
		return "", fmt.Errorf("failed to count %s records: %w", status, err)
	}
	return fmt.Sprintf("%.2f%%", float64(matching)/float64(total)*100), nil
}
