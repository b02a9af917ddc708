package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT so concurrent requests for the same company/type never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// Sequencer hands out human-readable document numbers, one sequence per prefix.
type Sequencer struct {
	repo Repository
}

func NewSequencer(repo Repository) *Sequencer {
	return &Sequencer{repo: repo}
}

// NextDocumentNumber returns e.g. "QT-000123".
func (s *Sequencer) NextDocumentNumber(ctx context.Context, companyID, prefix string) (string, error) {
	next, err := s.repo.GetNextValue(ctx, companyID, "document_"+prefix)
	if err != nil {
		return "", err
	}
	return FormatNumber(prefix, next), nil
}

func FormatNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
