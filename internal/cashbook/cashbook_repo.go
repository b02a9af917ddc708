package cashbook

import (
	"context"
	"time"

	"go-bizdocs/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=cashbook_repo.go -destination=mock/cashbook_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	FindByPeriod(ctx context.Context, companyID string, from, to *time.Time) ([]Entry, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByPeriod returns entries in book order: by date, then by insertion.
func (r *repository) FindByPeriod(ctx context.Context, companyID string, from, to *time.Time) ([]Entry, error) {
	var entries []Entry
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if from != nil {
		q = q.Where("entry_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("entry_date <= ?", *to)
	}
	err := q.Order("entry_date ASC").Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Entry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
