package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileColumns are the only columns a profile update may touch.
var profileColumns = []string{
	"name", "location", "phone", "email",
	"logo_url", "watermark_url", "currency_code",
	"default_terms", "is_active", "updated_at",
}

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Update(ctx context.Context, company *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update writes profile columns only, including zero values such as
// is_active=false that a struct Updates would skip.
func (r *repository) Update(ctx context.Context, company *Company) error {
	res := r.db.WithContext(ctx).
		Model(company).
		Select(profileColumns).
		Updates(company)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
