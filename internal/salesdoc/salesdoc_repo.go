package salesdoc

import (
	"context"
	"database/sql"
	"time"

	"go-bizdocs/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salesdoc_repo.go -destination=mock/salesdoc_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, doc *SalesDocument) error
	FindAllByCompany(ctx context.Context, companyID string, kind Kind) ([]SalesDocument, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalesDocument, error)
	Update(ctx context.Context, doc *SalesDocument) error
	Delete(ctx context.Context, companyID, id string) error
	MarkPDFGenerated(ctx context.Context, companyID, id, url string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx runs the repository on an existing *sql.Tx, the same way gorm's
// own Begin swaps the connection pool of a fresh session.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, doc *SalesDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, kind Kind) ([]SalesDocument, error) {
	var docs []SalesDocument
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Find(&docs).Error
	return docs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalesDocument, error) {
	var doc SalesDocument
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update saves the header and replaces the item list.
func (r *repository) Update(ctx context.Context, doc *SalesDocument) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("document_id = ?", doc.ID).Delete(&SalesDocumentItem{}).Error; err != nil {
		return err
	}
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New()
		doc.Items[i].DocumentID = doc.ID
	}
	if len(doc.Items) > 0 {
		if err := db.Create(&doc.Items).Error; err != nil {
			return err
		}
	}
	return db.Omit("Items").Save(doc).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SalesDocument{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkPDFGenerated(ctx context.Context, companyID, id, url string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&SalesDocument{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pdf_url":          url,
			"pdf_generated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
