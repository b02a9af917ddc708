package company_test

import (
	"context"
	"regexp"
	"testing"

	"go-bizdocs/internal/company"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (company.Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return company.NewRepository(db), mock
}

func TestCompanyRepository_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("writes profile columns only", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "companies" SET "name"=\$1,.*"is_active"=.*WHERE`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, &company.Company{ID: id, Name: "Stone Works", IsActive: false})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing company", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "companies" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Update(ctx, &company.Company{ID: id, Name: "Stone Works"})

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestCompanyRepository_GetByID(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "currency_code"}).AddRow(id, "Stone Works", "KES"))

	got, err := repo.GetByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "Stone Works", got.Name)
	assert.Equal(t, "KES", got.CurrencyCode)
}
