package client_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-bizdocs/internal/client"
	clienterrors "go-bizdocs/internal/client/errors"

	clientMock "go-bizdocs/internal/client/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   client.Service
	repo      *clientMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()
	repo := clientMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   client.NewService(db, repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

const companyID = "c56a4180-65aa-42ec-a945-5fd21dec0538"

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the list cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cl *client.Client) error {
			assert.Equal(t, "Jane Wanjiru", cl.Name)
			assert.Equal(t, "Kilimani", cl.SiteLocation)
			assert.Equal(t, companyID, cl.CompanyID.String())
			return nil
		})
		deps.redismock.ExpectDel(client.GetClientAllKey(companyID)).SetVal(1)

		res, err := deps.service.Create(ctx, companyID, client.CreateClientRequest{
			Name:         "  Jane Wanjiru ",
			SiteLocation: "Kilimani",
			Mobile:       "0712 345 678",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Jane Wanjiru", res.Name)
		assert.NotEmpty(t, res.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_client_company_name"})

		_, err := deps.service.Create(ctx, companyID, client.CreateClientRequest{Name: "Jane"})

		assert.ErrorIs(t, err, clienterrors.ErrClientNameExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "nope", client.CreateClientRequest{Name: "Jane"})

		assert.ErrorIs(t, err, clienterrors.ErrInvalidCompanyID)
	})
}

func TestClientService_GetAll(t *testing.T) {
	ctx := context.Background()
	cacheKey := client.GetClientAllKey(companyID)

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []client.ClientResponse{{ID: "cl-1", Name: "Jane"}}
		raw, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(raw))

		res, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, cached, res)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		rows := []client.Client{{ID: id, CompanyID: uuid.MustParse(companyID), Name: "Jane"}}
		want := []client.ClientResponse{{ID: id.String(), CompanyID: companyID, Name: "Jane"}}
		raw, _ := json.Marshal(want)

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID).Return(rows, nil)
		deps.redismock.ExpectSet(cacheKey, raw, 30*time.Minute).SetVal("OK")

		res, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, want, res)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestClientService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.NewString()
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID, id)

		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, companyID, "42")

		assert.ErrorIs(t, err, clienterrors.ErrInvalidClientID)
	})
}

func TestClientService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	id := uuid.New()
	existing := &client.Client{ID: id, CompanyID: uuid.MustParse(companyID), Name: "Old"}

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(existing, nil)
	deps.repo.EXPECT().Update(ctx, existing).Return(nil)
	deps.redismock.ExpectDel(client.GetClientAllKey(companyID)).SetVal(1)

	res, err := deps.service.Update(ctx, companyID, id.String(), client.UpdateClientRequest{Name: "New", Email: "new@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, "New", res.Name)
	assert.Equal(t, "new@example.com", res.Email)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.NewString()
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(nil)
		deps.redismock.ExpectDel(client.GetClientAllKey(companyID)).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, companyID, id))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found keeps the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.NewString()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, companyID, id)

		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}
