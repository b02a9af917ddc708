package company_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-bizdocs/internal/company"
	companyerrors "go-bizdocs/internal/company/errors"
	companyMock "go-bizdocs/internal/company/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeAssets struct {
	invalidated []string
}

func (f *fakeAssets) Invalidate(ctx context.Context, url string) error {
	f.invalidated = append(f.invalidated, url)
	return nil
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := company.NewService(repo, rdb)

		id := uuid.New().String()
		cached, _ := json.Marshal(company.ProfileResponse{ID: id, Name: "Stone Works"})
		redisMock.ExpectGet(company.GetProfileKey(id)).SetVal(string(cached))

		resp, err := svc.GetProfile(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "Stone Works", resp.Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and caches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := company.NewService(repo, rdb)

		id := uuid.New()
		comp := &company.Company{
			ID:           id,
			Name:         "Stone Works",
			Location:     "Nairobi",
			CurrencyCode: "KES",
			DefaultTerms: datatypes.JSON(`["Valid for 30 days"]`),
			IsActive:     true,
		}
		want := company.ProfileResponse{
			ID:           id.String(),
			Name:         "Stone Works",
			Location:     "Nairobi",
			CurrencyCode: "KES",
			DefaultTerms: []string{"Valid for 30 days"},
			IsActive:     true,
		}
		data, _ := json.Marshal(want)

		redisMock.ExpectGet(company.GetProfileKey(id.String())).RedisNil()
		repo.EXPECT().GetByID(ctx, id).Return(comp, nil)
		redisMock.ExpectSet(company.GetProfileKey(id.String()), data, time.Hour).SetVal("OK")

		resp, err := svc.GetProfile(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, want, *resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo, nil)

		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetProfile(ctx, id.String())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := company.NewService(nil, nil)

		_, err := svc.GetProfile(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields and invalidates cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := company.NewService(repo, rdb)

		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, Name: "Old Name", Phone: "0700"}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			assert.Equal(t, "0700", c.Phone)
			assert.JSONEq(t, `["Deposit 70%"]`, string(c.DefaultTerms))
			return nil
		})
		redisMock.ExpectDel(company.GetProfileKey(id.String())).SetVal(1)

		resp, err := svc.UpdateProfile(ctx, id.String(), company.UpdateProfileRequest{
			Name:         "New Name",
			DefaultTerms: []string{"Deposit 70%"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.Equal(t, []string{"Deposit 70%"}, resp.DefaultTerms)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo, nil)

		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := svc.UpdateProfile(ctx, id.String(), company.UpdateProfileRequest{Name: "x"})
		assert.EqualError(t, err, "db down")
	})

	t.Run("refreshes cached images", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		assets := &fakeAssets{}
		svc := company.NewServiceWithAssets(repo, nil, assets)

		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(&company.Company{
			ID:           id,
			LogoURL:      "https://cdn.example.com/old.png",
			WatermarkURL: "https://cdn.example.com/mark.png",
		}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := svc.UpdateProfile(ctx, id.String(), company.UpdateProfileRequest{LogoURL: "https://cdn.example.com/new.png"})

		assert.NoError(t, err)
		assert.Equal(t, []string{
			"https://cdn.example.com/old.png",
			"https://cdn.example.com/mark.png",
			"https://cdn.example.com/new.png",
		}, assets.invalidated)
	})
}
