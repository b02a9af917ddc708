package company

import (
	"context"
	"encoding/json"
	"time"

	companyerrors "go-bizdocs/internal/company/errors"
	"go-bizdocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

const (
	ProfileKeyPrefix = "company:profile:"
	profileTTL       = time.Hour
)

func GetProfileKey(companyID string) string {
	return ProfileKeyPrefix + companyID
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, id string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*ProfileResponse, error)
}

// AssetInvalidator drops cached logo and watermark bytes.
type AssetInvalidator interface {
	Invalidate(ctx context.Context, url string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	assets AssetInvalidator
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// NewServiceWithAssets also refreshes cached images whenever the profile changes.
func NewServiceWithAssets(repo Repository, rdb *redis.Client, assets AssetInvalidator, logger ...*zap.Logger) Service {
	svc := NewService(repo, rdb, logger...).(*service)
	svc.assets = assets
	return svc
}

func (s *service) GetProfile(ctx context.Context, id string) (*ProfileResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	cacheKey := GetProfileKey(id)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp ProfileResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		comp, err := s.repo.GetByID(ctx, uid)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp, err := mapToResponse(comp)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, profileTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("cache company profile failed",
						zap.String("key", cacheKey),
						zap.Error(err),
					)
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProfileResponse), nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	oldImages := []string{comp.LogoURL, comp.WatermarkURL}
	applyUpdate(comp, req)
	if req.DefaultTerms != nil {
		raw, err := json.Marshal(req.DefaultTerms)
		if err != nil {
			return nil, err
		}
		comp.DefaultTerms = datatypes.JSON(raw)
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		log.Error("update company profile failed", zap.String("company_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, GetProfileKey(id)).Err(); err != nil {
			log.Warn("invalidate company profile cache failed", zap.String("company_id", id), zap.Error(err))
		}
	}

	s.invalidateImages(ctx, append(oldImages, comp.LogoURL, comp.WatermarkURL))

	log.Info("company profile updated", zap.String("company_id", id))
	return mapToResponse(comp)
}

// invalidateImages covers both a replaced URL and new bytes behind the same URL.
func (s *service) invalidateImages(ctx context.Context, urls []string) {
	if s.assets == nil {
		return
	}
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		if err := s.assets.Invalidate(ctx, url); err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("invalidate cached image failed", zap.String("url", url), zap.Error(err))
		}
	}
}

func applyUpdate(comp *Company, req UpdateProfileRequest) {
	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.Location != "" {
		comp.Location = req.Location
	}
	if req.Phone != "" {
		comp.Phone = req.Phone
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.LogoURL != "" {
		comp.LogoURL = req.LogoURL
	}
	if req.WatermarkURL != "" {
		comp.WatermarkURL = req.WatermarkURL
	}
	if req.CurrencyCode != "" {
		comp.CurrencyCode = req.CurrencyCode
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}
}

func mapToResponse(c *Company) (*ProfileResponse, error) {
	terms := []string{}
	if len(c.DefaultTerms) > 0 {
		if err := json.Unmarshal(c.DefaultTerms, &terms); err != nil {
			return nil, companyerrors.ErrInvalidTerms
		}
	}
	return &ProfileResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Location:     c.Location,
		Phone:        c.Phone,
		Email:        c.Email,
		LogoURL:      c.LogoURL,
		WatermarkURL: c.WatermarkURL,
		CurrencyCode: c.CurrencyCode,
		DefaultTerms: terms,
		IsActive:     c.IsActive,
	}, nil
}
