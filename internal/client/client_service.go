package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	clienterrors "go-bizdocs/internal/client/errors"
	"go-bizdocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ClientAllKeyPrefix = "clients:all:"
	clientListTTL      = 30 * time.Minute
)

func GetClientAllKey(companyID string) string {
	return ClientAllKeyPrefix + companyID
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ClientResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ClientResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateClientRequest) (ClientResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	cl := &Client{ID: uuid.New(), CompanyID: cid}
	applyRequest(cl, req.Name, req.SiteLocation, req.Mobile, req.Email)

	if err := s.repo.WithTx(tx).Create(ctx, cl); err != nil {
		log.Error("create client failed", zap.String("company_id", companyID), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidate(ctx, companyID)
	log.Info("client created", zap.String("client_id", cl.ID.String()))
	return mapToResponse(*cl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ClientResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, clienterrors.ErrInvalidCompanyID
	}

	cacheKey := GetClientAllKey(companyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ClientResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		clients, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(clients)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, clientListTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ClientResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	cl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*cl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateClientRequest) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	applyRequest(cl, req.Name, req.SiteLocation, req.Mobile, req.Email)

	if err := qtx.Update(ctx, cl); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*cl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return clienterrors.ErrInvalidClientID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, companyID)
	return nil
}

// invalidate runs after commit so readers never re-cache the old list.
func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetClientAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate client cache failed",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func applyRequest(cl *Client, name, site, mobile, email string) {
	cl.Name = strings.TrimSpace(name)
	cl.SiteLocation = strings.TrimSpace(site)
	cl.Mobile = strings.TrimSpace(mobile)
	cl.Email = strings.TrimSpace(email)
}

func mapToResponse(cl Client) ClientResponse {
	resp := ClientResponse{
		ID:           cl.ID.String(),
		CompanyID:    cl.CompanyID.String(),
		Name:         cl.Name,
		SiteLocation: cl.SiteLocation,
		Mobile:       cl.Mobile,
		Email:        cl.Email,
	}
	if !cl.CreatedAt.IsZero() {
		resp.CreatedAt = cl.CreatedAt.Format(time.RFC3339)
	}
	if !cl.UpdatedAt.IsZero() {
		resp.UpdatedAt = cl.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(clients []Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		res[i] = mapToResponse(cl)
	}
	return res
}
