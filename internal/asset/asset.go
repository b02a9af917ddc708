// Package asset resolves logo and watermark URLs to data URIs the layout
// engine can embed, caching the encoded result in Redis.
package asset

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-bizdocs/internal/pdfrender"
	"go-bizdocs/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const CacheKeyPrefix = "assets:datauri:"

func CacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return CacheKeyPrefix + hex.EncodeToString(sum[:])
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Store struct {
	rdb     *redis.Client
	fetcher Fetcher
	ttl     time.Duration
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewStore(rdb *redis.Client, fetcher Fetcher, ttl time.Duration, logger ...*zap.Logger) *Store {
	l := zap.L().Named("asset.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.store")
	}
	return &Store{rdb: rdb, fetcher: fetcher, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

// DataURI returns url as an embeddable data URI. Empty input yields "";
// inputs that already are data URIs pass through untouched.
func (s *Store) DataURI(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", nil
	}
	if strings.HasPrefix(url, "data:") {
		return url, nil
	}

	log := contextutil.GetLogger(ctx, s.logger)
	key := CacheKey(url)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Warn("asset cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		raw, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", url, err)
		}
		uri, err := pdfrender.EncodeDataURI(raw)
		if err != nil {
			return "", err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, key, uri, s.ttl).Err(); err != nil {
				log.Warn("asset cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return uri, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Logo is required when configured: a failure is returned to the caller.
func (s *Store) Logo(ctx context.Context, url string) (string, error) {
	return s.DataURI(ctx, url)
}

// Watermark never fails; a broken watermark renders as none.
func (s *Store) Watermark(ctx context.Context, url string) string {
	uri, err := s.DataURI(ctx, url)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("watermark unavailable, rendering without it",
			zap.String("url", url),
			zap.Error(err),
		)
		return ""
	}
	return uri
}

// Invalidate drops the cached copy, e.g. after a company changes its logo.
func (s *Store) Invalidate(ctx context.Context, url string) error {
	if s.rdb == nil || url == "" || strings.HasPrefix(url, "data:") {
		return nil
	}
	return s.rdb.Del(ctx, CacheKey(url)).Err()
}
