package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hotel-pricing/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CachedCompetitorSource fronts another source with a Redis cache. Concurrent
// misses share one upstream fetch. With a nil client it only coalesces.
//
// The shared fetch is detached from any single caller and bounded by
// fetchTimeout; each caller still gives up when its own context ends.
type CachedCompetitorSource struct {
	next         CompetitorSource
	rdb          *redis.Client
	ttl          time.Duration
	fetchTimeout time.Duration
	prefix       string
	group        singleflight.Group
	log          *slog.Logger
}

func NewCachedCompetitorSource(next CompetitorSource, rdb *redis.Client, ttl, fetchTimeout time.Duration, logger *slog.Logger) *CachedCompetitorSource {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	return &CachedCompetitorSource{
		next:         next,
		rdb:          rdb,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		prefix:       "competitors",
		log:          logger,
	}
}

func (s *CachedCompetitorSource) Records(ctx context.Context) ([]models.CompetitorPriceRecord, error) {
	var records []models.CompetitorPriceRecord
	err := s.load(ctx, "records", &records, func(ctx context.Context) (any, error) {
		return s.next.Records(ctx)
	})
	return records, err
}

func (s *CachedCompetitorSource) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.load(ctx, "names", &names, func(ctx context.Context) (any, error) {
		return s.next.Names(ctx)
	})
	return names, err
}

// Invalidate drops both cached entries.
func (s *CachedCompetitorSource) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, s.key("records"), s.key("names")).Err()
}

func (s *CachedCompetitorSource) key(name string) string {
	return s.prefix + ":" + name
}

// load fills out from the cache or from fetch. out must be a pointer to the
// same type fetch returns.
func (s *CachedCompetitorSource) load(ctx context.Context, name string, out any, fetch func(context.Context) (any, error)) error {
	key := s.key(name)
	if s.rdb != nil {
		bs, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if jerr := json.Unmarshal(bs, out); jerr == nil {
				return nil
			}
			s.log.Warn("discarding unreadable cache entry", "key", key)
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("competitor cache read failed", "key", key, "error", err)
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		bs, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if err := s.rdb.SetEx(fetchCtx, key, bs, s.ttl).Err(); err != nil {
				s.log.Warn("competitor cache write failed", "key", key, "error", err)
			}
		}
		return bs, nil
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrExternalSourceUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), out)
	}
}
