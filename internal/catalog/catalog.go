package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/api/dto"
)

var ErrHouseNotFound = errors.New("house not found")

const snapshotKey = "catalog:houses_with_rounds"

// Fetcher is the API-client slice the catalog depends on.
type Fetcher interface {
	HousesWithRounds(ctx context.Context) ([]dto.HouseWithRounds, error)
}

// Service reads the house/round catalog the betting views are parameterized
// by. The data is owned by the backend; this layer only fetches it, optionally
// through a short-lived redis snapshot shared between consumers.
type Service struct {
	fetcher Fetcher
	rdb     *redis.Client // nil disables the snapshot cache
	ttl     time.Duration
	log     *zap.Logger
}

func New(f Fetcher, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{fetcher: f, rdb: rdb, ttl: ttl, log: log}
}

// HousesWithRounds returns the current catalog, serving from the redis
// snapshot when one is fresh.
func (s *Service) HousesWithRounds(ctx context.Context) ([]dto.HouseWithRounds, error) {
	if s.rdb != nil {
		b, err := s.rdb.Get(ctx, snapshotKey).Bytes()
		if err == nil {
			var cached []dto.HouseWithRounds
			if jsonErr := json.Unmarshal(b, &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("catalog snapshot read failed", zap.Error(err))
		}
	}

	houses, err := s.fetcher.HousesWithRounds(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, err := json.Marshal(houses); err == nil {
			if err := s.rdb.Set(ctx, snapshotKey, b, s.ttl).Err(); err != nil {
				s.log.Warn("catalog snapshot write failed", zap.Error(err))
			}
		}
	}
	return houses, nil
}

// House resolves a single house by ID.
func (s *Service) House(ctx context.Context, houseID int) (*HouseView, error) {
	houses, err := s.HousesWithRounds(ctx)
	if err != nil {
		return nil, err
	}
	for i := range houses {
		if houses[i].House.ID == houseID {
			return NewHouseView(houses[i]), nil
		}
	}
	return nil, ErrHouseNotFound
}
