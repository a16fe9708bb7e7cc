package location

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL bounds for driver location records. Stale positions must age out so the
// optimizer's start fallback never uses a position from hours ago.
const (
	DefaultTTL = 7200 * time.Second
	MinTTL     = 300 * time.Second
	MaxTTL     = 86400 * time.Second
)

// ClampTTL bounds a configured record lifetime to [MinTTL, MaxTTL].
// Non-positive values select the default.
func ClampTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTTL
	}
	if d < MinTTL {
		return MinTTL
	}
	if d > MaxTTL {
		return MaxTTL
	}
	return d
}

type locationRecord struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RedisLocationStore keeps each driver's latest reported position under a
// TTL-expiring key. Expired records simply stop resolving, which downgrades
// the optimizer's start resolution to its next fallback.
type RedisLocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocationStore(client *redis.Client, ttl time.Duration) *RedisLocationStore {
	return &RedisLocationStore{client: client, ttl: ClampTTL(ttl)}
}

func key(orgID, driverID string) string {
	return fmt.Sprintf("driver_location:%s:%s", orgID, driverID)
}

// Store or replace the driver's latest position.
func (s *RedisLocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) error {
	ts := loc.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	payload, err := json.Marshal(locationRecord{
		Lat:       loc.Lat,
		Lng:       loc.Lng,
		Heading:   loc.Heading,
		Timestamp: ts.UTC(),
	})
	if err != nil {
		return fmt.Errorf("upsert driver location: marshal record: %w", err)
	}

	if err := s.client.Set(ctx, key(loc.OrgID, loc.DriverID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("upsert driver location %s/%s: %w", loc.OrgID, loc.DriverID, err)
	}

	return nil
}

// Return the driver's most recent position, or ok=false when none is known.
func (s *RedisLocationStore) LastKnownPosition(ctx context.Context, orgID, driverID string) (domain.Coordinates, bool, error) {
	raw, err := s.client.Get(ctx, key(orgID, driverID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get driver location %s/%s: %w", orgID, driverID, err)
	}

	var record locationRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode driver location %s/%s: %w", orgID, driverID, err)
	}

	return domain.Coordinates{Lat: record.Lat, Lng: record.Lng}, true, nil
}
