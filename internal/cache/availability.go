package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
)

// AvailabilityCache keeps short-lived per-(slot, date) availability in
// redis so calendar screens don't hammer the count query. A nil cache is
// valid and means caching is off; every method is nil-safe.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 30 * time.Second,
	}
}

func key(timeSlotID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", timeSlotID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	timeSlotID uint,
	date string,
) (domain.Availability, bool) {

	if c == nil {
		return domain.Availability{}, false
	}

	raw, err := c.rdb.Get(ctx, key(timeSlotID, date)).Result()
	if err != nil {
		return domain.Availability{}, false
	}

	var av domain.Availability
	if err := json.Unmarshal([]byte(raw), &av); err != nil {
		return domain.Availability{}, false
	}
	return av, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	timeSlotID uint,
	date string,
	av domain.Availability,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(av)
	if err != nil {
		return
	}
	// Cache failures are invisible: the source of truth is the DB count.
	c.rdb.Set(ctx, key(timeSlotID, date), raw, c.ttl)
}

func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	timeSlotID uint,
	date string,
) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, key(timeSlotID, date))
}
