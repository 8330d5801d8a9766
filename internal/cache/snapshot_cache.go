package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riwisport/sales-dashboard/internal/models"
)

// SnapshotCache stores fully composed dashboard payloads in Redis so that
// repeated requests for the same department selection skip recomputation.
// Keys embed the dataset generation; invalidating the dataset rolls the
// generation forward and strands the old entries, which expire via TTL.
type SnapshotCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSnapshotCache creates a new SnapshotCache.
func NewSnapshotCache(redis *RedisClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: redis, ttl: ttl}
}

// key builds the cache key for a selection. The selection is sorted before
// hashing so that equivalent selections share one entry regardless of
// parameter order.
func (c *SnapshotCache) key(generation uint64, departments []string) string {
	sorted := make([]string, len(departments))
	copy(sorted, departments)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x1f")))
	return fmt.Sprintf("dashboard:snap:%d:%s", generation, hex.EncodeToString(sum[:8]))
}

// Get retrieves a cached snapshot for the given generation and selection.
// Any Redis or decode error reads as a miss.
func (c *SnapshotCache) Get(ctx context.Context, generation uint64, departments []string) (*models.DashboardSnapshot, bool) {
	raw, err := c.redis.Get(ctx, c.key(generation, departments))
	if err != nil {
		return nil, false
	}

	var snap models.DashboardSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// Set stores a snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, generation uint64, departments []string, snap *models.DashboardSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.redis.Set(ctx, c.key(generation, departments), string(raw), c.ttl)
}
