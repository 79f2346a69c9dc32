package products

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

// Hint is the per-variant display metadata kept as a cache warm-up so item
// lists can render before enrichment completes.
type Hint struct {
	Image  string `json:"image"`
	Vendor string `json:"vendor"`
}

// Store is the slice of the redis client the cache needs.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ProductHintsKey(draftID string) string
	CountKey(draftID string) string
}

// Cache mirrors product hints and the item count per draft. It is strictly a
// hint layer: fresh enrichment always wins, and every cache failure is
// swallowed so the enquiry flow degrades to non-cached operation.
type Cache struct {
	store Store
	logg  *logger.Logger
	ttl   time.Duration
}

// CacheParams collects the dependencies for NewCache.
type CacheParams struct {
	Store  Store
	Logger *logger.Logger
	TTL    time.Duration
}

func NewCache(params CacheParams) *Cache {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Cache{
		store: params.Store,
		logg:  params.Logger,
		ttl:   ttl,
	}
}

// Hints returns the cached variant hints for a draft, or nil when unavailable.
func (c *Cache) Hints(ctx context.Context, draftID string) map[string]Hint {
	if c == nil || c.store == nil || draftID == "" {
		return nil
	}
	raw, err := c.store.Get(ctx, c.store.ProductHintsKey(draftID))
	if err != nil {
		c.debug(ctx, "product hint read skipped", err)
		return nil
	}
	var hints map[string]Hint
	if err := json.Unmarshal([]byte(raw), &hints); err != nil {
		c.debug(ctx, "product hint decode skipped", err)
		return nil
	}
	return hints
}

// StoreHints replaces the cached hints for a draft.
func (c *Cache) StoreHints(ctx context.Context, draftID string, hints map[string]Hint) {
	if c == nil || c.store == nil || draftID == "" || len(hints) == 0 {
		return
	}
	raw, err := json.Marshal(hints)
	if err != nil {
		c.debug(ctx, "product hint encode skipped", err)
		return
	}
	if err := c.store.Set(ctx, c.store.ProductHintsKey(draftID), string(raw), c.ttl); err != nil {
		c.debug(ctx, "product hint write skipped", err)
	}
}

// SetCount mirrors the draft's total item count.
func (c *Cache) SetCount(ctx context.Context, draftID string, count int) {
	if c == nil || c.store == nil || draftID == "" {
		return
	}
	if err := c.store.Set(ctx, c.store.CountKey(draftID), strconv.Itoa(count), c.ttl); err != nil {
		c.debug(ctx, "count mirror write skipped", err)
	}
}

// Count returns the mirrored item count. The second return reports a hit.
func (c *Cache) Count(ctx context.Context, draftID string) (int, bool) {
	if c == nil || c.store == nil || draftID == "" {
		return 0, false
	}
	raw, err := c.store.Get(ctx, c.store.CountKey(draftID))
	if err != nil {
		c.debug(ctx, "count mirror read skipped", err)
		return 0, false
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		c.debug(ctx, "count mirror decode skipped", err)
		return 0, false
	}
	return count, true
}

// Clear drops both the hints and the count mirror for a draft.
func (c *Cache) Clear(ctx context.Context, draftID string) {
	if c == nil || c.store == nil || draftID == "" {
		return
	}
	if err := c.store.Del(ctx, c.store.ProductHintsKey(draftID), c.store.CountKey(draftID)); err != nil {
		c.debug(ctx, "cache clear skipped", err)
	}
}

func (c *Cache) debug(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Debug(c.logg.WithField(ctx, "cache_error", err.Error()), msg)
}
