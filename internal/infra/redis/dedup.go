package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewDeduper implements domain.ViewDeduper with a SETNX-with-TTL per
// viewer key. Entries expire on their own, so the store stays bounded
// by the view rate times the window. The dedup is approximate and
// never a correctness guarantee: a lost entry at worst double-counts
// one view.
type ViewDeduper struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	window    time.Duration
}

// NewViewDeduper creates a dedup store with the given trailing window.
func NewViewDeduper(client *redis.Client, logger *zap.Logger, keyPrefix string, window time.Duration) *ViewDeduper {
	return &ViewDeduper{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
		window:    window,
	}
}

// FirstView records key as seen and reports whether it was unseen
// within the window. SETNX makes check-and-record atomic, so two
// concurrent views from the same viewer count once.
func (d *ViewDeduper) FirstView(ctx context.Context, key string) (bool, error) {
	fullKey := d.keyPrefix + ":view:" + key

	first, err := d.client.SetNX(ctx, fullKey, 1, d.window).Result()
	if err != nil {
		d.logger.Error("view dedup check failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return false, err
	}

	return first, nil
}
