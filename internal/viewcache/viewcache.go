package viewcache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/hmiyata/schedule-api/pkg/messaging"
)

// RefreshChannel carries coarse invalidation signals between instances.
const RefreshChannel = "schedule.refresh"

// Cache keeps rendered list reads warm between mutations. Invalidation is
// deliberately coarse: any schedule mutation flushes every cached view, here
// and on peer instances via the broker.
type Cache struct {
	store  *gocache.Cache
	broker messaging.Broker
	logger zerolog.Logger
}

func New(store *gocache.Cache, broker messaging.Broker, logger zerolog.Logger) *Cache {
	return &Cache{
		store:  store,
		broker: broker,
		logger: logger,
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.store.SetDefault(key, value)
}

// Refresh flushes the local views and signals peers to do the same. The
// broker publish is best effort; a failed publish only delays peers until
// their TTL expires.
func (c *Cache) Refresh(ctx context.Context) {
	c.store.Flush()

	if c.broker == nil {
		return
	}
	if err := c.broker.Publish(ctx, RefreshChannel, map[string]string{"reason": "mutation"}); err != nil {
		c.logger.Warn().Err(err).Msg("failed to publish refresh signal")
	}
}

// Listen flushes local views whenever a peer signals a mutation. It blocks
// until ctx is cancelled.
func (c *Cache) Listen(ctx context.Context) error {
	if c.broker == nil {
		return nil
	}

	msgs, err := c.broker.Subscribe(ctx, RefreshChannel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-msgs:
			if !ok {
				return nil
			}
			c.store.Flush()
			c.logger.Debug().Msg("view cache flushed by peer refresh signal")
		}
	}
}
