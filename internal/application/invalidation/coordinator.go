package invalidation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/cache"
)

type Store interface {
	Delete(key string, opts ...cache.Option)
	DeleteByPrefix(prefix string) int
}

type Metrics interface {
	ObserveInvalidation(removed int)
}

type Coordinator struct {
	store   Store
	logger  *zap.Logger
	metrics Metrics
}

func New(store Store, logger *zap.Logger, metrics Metrics) *Coordinator {
	return &Coordinator{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// InvalidateOrder drops every cached read that may contain the order: the order
// itself for any requester, the owner's lists and active order, the status and
// search listings, and the statistics. It never fails; a panicking store is
// recovered and logged.
func (c *Coordinator) InvalidateOrder(ctx context.Context, orderID, userID string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("cache invalidation panicked",
				zap.String("order_id", orderID),
				zap.String("user_id", userID),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	removed := 0
	if orderID != "" {
		removed += c.store.DeleteByPrefix(OrderPrefix(orderID))
	}
	if userID != "" {
		removed += c.store.DeleteByPrefix(UserOrdersPrefix(userID))
		c.store.Delete(userID, cache.WithPrefix(PrefixActive))
	}
	removed += c.store.DeleteByPrefix(PrefixByStatus)
	removed += c.store.DeleteByPrefix(PrefixSearch)
	c.store.Delete(StatsKey, cache.WithPrefix(PrefixStats))

	c.metrics.ObserveInvalidation(removed)
	c.logger.Debug("order cache invalidated",
		zap.String("order_id", orderID),
		zap.String("user_id", userID),
		zap.Int("removed", removed),
	)
}
