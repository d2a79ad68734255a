package queries

import (
	"context"
	"log/slog"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/ports"
)

// OrderCacheInvalidator drops cached order details after their order changed.
//
// A GetOrder reader that loaded the row before the commit may write its copy
// back after the first eviction. A second eviction after settleDelay removes
// such entries, so a stale view lives at most settleDelay instead of the cache TTL.
type OrderCacheInvalidator struct {
	cache       ports.Cache
	settleDelay time.Duration
	logger      *slog.Logger
}

// NewOrderCacheInvalidator creates an invalidator for the GetOrder read model.
// A zero settleDelay disables the delayed second eviction.
func NewOrderCacheInvalidator(cache ports.Cache, settleDelay time.Duration, logger *slog.Logger) *OrderCacheInvalidator {
	return &OrderCacheInvalidator{
		cache:       cache,
		settleDelay: settleDelay,
		logger:      logger.With("component", "order-cache-invalidator"),
	}
}

// Evict removes the cached details of the given orders. It is registered as a
// unit of work commit hook, so failures are logged and entries expire by TTL.
func (i *OrderCacheInvalidator) Evict(ctx context.Context, orderIDs []kernel.UUID) {
	if len(orderIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, OrderCacheKey(id))
	}

	i.delete(ctx, keys)

	if i.settleDelay > 0 {
		detached := context.WithoutCancel(ctx)
		time.AfterFunc(i.settleDelay, func() {
			i.delete(detached, keys)
		})
	}
}

func (i *OrderCacheInvalidator) delete(ctx context.Context, keys []string) {
	if err := i.cache.Delete(ctx, keys...); err != nil {
		i.logger.WarnContext(ctx, "cache eviction failed", "keys", keys, "error", err)
	}
}
