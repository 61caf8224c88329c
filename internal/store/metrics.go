package store

import (
	"context"
	"time"

	"github.com/insativity/portal/internal/metrics"
)

func observeStore(ctx context.Context, operation string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveStoreLatency(ctx, operation, start)
	}
}
