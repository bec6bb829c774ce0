package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Get decodes the stored value into dest.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MetricsRecorder receives counters from the pricing pass
type MetricsRecorder interface {
	ObserveComparison(source string)
	ObserveEntryRejected(reason string)
	ObserveConversion(ok bool)
}
