package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SourceLoader fetches and parses all configured source tables.
// The load is best-effort per source: a failed source is reported in the
// error map under its name and simply contributes no table; the remaining
// sources load normally.
type SourceLoader interface {
	LoadAll(ctx context.Context) ([]SourceTable, map[string]error)
}
