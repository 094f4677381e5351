package port

import (
	"context"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

type CacheRepository interface {
	// SetStock mirrors the machine's ingredient levels
	SetStock(ctx context.Context, machineID string, stock domain.Stock) error

	// GetStock reads the mirrored levels, ok is false when nothing was mirrored yet
	GetStock(ctx context.Context, machineID string) (stock domain.Stock, ok bool, err error)

	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency removes a key so the request can be retried
	ReleaseIdempotency(ctx context.Context, key string) error
}
