package port

import (
	"context"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

type DatabaseRepository interface {
	// CreateSale persists a completed purchase
	CreateSale(ctx context.Context, sale domain.Sale) error

	// GetSale retrieves a sale by ID, nil when absent
	GetSale(ctx context.Context, id string) (*domain.Sale, error)

	// SalesTotal sums price over the recorded sales of a machine
	SalesTotal(ctx context.Context, machineID string) (int, error)
}
