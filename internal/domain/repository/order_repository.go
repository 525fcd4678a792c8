package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// OrderRepository holds the single current order
type OrderRepository interface {
	// GetCurrent returns a copy of the current order, creating an empty one if needed.
	GetCurrent(ctx context.Context) (*entity.Order, error)
	Save(ctx context.Context, order *entity.Order) error
}
