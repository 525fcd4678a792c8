package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey returns (nil, nil) for unknown keys.
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int, error)
}
