package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// SaleRepository is the append-only sales history
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleTransaction, error)
	// List returns sales inside the range, newest first.
	List(ctx context.Context, r entity.DateRange) ([]entity.SaleTransaction, error)
}
