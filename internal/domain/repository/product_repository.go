package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetBySKU returns (nil, nil) for an empty sku.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Product, error)
}
