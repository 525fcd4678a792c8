package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// IngredientRepository defines the interface for the ingredient ledger store
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	// GetByID returns (nil, nil) when the ingredient does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns copies in ledger order.
	List(ctx context.Context) ([]entity.Ingredient, error)
	// ApplyDeltas moves stock for several ingredients at once. With clamp false,
	// nothing is applied if any decrement exceeds stock and the offending ids are
	// returned. An unknown id aborts the whole batch.
	ApplyDeltas(ctx context.Context, deltas map[uuid.UUID]float64, clamp bool) (insufficient []uuid.UUID, err error)
}
