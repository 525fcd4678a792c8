package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"go.uber.org/zap"
)

// tolerance for float drift when comparing stock against a decrement
const stockEpsilon = 1e-9

type ingredientRepository struct {
	snap *snapshot[[]entity.Ingredient]
}

// NewIngredientRepository creates the ingredient ledger store
func NewIngredientRepository(store domainRepo.KeyValueStore, log *zap.Logger) domainRepo.IngredientRepository {
	return &ingredientRepository{snap: newSnapshot[[]entity.Ingredient](store, KeyIngredients, log)}
}

func indexOfIngredient(list []entity.Ingredient, id uuid.UUID) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	now := time.Now().UTC()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now
	return r.snap.write(ctx, func(list *[]entity.Ingredient) error {
		*list = append(*list, *ingredient)
		return nil
	})
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	var found *entity.Ingredient
	r.snap.read(ctx, func(list []entity.Ingredient) {
		if i := indexOfIngredient(list, id); i >= 0 {
			c := list[i]
			found = &c
		}
	})
	return found, nil
}

func (r *ingredientRepository) GetByName(ctx context.Context, name string) (*entity.Ingredient, error) {
	key := utils.NormalizeKey(name)
	var found *entity.Ingredient
	r.snap.read(ctx, func(list []entity.Ingredient) {
		for i := range list {
			if utils.NormalizeKey(list[i].Name) == key {
				c := list[i]
				found = &c
				return
			}
		}
	})
	return found, nil
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	ingredient.UpdatedAt = time.Now().UTC()
	return r.snap.write(ctx, func(list *[]entity.Ingredient) error {
		i := indexOfIngredient(*list, ingredient.ID)
		if i < 0 {
			return apperror.NewNotFoundError("Ingredient")
		}
		(*list)[i] = *ingredient
		return nil
	})
}

func (r *ingredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.snap.write(ctx, func(list *[]entity.Ingredient) error {
		i := indexOfIngredient(*list, id)
		if i < 0 {
			return apperror.NewNotFoundError("Ingredient")
		}
		*list = append((*list)[:i], (*list)[i+1:]...)
		return nil
	})
}

func (r *ingredientRepository) List(ctx context.Context) ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	r.snap.read(ctx, func(list []entity.Ingredient) {
		out = make([]entity.Ingredient, len(list))
		copy(out, list)
	})
	return out, nil
}

// ApplyDeltas checks every delta before touching any stock, so a batch is
// applied whole or not at all.
func (r *ingredientRepository) ApplyDeltas(ctx context.Context, deltas map[uuid.UUID]float64, clamp bool) ([]uuid.UUID, error) {
	if len(deltas) == 0 {
		return nil, nil
	}

	var insufficient []uuid.UUID
	err := r.snap.write(ctx, func(list *[]entity.Ingredient) error {
		positions := make(map[uuid.UUID]int, len(deltas))
		for id, delta := range deltas {
			i := indexOfIngredient(*list, id)
			if i < 0 {
				return apperror.NewNotFoundError("Ingredient " + id.String())
			}
			positions[id] = i
			if !clamp && (*list)[i].Quantity+delta < -stockEpsilon {
				insufficient = append(insufficient, id)
			}
		}
		if len(insufficient) > 0 {
			sort.Slice(insufficient, func(a, b int) bool {
				return insufficient[a].String() < insufficient[b].String()
			})
			return errRolledBack
		}

		now := time.Now().UTC()
		for id, delta := range deltas {
			ing := &(*list)[positions[id]]
			ing.ApplyDelta(delta)
			ing.UpdatedAt = now
		}
		return nil
	})
	if err == errRolledBack {
		return insufficient, nil
	}
	return nil, err
}
