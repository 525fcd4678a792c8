package entity

import (
	"math"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/apperror"
)

// IngredientUsage is the amount of one ingredient consumed per unit sold
type IngredientUsage struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	QuantityUsed float64   `json:"quantity_used"`
}

// NewIngredientUsage validates and builds a usage.
func NewIngredientUsage(ingredientID uuid.UUID, quantityUsed float64) (IngredientUsage, error) {
	if ingredientID == uuid.Nil {
		return IngredientUsage{}, apperror.Wrap(apperror.ErrInvalidUsage, "ingredient usage requires an ingredient id")
	}
	if math.IsNaN(quantityUsed) || math.IsInf(quantityUsed, 0) || quantityUsed < 0 {
		return IngredientUsage{}, apperror.Wrap(apperror.ErrInvalidUsage, "ingredient usage quantity must be a non-negative number")
	}
	return IngredientUsage{IngredientID: ingredientID, QuantityUsed: quantityUsed}, nil
}

func cloneUsages(in []IngredientUsage) []IngredientUsage {
	if in == nil {
		return nil
	}
	out := make([]IngredientUsage, len(in))
	copy(out, in)
	return out
}
