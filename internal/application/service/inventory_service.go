package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"go.uber.org/zap"
)

// InventoryService owns every ingredient mutation
type InventoryService struct {
	ingredientRepo repository.IngredientRepository
	log            *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(ingredientRepo repository.IngredientRepository, log *zap.Logger) *InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryService{ingredientRepo: ingredientRepo, log: log}
}

// AddIngredientInput represents the add ingredient input
type AddIngredientInput struct {
	Name         string
	Unit         string
	Quantity     float64
	ReorderLevel float64
	SupplierInfo string
}

// UpdateIngredientInput is a partial update of descriptive fields; stock is
// only moved through AdjustStock.
type UpdateIngredientInput struct {
	Name         *string
	Unit         *string
	ReorderLevel *float64
	SupplierInfo *string
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateAmount(field string, v float64) error {
	if !isFinite(v) || v < 0 {
		return apperror.NewInvalidInputError(field, field+" must be a non-negative number")
	}
	return nil
}

// validateMoney also bounds the amount so it converts to cents without overflow
func validateMoney(field string, v float64) error {
	if err := validateAmount(field, v); err != nil {
		return err
	}
	if !money.InRange(v) {
		return apperror.NewInvalidInputError(field, fmt.Sprintf("%s must not exceed %.0f", field, money.MaxDecimal))
	}
	return nil
}

// AddIngredient creates a new ingredient with a generated id
func (s *InventoryService) AddIngredient(ctx context.Context, input *AddIngredientInput) (*entity.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if name == "" {
		return nil, apperror.NewInvalidInputError("name", "Ingredient name is required")
	}
	if unit == "" {
		return nil, apperror.NewInvalidInputError("unit", "Ingredient unit is required")
	}
	if err := validateAmount("quantity", input.Quantity); err != nil {
		return nil, err
	}
	if err := validateAmount("reorder_level", input.ReorderLevel); err != nil {
		return nil, err
	}

	existing, err := s.ingredientRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateNameError("Ingredient", name)
	}

	ingredient := &entity.Ingredient{
		ID:           uuid.New(),
		Name:         name,
		Unit:         unit,
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
		SupplierInfo: strings.TrimSpace(input.SupplierInfo),
	}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}

	s.log.Info("ingredient added",
		zap.String("ingredient_id", ingredient.ID.String()),
		zap.String("name", ingredient.Name))
	return ingredient, nil
}

// GetIngredient returns one ingredient
func (s *InventoryService) GetIngredient(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}
	return ingredient, nil
}

// ListIngredients returns all ingredients in ledger order
func (s *InventoryService) ListIngredients(ctx context.Context) ([]entity.Ingredient, error) {
	return s.ingredientRepo.List(ctx)
}

// AdjustStock moves stock by delta. A decrease past zero clamps to zero.
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, delta float64) (*entity.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isFinite(delta) {
		return nil, apperror.Wrap(apperror.ErrInvalidDelta, "Stock delta must be a finite number")
	}
	if delta == 0 {
		return ingredient, nil
	}

	if _, err := s.ingredientRepo.ApplyDeltas(ctx, map[uuid.UUID]float64{id: delta}, true); err != nil {
		return nil, err
	}

	updated, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("stock adjusted",
		zap.String("ingredient_id", id.String()),
		zap.Float64("delta", delta),
		zap.Float64("quantity", updated.Quantity))
	return updated, nil
}

// UpdateIngredientDetails changes name, unit, reorder level or supplier info
func (s *InventoryService) UpdateIngredientDetails(ctx context.Context, id uuid.UUID, input *UpdateIngredientInput) (*entity.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewInvalidInputError("name", "Ingredient name is required")
		}
		other, err := s.ingredientRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperror.NewDuplicateNameError("Ingredient", name)
		}
		ingredient.Name = name
	}
	if input.Unit != nil {
		unit := strings.TrimSpace(*input.Unit)
		if unit == "" {
			return nil, apperror.NewInvalidInputError("unit", "Ingredient unit is required")
		}
		ingredient.Unit = unit
	}
	if input.ReorderLevel != nil {
		if err := validateAmount("reorder_level", *input.ReorderLevel); err != nil {
			return nil, err
		}
		ingredient.ReorderLevel = *input.ReorderLevel
	}
	if input.SupplierInfo != nil {
		ingredient.SupplierInfo = strings.TrimSpace(*input.SupplierInfo)
	}

	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// RemoveIngredient deletes an ingredient. Recipes that reference it are left as they are.
func (s *InventoryService) RemoveIngredient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.ingredientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove ingredient: %w", err)
	}
	s.log.Info("ingredient removed", zap.String("ingredient_id", id.String()))
	return nil
}

// CheckLowStock returns ingredients at or below their reorder level, in ledger order
func (s *InventoryService) CheckLowStock(ctx context.Context) ([]entity.Ingredient, error) {
	all, err := s.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]entity.Ingredient, 0)
	for i := range all {
		if all[i].IsLowStock() {
			low = append(low, all[i])
		}
	}
	return low, nil
}
