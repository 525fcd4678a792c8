package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_AddIngredient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ing, err := f.inventory.AddIngredient(ctx, &AddIngredientInput{
		Name: "  Coffee Beans ", Unit: "g", Quantity: 1000, ReorderLevel: 200,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ing.ID)
	assert.Equal(t, "Coffee Beans", ing.Name)

	tests := []struct {
		name  string
		input AddIngredientInput
		kind  apperror.Kind
	}{
		{"duplicate name ignores case", AddIngredientInput{Name: "coffee beans", Unit: "g"}, apperror.KindDuplicateName},
		{"missing name", AddIngredientInput{Unit: "g"}, apperror.KindInvalidInput},
		{"missing unit", AddIngredientInput{Name: "Sugar"}, apperror.KindInvalidInput},
		{"negative quantity", AddIngredientInput{Name: "Sugar", Unit: "g", Quantity: -1}, apperror.KindInvalidInput},
		{"NaN reorder level", AddIngredientInput{Name: "Sugar", Unit: "g", ReorderLevel: math.NaN()}, apperror.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.inventory.AddIngredient(ctx, &tt.input)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	all, err := f.inventory.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInventoryService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	beans := f.addIngredient(t, "Beans", 100, 10)

	got, err := f.inventory.AdjustStock(ctx, beans.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Quantity)

	got, err = f.inventory.AdjustStock(ctx, beans.ID, -500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Quantity, "decrease past zero clamps")

	got, err = f.inventory.AdjustStock(ctx, beans.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Quantity)

	_, err = f.inventory.AdjustStock(ctx, beans.ID, math.Inf(1))
	assert.ErrorIs(t, err, apperror.ErrInvalidDelta)

	_, err = f.inventory.AdjustStock(ctx, uuid.New(), math.NaN())
	assert.ErrorIs(t, err, apperror.ErrNotFound, "unknown id is reported before a bad delta")
}

func TestInventoryService_UpdateIngredientDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	beans := f.addIngredient(t, "Beans", 100, 10)
	f.addIngredient(t, "Milk", 100, 10)

	name := "Espresso Beans"
	level := 25.0
	got, err := f.inventory.UpdateIngredientDetails(ctx, beans.ID, &UpdateIngredientInput{Name: &name, ReorderLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans", got.Name)
	assert.Equal(t, 25.0, got.ReorderLevel)
	assert.Equal(t, 100.0, got.Quantity, "stock untouched")

	taken := "MILK"
	_, err = f.inventory.UpdateIngredientDetails(ctx, beans.ID, &UpdateIngredientInput{Name: &taken})
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)

	same := "espresso beans"
	_, err = f.inventory.UpdateIngredientDetails(ctx, beans.ID, &UpdateIngredientInput{Name: &same})
	assert.NoError(t, err, "renaming to its own name is allowed")
}

func TestInventoryService_RemoveAndLowStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	beans := f.addIngredient(t, "Beans", 100, 100)
	f.addIngredient(t, "Milk", 500, 100)
	cups := f.addIngredient(t, "Cups", 0, 20)

	low, err := f.inventory.CheckLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, beans.ID, low[0].ID, "at the reorder level counts as low")
	assert.Equal(t, cups.ID, low[1].ID)

	require.NoError(t, f.inventory.RemoveIngredient(ctx, beans.ID))
	assert.ErrorIs(t, f.inventory.RemoveIngredient(ctx, beans.ID), apperror.ErrNotFound)

	_, err = f.inventory.GetIngredient(ctx, beans.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
