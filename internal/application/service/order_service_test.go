package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_AddItemPricesAndMerges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	order, err := f.orders.AddItem(ctx, c.latte.ID, 1, c.soyLatte())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	line := order.Items[0]
	assert.Equal(t, money.Cents(525), line.FinalPricePerItem)
	require.Len(t, line.ChosenModifiers, 1)
	assert.Equal(t, "Soy", line.ChosenModifiers[0].OptionName)

	order, err = f.orders.AddItem(ctx, c.latte.ID, 1, c.soyLatte())
	require.NoError(t, err)
	require.Len(t, order.Items, 1, "same configuration merges")
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, money.Cents(1050), order.Subtotal)

	order, err = f.orders.AddItem(ctx, c.latte.ID, 1, nil)
	require.NoError(t, err)
	assert.Len(t, order.Items, 2, "a plain latte is a different line")
	assert.Equal(t, money.Cents(1500), order.Total)
	assert.Equal(t, enum.OrderStateBuilding, order.State())
}

func TestOrderService_AddItemSelections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	dup := append(c.soyLatte(), c.soyLatte()...)
	dup = append(dup, ModifierSelection{ModifierGroupID: uuid.New(), OptionID: c.wholeOpt})
	order, err := f.orders.AddItem(ctx, c.latte.ID, 1, dup)
	require.NoError(t, err)
	require.Len(t, order.Items[0].ChosenModifiers, 1, "duplicates count once and unresolvable picks are dropped")
	assert.Equal(t, money.Cents(525), order.Items[0].FinalPricePerItem)
}

func TestOrderService_AddItemRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	_, err := f.orders.AddItem(ctx, c.latte.ID, 0, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	_, err = f.orders.AddItem(ctx, uuid.New(), 1, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.orders.AddItem(ctx, c.latte.ID, entity.MaxLineQuantity+1, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	order, err := f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.True(t, order.IsEmpty())
}

func TestOrderService_LineQuantityIsCapped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	order, err := f.orders.AddItem(ctx, c.latte.ID, entity.MaxLineQuantity, nil)
	require.NoError(t, err)
	lineID := order.Items[0].ID

	_, err = f.orders.AddItem(ctx, c.latte.ID, 1, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity, "merging may not push a line past the cap")

	_, err = f.orders.UpdateItemQuantity(ctx, lineID, entity.MaxLineQuantity+1)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	order, err = f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxLineQuantity, order.Items[0].Quantity)
	assert.Equal(t, money.Cents(450).Mul(entity.MaxLineQuantity), order.Subtotal)
}

func TestOrderService_LineEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	order, err := f.orders.AddItem(ctx, c.latte.ID, 3, nil)
	require.NoError(t, err)
	lineID := order.Items[0].ID

	order, err = f.orders.UpdateItemQuantity(ctx, lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(450), order.Subtotal)

	_, err = f.orders.UpdateItemQuantity(ctx, uuid.New(), 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	order, err = f.orders.RemoveItem(ctx, uuid.New())
	require.NoError(t, err, "removing an unknown line is a no-op")
	assert.Len(t, order.Items, 1)

	order, err = f.orders.UpdateItemQuantity(ctx, lineID, 0)
	require.NoError(t, err)
	assert.True(t, order.IsEmpty(), "zero quantity removes the line")
	assert.Equal(t, enum.OrderStateEmpty, order.State())
}

func TestOrderService_ApplyDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	_, err := f.orders.AddItem(ctx, c.latte.ID, 2, nil)
	require.NoError(t, err)

	order, err := f.orders.ApplyDiscount(ctx, 1.5)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(750), order.Total)
	assert.Equal(t, enum.OrderStateDiscounted, order.State())

	order, err = f.orders.ApplyDiscount(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(-1100), order.Total, "discounts larger than the subtotal are kept")

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), 1e18} {
		_, err = f.orders.ApplyDiscount(ctx, bad)
		assert.ErrorIs(t, err, apperror.ErrInvalidDiscount)
	}
}

func TestOrderService_StartNewOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	before, err := f.orders.AddItem(ctx, c.latte.ID, 1, nil)
	require.NoError(t, err)

	fresh, err := f.orders.StartNewOrder(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.ID, fresh.ID)
	assert.True(t, fresh.IsEmpty())

	current, err := f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, current.ID)
}

func TestOrderService_LinesKeepSnapshotAfterCatalogChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	_, err := f.orders.AddItem(ctx, c.latte.ID, 1, c.soyLatte())
	require.NoError(t, err)

	price := 9.0
	_, err = f.catalog.UpdateProduct(ctx, c.latte.ID, &UpdateProductInput{BasePrice: &price})
	require.NoError(t, err)

	order, err := f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(525), order.Items[0].FinalPricePerItem)
}
