package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"github.com/sangkips/pos-ledger/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_FinalizeDeductsRecipeAndModifiers(t *testing.T) {
	ctx := context.Background()
	saleTime := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	f := newFixture(t, withFixedClock(saleTime))
	c := f.newCafe(t)

	order, err := f.orders.AddItem(ctx, c.latte.ID, 2, c.soyLatte())
	require.NoError(t, err)

	result, err := f.sales.Finalize(ctx, " card ")
	require.NoError(t, err)

	sale := result.Sale
	assert.Equal(t, saleTime, sale.Date)
	assert.Equal(t, "card", sale.PaymentMethod)
	assert.Equal(t, order.ID, sale.OrderID)
	assert.Equal(t, money.Cents(1050), sale.Total)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, money.Cents(145), sale.Items[0].UnitCost, "base cost plus soy cost")

	assert.Equal(t, 964.0, f.quantityOf(t, c.beans.ID))
	assert.Equal(t, 100.0, f.quantityOf(t, c.soy.ID))
	assert.Equal(t, 2000.0, f.quantityOf(t, c.whole.ID), "unchosen options consume nothing")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, entity.WarningLowStock, result.Warnings[0].Reason)
	assert.Equal(t, sale.ID.String(), result.Warnings[0].SaleID)
	assert.Equal(t, []entity.WarningReason{entity.WarningLowStock}, f.operator.reasons())

	current, err := f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.True(t, current.IsEmpty())
	assert.NotEqual(t, order.ID, current.ID, "a fresh order is started")

	stored, err := f.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Total, stored.Total)
}

func TestSaleService_FinalizeValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	_, err := f.sales.Finalize(ctx, "cash")
	assert.ErrorIs(t, err, apperror.ErrEmptyOrder)

	_, err = f.orders.AddItem(ctx, c.latte.ID, 1, nil)
	require.NoError(t, err)

	_, err = f.sales.Finalize(ctx, "   ")
	assert.ErrorIs(t, err, apperror.ErrMissingPaymentMethod)

	assert.Equal(t, 1000.0, f.quantityOf(t, c.beans.ID), "failed finalize leaves stock alone")
}

func TestSaleService_FinalizeRefusesShortfall(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	_, err := f.orders.AddItem(ctx, c.latte.ID, 3, c.soyLatte())
	require.NoError(t, err)

	_, err = f.sales.Finalize(ctx, "cash")
	require.ErrorIs(t, err, apperror.ErrInsufficientStock)
	appErr := apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "Soy Milk", appErr.Errors[0].Field)

	assert.Equal(t, 1000.0, f.quantityOf(t, c.beans.ID), "no ingredient is touched")
	assert.Equal(t, 500.0, f.quantityOf(t, c.soy.ID))

	order, err := f.orders.CurrentOrder(ctx)
	require.NoError(t, err)
	assert.Len(t, order.Items, 1, "the order is kept for correction")

	history, err := f.sales.ListSales(ctx, entity.DateRange{}, pagination.Default())
	require.NoError(t, err)
	assert.Zero(t, history.Pagination.Total)
}

func TestSaleService_FinalizeClampsWhenAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, allowShortfall())
	c := f.newCafe(t)

	_, err := f.orders.AddItem(ctx, c.latte.ID, 3, c.soyLatte())
	require.NoError(t, err)

	result, err := f.sales.Finalize(ctx, "cash")
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.quantityOf(t, c.soy.ID))
	assert.Equal(t, 946.0, f.quantityOf(t, c.beans.ID))

	reasons := make([]entity.WarningReason, len(result.Warnings))
	for i, w := range result.Warnings {
		reasons[i] = w.Reason
	}
	assert.Contains(t, reasons, entity.WarningStockClamped)
	assert.Contains(t, reasons, entity.WarningLowStock)
}

func TestSaleService_FinalizeSkipsMissingReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	tea, err := f.catalog.AddProduct(ctx, &CreateProductInput{Name: "Tea", BasePrice: 2})
	require.NoError(t, err)

	_, err = f.orders.AddItem(ctx, c.latte.ID, 1, c.soyLatte())
	require.NoError(t, err)
	_, err = f.orders.AddItem(ctx, tea.ID, 1, nil)
	require.NoError(t, err)

	require.NoError(t, f.catalog.RemoveProduct(ctx, tea.ID))
	require.NoError(t, f.inventory.RemoveIngredient(ctx, c.soy.ID))

	result, err := f.sales.Finalize(ctx, "cash")
	require.NoError(t, err, "missing references never block a sale")

	reasons := map[entity.WarningReason]int{}
	for _, w := range result.Warnings {
		reasons[w.Reason]++
	}
	assert.Equal(t, 1, reasons[entity.WarningProductMissing])
	assert.Equal(t, 1, reasons[entity.WarningIngredientMissing])
	assert.Equal(t, 982.0, f.quantityOf(t, c.beans.ID))
	assert.Equal(t, money.Cents(725), result.Sale.Total, "missing product still bills at its captured price")
}

func TestSaleService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	reqs, warnings, err := f.sales.CheckAvailability(ctx)
	require.NoError(t, err)
	assert.Empty(t, reqs)
	assert.Empty(t, warnings)

	_, err = f.orders.AddItem(ctx, c.latte.ID, 3, c.soyLatte())
	require.NoError(t, err)

	reqs, _, err = f.sales.CheckAvailability(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	byName := map[string]entity.StockRequirement{}
	for _, r := range reqs {
		byName[r.IngredientName] = r
	}
	assert.Equal(t, 54.0, byName["Coffee Beans"].Required)
	assert.True(t, byName["Coffee Beans"].Sufficient())
	assert.Equal(t, 100.0, byName["Soy Milk"].Shortfall)

	assert.Equal(t, 1000.0, f.quantityOf(t, c.beans.ID), "availability is read-only")
}

func TestSaleService_FractionalUsageDoesNotDrift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	syrup := f.addIngredient(t, "Syrup", 0.3, 0)

	shot, err := f.catalog.AddProduct(ctx, &CreateProductInput{
		Name: "Shot", BasePrice: 1,
		Recipe: []UsageInput{{IngredientID: syrup.ID.String(), QuantityUsed: 0.1}},
	})
	require.NoError(t, err)

	_, err = f.orders.AddItem(ctx, shot.ID, 3, nil)
	require.NoError(t, err)

	_, err = f.sales.Finalize(ctx, "cash")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f.quantityOf(t, syrup.ID), 1e-9)
}

func TestSaleService_ListSalesPaginates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.newCafe(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		_, err := f.orders.AddItem(ctx, c.latte.ID, 1, nil)
		require.NoError(t, err)
		result, err := f.sales.Finalize(ctx, "cash")
		require.NoError(t, err)
		ids = append(ids, result.Sale.ID)
	}

	page, err := f.sales.ListSales(ctx, entity.DateRange{}, pagination.Params{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID, "newest first")

	_, err = f.sales.GetSale(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
