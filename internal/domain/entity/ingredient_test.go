package entity

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredient_ApplyDeltaClampsAtZero(t *testing.T) {
	ing := &Ingredient{Quantity: 5}
	ing.ApplyDelta(-8)
	assert.Equal(t, 0.0, ing.Quantity)

	ing.ApplyDelta(2.5)
	assert.Equal(t, 2.5, ing.Quantity)
}

func TestIngredient_StockStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		reorder  float64
		want     enum.StockStatus
	}{
		{"out", 0, 10, enum.StockStatusOut},
		{"at reorder level", 10, 10, enum.StockStatusLow},
		{"below", 3, 10, enum.StockStatusLow},
		{"above", 11, 10, enum.StockStatusSufficient},
		{"zero reorder level with stock", 1, 0, enum.StockStatusSufficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := &Ingredient{Quantity: tt.quantity, ReorderLevel: tt.reorder}
			assert.Equal(t, tt.want, ing.StockStatus())
		})
	}
}

func TestNewIngredientUsage(t *testing.T) {
	id := uuid.New()

	u, err := NewIngredientUsage(id, 18)
	require.NoError(t, err)
	assert.Equal(t, 18.0, u.QuantityUsed)

	_, err = NewIngredientUsage(id, 0)
	assert.NoError(t, err, "zero usage is allowed")

	for _, q := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = NewIngredientUsage(id, q)
		assert.ErrorIs(t, err, apperror.ErrInvalidUsage)
	}

	_, err = NewIngredientUsage(uuid.Nil, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidUsage)
}

func TestDateRange_Contains(t *testing.T) {
	day := func(s string) time.Time {
		v, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return v
	}
	r := DateRange{Start: day("2025-03-01"), End: day("2025-03-31")}

	assert.True(t, r.Contains(day("2025-03-31").Add(23*time.Hour+59*time.Minute)), "end date covers its whole day")
	assert.False(t, r.Contains(day("2025-04-01")))
	assert.False(t, r.Contains(day("2025-02-28")))
	assert.True(t, DateRange{}.Contains(day("1999-01-01")))
	assert.True(t, DateRange{}.IsAllTime())
}
