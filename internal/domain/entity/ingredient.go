package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
)

// Ingredient is a stocked raw material tracked by the inventory ledger
type Ingredient struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Quantity     float64   `json:"quantity"`
	ReorderLevel float64   `json:"reorder_level"`
	SupplierInfo string    `json:"supplier_info,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsLowStock reports whether quantity is at or below the reorder level
func (i *Ingredient) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// IsOutOfStock reports whether nothing is left
func (i *Ingredient) IsOutOfStock() bool {
	return i.Quantity <= 0
}

// StockStatus classifies the ingredient for inventory reports
func (i *Ingredient) StockStatus() enum.StockStatus {
	switch {
	case i.IsOutOfStock():
		return enum.StockStatusOut
	case i.IsLowStock():
		return enum.StockStatusLow
	default:
		return enum.StockStatusSufficient
	}
}

// ApplyDelta moves stock by delta, clamping at zero.
func (i *Ingredient) ApplyDelta(delta float64) {
	i.Quantity = math.Max(0, i.Quantity+delta)
}
