package entity

import "github.com/google/uuid"

// WarningReason explains why a deduction was skipped
type WarningReason string

const (
	WarningProductMissing    WarningReason = "product_missing"
	WarningIngredientMissing WarningReason = "ingredient_missing"
	WarningStockClamped      WarningReason = "stock_clamped"
	WarningLowStock          WarningReason = "low_stock"
)

// DeductionWarning is a non-fatal problem raised while consuming inventory for a sale
type DeductionWarning struct {
	SaleID       string        `json:"sale_id,omitempty"`
	LineID       string        `json:"line_id,omitempty"`
	ProductID    string        `json:"product_id,omitempty"`
	IngredientID string        `json:"ingredient_id,omitempty"`
	Reason       WarningReason `json:"reason"`
	Message      string        `json:"message"`
}

// StockRequirement is the aggregated need for one ingredient across an order
type StockRequirement struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Unit           string    `json:"unit"`
	Required       float64   `json:"required"`
	Available      float64   `json:"available"`
	Shortfall      float64   `json:"shortfall"`
}

// Sufficient reports whether stock covers the requirement
func (r StockRequirement) Sufficient() bool {
	return r.Shortfall <= 0
}
