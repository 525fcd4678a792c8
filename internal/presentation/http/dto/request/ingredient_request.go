package request

// CreateIngredientRequest represents an ingredient creation request
type CreateIngredientRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Unit         string  `json:"unit" binding:"required,max=50"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
	SupplierInfo string  `json:"supplier_info" binding:"max=1000"`
}

// UpdateIngredientRequest changes descriptive fields only
type UpdateIngredientRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=255"`
	Unit         *string  `json:"unit" binding:"omitempty,max=50"`
	ReorderLevel *float64 `json:"reorder_level"`
	SupplierInfo *string  `json:"supplier_info" binding:"omitempty,max=1000"`
}

// AdjustStockRequest moves stock by a signed delta
type AdjustStockRequest struct {
	Delta *float64 `json:"delta" binding:"required"`
}
