package request

// IngredientUsageRequest is one ingredient consumed by a recipe or modifier option
type IngredientUsageRequest struct {
	IngredientID string  `json:"ingredient_id"`
	QuantityUsed float64 `json:"quantity_used"`
}

// ModifierOptionRequest is one selectable option; id may be omitted on create
type ModifierOptionRequest struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	AdditionalCost   float64                  `json:"additional_cost"`
	AdditionalPrice  float64                  `json:"additional_price"`
	IngredientUsages []IngredientUsageRequest `json:"ingredient_usages"`
}

// ModifierGroupRequest is a named set of options
type ModifierGroupRequest struct {
	ID      string                  `json:"id"`
	Name    string                  `json:"name"`
	Options []ModifierOptionRequest `json:"options"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name           string                   `json:"name" binding:"required,max=255"`
	Category       string                   `json:"category" binding:"max=100"`
	SKU            string                   `json:"sku" binding:"max=100"`
	BasePrice      float64                  `json:"base_price"`
	BaseCost       float64                  `json:"base_cost"`
	Recipe         []IngredientUsageRequest `json:"recipe"`
	ModifierGroups []ModifierGroupRequest   `json:"modifier_groups"`
}

// UpdateProductRequest represents a product update request; recipe and
// modifier_groups replace the stored lists when present
type UpdateProductRequest struct {
	Name           *string                   `json:"name" binding:"omitempty,max=255"`
	Category       *string                   `json:"category" binding:"omitempty,max=100"`
	SKU            *string                   `json:"sku" binding:"omitempty,max=100"`
	BasePrice      *float64                  `json:"base_price"`
	BaseCost       *float64                  `json:"base_cost"`
	Recipe         *[]IngredientUsageRequest `json:"recipe"`
	ModifierGroups *[]ModifierGroupRequest   `json:"modifier_groups"`
}
