package request

// ModifierSelectionRequest picks one option of one modifier group
type ModifierSelectionRequest struct {
	ModifierGroupID string `json:"modifier_group_id" binding:"required,uuid"`
	OptionID        string `json:"option_id" binding:"required,uuid"`
}

// AddOrderItemRequest adds a product to the current order
type AddOrderItemRequest struct {
	ProductID       string                     `json:"product_id" binding:"required,uuid"`
	Quantity        int                        `json:"quantity"`
	ChosenModifiers []ModifierSelectionRequest `json:"chosen_modifiers" binding:"dive"`
}

// UpdateOrderItemRequest replaces a line quantity
type UpdateOrderItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ApplyDiscountRequest replaces the order discount
type ApplyDiscountRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// FinalizeSaleRequest completes the current order
type FinalizeSaleRequest struct {
	PaymentMethod string `json:"payment_method"`
}
