package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// OrderHandler handles current-order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	saleService  *service.SaleService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, saleService *service.SaleService) *OrderHandler {
	return &OrderHandler{orderService: orderService, saleService: saleService}
}

// availabilityResponse is the stock check for the current order
type availabilityResponse struct {
	CanFinalize  bool        `json:"can_finalize"`
	Requirements interface{} `json:"requirements"`
	Warnings     interface{} `json:"warnings"`
}

// Current handles reading the current order
func (h *OrderHandler) Current(c *gin.Context) {
	order, err := h.orderService.CurrentOrder(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Reset handles discarding the current order
func (h *OrderHandler) Reset(c *gin.Context) {
	order, err := h.orderService.StartNewOrder(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "New order started", order)
}

// AddItem handles adding a configured product to the order
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req request.AddOrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	selections := make([]service.ModifierSelection, 0, len(req.ChosenModifiers))
	for _, m := range req.ChosenModifiers {
		selections = append(selections, service.ModifierSelection{
			ModifierGroupID: uuid.MustParse(m.ModifierGroupID),
			OptionID:        uuid.MustParse(m.OptionID),
		})
	}

	order, err := h.orderService.AddItem(c.Request.Context(), uuid.MustParse(req.ProductID), req.Quantity, selections)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to order", order)
}

// UpdateItem handles replacing a line quantity
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	lineID, ok := parseID(c, "lineId", "line")
	if !ok {
		return
	}

	var req request.UpdateOrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateItemQuantity(c.Request.Context(), lineID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order item updated", order)
}

// RemoveItem handles removing a line
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	lineID, ok := parseID(c, "lineId", "line")
	if !ok {
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order item removed", order)
}

// ApplyDiscount handles replacing the order discount
func (h *OrderHandler) ApplyDiscount(c *gin.Context) {
	var req request.ApplyDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ApplyDiscount(c.Request.Context(), *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", order)
}

// Availability handles checking stock for the current order
func (h *OrderHandler) Availability(c *gin.Context) {
	reqs, warnings, err := h.saleService.CheckAvailability(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	canFinalize := true
	for _, r := range reqs {
		if !r.Sufficient() {
			canFinalize = false
			break
		}
	}
	response.OK(c, "Availability checked", availabilityResponse{
		CanFinalize:  canFinalize,
		Requirements: reqs,
		Warnings:     warnings,
	})
}
