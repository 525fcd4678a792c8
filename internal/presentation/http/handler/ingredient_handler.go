package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// IngredientHandler handles inventory ledger HTTP requests
type IngredientHandler struct {
	inventoryService *service.InventoryService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(inventoryService *service.InventoryService) *IngredientHandler {
	return &IngredientHandler{inventoryService: inventoryService}
}

// List handles listing every ingredient
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.inventoryService.ListIngredients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredients retrieved successfully", ingredients)
}

// LowStock handles listing ingredients at or below their reorder level
func (h *IngredientHandler) LowStock(c *gin.Context) {
	ingredients, err := h.inventoryService.CheckLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock ingredients retrieved successfully", ingredients)
}

// Get handles fetching one ingredient
func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "ingredient")
	if !ok {
		return
	}

	ingredient, err := h.inventoryService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient retrieved successfully", ingredient)
}

// Create handles adding an ingredient
func (h *IngredientHandler) Create(c *gin.Context) {
	var req request.CreateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.inventoryService.AddIngredient(c.Request.Context(), &service.AddIngredientInput{
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		SupplierInfo: req.SupplierInfo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ingredient created successfully", ingredient)
}

// Update handles changing an ingredient's descriptive fields
func (h *IngredientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "ingredient")
	if !ok {
		return
	}

	var req request.UpdateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.inventoryService.UpdateIngredientDetails(c.Request.Context(), id, &service.UpdateIngredientInput{
		Name:         req.Name,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		SupplierInfo: req.SupplierInfo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient updated successfully", ingredient)
}

// Adjust handles a restock or manual stock correction
func (h *IngredientHandler) Adjust(c *gin.Context) {
	id, ok := parseID(c, "id", "ingredient")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.inventoryService.AdjustStock(c.Request.Context(), id, *req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted successfully", ingredient)
}

// Delete handles removing an ingredient
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "ingredient")
	if !ok {
		return
	}

	if err := h.inventoryService.RemoveIngredient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient deleted successfully", nil)
}
