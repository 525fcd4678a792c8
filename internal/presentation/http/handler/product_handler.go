package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func toUsageInputs(in []request.IngredientUsageRequest) []service.UsageInput {
	out := make([]service.UsageInput, len(in))
	for i, u := range in {
		out[i] = service.UsageInput{IngredientID: u.IngredientID, QuantityUsed: u.QuantityUsed}
	}
	return out
}

func toModifierGroupInputs(in []request.ModifierGroupRequest) []service.ModifierGroupInput {
	out := make([]service.ModifierGroupInput, len(in))
	for i, g := range in {
		options := make([]service.ModifierOptionInput, len(g.Options))
		for j, o := range g.Options {
			options[j] = service.ModifierOptionInput{
				ID:               o.ID,
				Name:             o.Name,
				AdditionalCost:   o.AdditionalCost,
				AdditionalPrice:  o.AdditionalPrice,
				IngredientUsages: toUsageInputs(o.IngredientUsages),
			}
		}
		out[i] = service.ModifierGroupInput{ID: g.ID, Name: g.Name, Options: options}
	}
	return out
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// Get handles fetching one product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.AddProduct(c.Request.Context(), &service.CreateProductInput{
		Name:           req.Name,
		Category:       req.Category,
		SKU:            req.SKU,
		BasePrice:      req.BasePrice,
		BaseCost:       req.BaseCost,
		Recipe:         toUsageInputs(req.Recipe),
		ModifierGroups: toModifierGroupInputs(req.ModifierGroups),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Update handles patching a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateProductInput{
		Name:      req.Name,
		Category:  req.Category,
		SKU:       req.SKU,
		BasePrice: req.BasePrice,
		BaseCost:  req.BaseCost,
	}
	if req.Recipe != nil {
		recipe := toUsageInputs(*req.Recipe)
		input.Recipe = &recipe
	}
	if req.ModifierGroups != nil {
		groups := toModifierGroupInputs(*req.ModifierGroups)
		input.ModifierGroups = &groups
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.catalogService.RemoveProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}
