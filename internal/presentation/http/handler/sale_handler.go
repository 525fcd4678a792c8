package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// SaleHandler handles checkout and sales history HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{saleService: saleService, receiptService: receiptService}
}

// Finalize handles completing the current order
func (h *SaleHandler) Finalize(c *gin.Context) {
	var req request.FinalizeSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.saleService.Finalize(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale finalized successfully", result)
}

// List handles paging through sales history, newest first
func (h *SaleHandler) List(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), dateRange, parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles fetching one sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Receipt handles previewing a sale's receipt
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	preview, err := h.receiptService.Preview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt generated", preview)
}

// Print handles sending a sale's receipt to the printer
func (h *SaleHandler) Print(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	preview, err := h.receiptService.Print(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithData(c, err, preview)
		return
	}
	response.OK(c, "Receipt printed", preview)
}
