package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary handles the sales summary report
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.SalesSummary(c.Request.Context(), dateRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary generated", report)
}

// InventoryStatus handles the inventory status report
func (h *ReportHandler) InventoryStatus(c *gin.Context) {
	report, err := h.reportService.InventoryStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Inventory status generated", report)
}

// ProfitByProduct handles the per-product profit report
func (h *ReportHandler) ProfitByProduct(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, err := h.reportService.ProfitByProduct(c.Request.Context(), dateRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profit by product generated", rows)
}
