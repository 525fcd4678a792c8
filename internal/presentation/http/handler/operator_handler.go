package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/infrastructure/operator"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
)

// WarningFeed exposes recently published operator warnings
type WarningFeed interface {
	Recent(limit int) []operator.Notice
}

// OperatorHandler serves the operator warning feed
type OperatorHandler struct {
	feed WarningFeed
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(feed WarningFeed) *OperatorHandler {
	return &OperatorHandler{feed: feed}
}

// Warnings handles listing recent warnings, newest first
func (h *OperatorHandler) Warnings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	response.OK(c, "Warnings retrieved successfully", h.feed.Recent(limit))
}
