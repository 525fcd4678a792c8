package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PrinterStatus reports whether the receipt printer looks reachable
type PrinterStatus interface {
	PrinterReady() bool
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	appName string
	printer PrinterStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(appName string, printer PrinterStatus) *HealthHandler {
	return &HealthHandler{appName: appName, printer: printer}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"service":   h.appName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.printer != nil {
		body["printer_ready"] = h.printer.PrinterReady()
	}
	c.JSON(http.StatusOK, body)
}
