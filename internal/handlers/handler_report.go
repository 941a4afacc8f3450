package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/middleware"
)

// reportHandler serves read-only stock projections.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/low-stock", h.listLowStock)
	}
}

// listLowStock godoc
// @Summary List products needing restock
// @Description Retrieves active products with stock in hand at or below their restock level, ordered by ascending stock in hand
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.LowStockResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build low stock report"
// @Security BearerAuth
// @Router /reports/low-stock [get]
func (h *reportHandler) listLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.ListLowStock(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build low stock report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build low stock report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
