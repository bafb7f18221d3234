package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/analytics"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
)

// DashboardHandler serves the KPI summary and the low-stock alert feed.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// KPIs GET /api/dashboard/kpis.
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.uc.KPIs(c.Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(kpis)
}

// LowStockAlerts GET /api/alerts/low-stock.
func (h *DashboardHandler) LowStockAlerts(c *fiber.Ctx) error {
	rows, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return internalError(c)
	}
	out := make([]dto.LowStockAlertResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.LowStockAlertResponse{
			Level:   dto.LevelFromEntity(&rows[i].Level),
			Product: dto.ProductFromEntity(&rows[i].Product),
		})
	}
	return c.JSON(out)
}
