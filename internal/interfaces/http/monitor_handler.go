package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/application/monitor"
	"github.com/tu-usuario/cardstock-pro/internal/infrastructure/metrics"
)

// MonitorHandler dispara el chequeo de stock bajo (protegido, admin).
type MonitorHandler struct {
	uc *monitor.LowStockUseCase
}

// NewMonitorHandler construye el handler.
func NewMonitorHandler(uc *monitor.LowStockUseCase) *MonitorHandler {
	return &MonitorHandler{uc: uc}
}

// CheckLowStock godoc
// @Summary      Chequeo de stock bajo por bucket de estación
// @Description  Genera mensajes LOW_STOCK para los buckets bajo umbral fuera de la ventana de enfriamiento.
// @Tags         monitor
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockCheckResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/monitor/low-stock/check [post]
func (h *MonitorHandler) CheckLowStock(c *fiber.Ctx) error {
	result, err := h.uc.Check(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	metrics.LowStockAlerts.Add(float64(result.AlertsSent))
	return c.JSON(dto.LowStockCheckResponse{
		BucketsChecked: result.BucketsChecked,
		AlertsSent:     result.AlertsSent,
	})
}
