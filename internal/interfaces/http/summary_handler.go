package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cardstock-pro/internal/application/summary"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// SummaryHandler lecturas de resumen sobre el agregado (protegido).
type SummaryHandler struct {
	uc *summary.UseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *summary.UseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

func summaryFilter(c *fiber.Ctx) repository.SummaryFilter {
	return repository.SummaryFilter{
		CategoryID: c.Query("category_id"),
		TypeID:     c.Query("type_id"),
		StationID:  c.Query("station_id"),
	}
}

// CategoryType godoc
// @Summary      Resumen por categoría y tipo
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "filtrar por categoría"
// @Param        type_id      query  string  false  "filtrar por tipo"
// @Success      200  {array}   dto.CategoryTypeSummaryRow
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/summary/category-type [get]
func (h *SummaryHandler) CategoryType(c *fiber.Ctx) error {
	rows, err := h.uc.CategoryTypeSummary(c.Context(), summaryFilter(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "rows": rows})
}

// StationMonitor godoc
// @Summary      Monitor de inventario por estación
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Param        station_id   query  string  false  "filtrar por estación"
// @Param        category_id  query  string  false  "filtrar por categoría"
// @Success      200  {array}   dto.StationMonitorRow
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/summary/station-monitor [get]
func (h *SummaryHandler) StationMonitor(c *fiber.Ctx) error {
	rows, err := h.uc.StationMonitor(c.Context(), summaryFilter(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "rows": rows})
}

// Total godoc
// @Summary      Resumen total por estado de tarjeta
// @Description  Único lector que consulta el Card Store directo (perdidas/dañadas no están en el agregado).
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/summary/total [get]
func (h *SummaryHandler) Total(c *fiber.Ctx) error {
	resp, err := h.uc.TotalSummary(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// Stations godoc
// @Summary      Resumen por estación (incluye fila sintética Office)
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StationSummaryRow
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/summary/stations [get]
func (h *SummaryHandler) Stations(c *fiber.Ctx) error {
	rows, err := h.uc.StationSummary(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "rows": rows})
}
