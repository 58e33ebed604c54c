package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/infrastructure/metrics"
)

// StockHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type StockHandler struct {
	intake   *stock.IntakeUseCase
	stockOut *stock.StockOutUseCase
	stockIn  *stock.StockInUseCase
	sale     *stock.SaleUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(intake *stock.IntakeUseCase, out *stock.StockOutUseCase, in *stock.StockInUseCase, sale *stock.SaleUseCase) *StockHandler {
	return &StockHandler{intake: intake, stockOut: out, stockIn: in, sale: sale}
}

// Intake godoc
// @Summary      Ingreso de tarjetas nuevas a bodega
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeRequest  true  "category_id, type_id, product_id, serials"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/intake [post]
func (h *StockHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.intake.Execute(c.Context(), stock.IntakeInput{
		CategoryID: in.CategoryID,
		TypeID:     in.TypeID,
		ProductID:  in.ProductID,
		Serials:    in.Serials,
		ActorID:    GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	metrics.StockMovements.WithLabelValues("intake").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ingreso registrado", "cards": len(in.Serials)})
}

// StockOut godoc
// @Summary      Despacho de un lote bodega -> estación
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "station_id, serials"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.stockOut.Execute(c.Context(), stock.StockOutInput{
		StationID: in.StationID,
		Serials:   in.Serials,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	metrics.StockMovements.WithLabelValues("stock_out").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.StockOutResponse{
		BatchID:    result.BatchID,
		CategoryID: result.CategoryID,
		TypeID:     result.TypeID,
		StationID:  result.StationID,
		Dispatched: result.Dispatched,
	})
}

// StockIn godoc
// @Summary      Recepción de un lote en estación (conciliación)
// @Description  confirmados ∪ perdidos ∪ dañados debe cubrir exactamente el lote original.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "batch_id, confirmed_serials, lost_serials, damaged_serials"
// @Success      200   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.stockIn.Execute(c.Context(), stock.StockInInput{
		BatchID:   in.BatchID,
		Confirmed: in.Confirmed,
		Lost:      in.LostSerials,
		Damaged:   in.DamagedSerials,
		ActorID:   GetUserID(c),
		ActorRole: GetRole(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	metrics.StockMovements.WithLabelValues("stock_in").Inc()
	return c.JSON(dto.StockInResponse{
		BatchID:        result.BatchID,
		Confirmed:      result.Confirmed,
		Lost:           result.Lost,
		Damaged:        result.Damaged,
		InboxMessageID: result.InboxMessageID,
		NeedsApproval:  result.NeedsApproval,
	})
}

// Sale godoc
// @Summary      Evento de compra de una tarjeta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "serial_number"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/sale [post]
func (h *StockHandler) Sale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.sale.Execute(c.Context(), stock.SaleInput{
		SerialNumber: in.SerialNumber,
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	metrics.StockMovements.WithLabelValues("sale").Inc()
	return c.JSON(dto.SaleResponse{
		SerialNumber: result.SerialNumber,
		StationID:    result.StationID,
		PurchaseDate: result.PurchaseDate.Format(time.RFC3339),
		ExpiredDate:  result.ExpiredDate.Format(time.RFC3339),
	})
}
