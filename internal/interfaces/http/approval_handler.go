package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cardstock-pro/internal/application/approval"
	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/application/inbox"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
	"github.com/tu-usuario/cardstock-pro/internal/infrastructure/metrics"
)

// ApprovalHandler maneja la bandeja administrativa y las decisiones de
// aprobación (protegido, solo admin).
type ApprovalHandler struct {
	decision *approval.DecisionUseCase
	inbox    *inbox.UseCase
}

// NewApprovalHandler construye el handler.
func NewApprovalHandler(decision *approval.DecisionUseCase, inboxUC *inbox.UseCase) *ApprovalHandler {
	return &ApprovalHandler{decision: decision, inbox: inboxUC}
}

// Decide godoc
// @Summary      Decidir sobre un reporte de tarjetas perdidas/dañadas
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del mensaje de bandeja"
// @Param        body  body  dto.DecisionRequest  true  "action: APPROVE | REJECT"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/approvals/{id}/decision [post]
func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.decision.Decide(c.Context(), c.Params("id"), entity.DecisionAction(in.Action), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	metrics.ApprovalDecisions.WithLabelValues(string(result.Action)).Inc()
	return c.JSON(dto.DecisionResponse{
		InboxMessageID: result.InboxMessageID,
		Action:         string(result.Action),
		LostApplied:    result.LostApplied,
		DamagedApplied: result.DamagedApplied,
		Restored:       result.Restored,
	})
}

// ListInbox godoc
// @Summary      Listar mensajes de la bandeja
// @Tags         inbox
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "STOCK_ISSUE_APPROVAL | STOCK_OUT_REPORT | LOW_STOCK"
// @Param        unread  query  bool    false  "solo no leídos"
// @Param        limit   query  int     false  "por página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.InboxMessageDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inbox [get]
func (h *ApprovalHandler) ListInbox(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.inbox.List(c.Context(), repository.InboxFilter{
		RecipientRole: GetRole(c),
		Type:          entity.InboxType(c.Query("type")),
		UnreadOnly:    c.QueryBool("unread"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "messages": list})
}

// MarkRead godoc
// @Summary      Marcar un mensaje como leído
// @Description  No decide aprobaciones: leer no equivale a procesar.
// @Tags         inbox
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del mensaje"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbox/{id}/read [patch]
func (h *ApprovalHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domainError(c, domain.ErrInvalidInput)
	}
	if err := h.inbox.MarkRead(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "mensaje leído"})
}
