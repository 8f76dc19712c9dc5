package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/domain"
)

// SuggestionHandler maneja el motor de sugerencias de material (protegido).
type SuggestionHandler struct {
	uc     *matching.SuggestionUseCase
	ticket *matching.PickingTicketUseCase
}

// NewSuggestionHandler construye el handler de sugerencias.
func NewSuggestionHandler(uc *matching.SuggestionUseCase, ticket *matching.PickingTicketUseCase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc, ticket: ticket}
}

// GetSuggestions godoc
// @Summary      Sugerir lotes de stock para una solicitud de material
// @Description  Resuelve el tipo y sus equivalencias, filtra candidatos
//
//	dimensionalmente capaces y los rankea por puntaje. Cero
//	candidatos devuelve 200 con lista vacía y mensaje, no error.
//
// @Tags         suggestions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestionRequest  true  "material_type, dimensions, quantity; save=true persiste auditoría"
// @Success      200   {object}  dto.SuggestionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suggestions [post]
func (h *SuggestionHandler) GetSuggestions(c *fiber.Ctx) error {
	var in dto.SuggestionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.GetSuggestions(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_type es requerido"})
		}
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar una sugerencia guardada
// @Description  Marca la sugerencia como aceptada y reserva la cantidad sobre
//
//	el lote en una sola transacción.
//
// @Tags         suggestions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sugerencia"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suggestions/{id}/accept [post]
func (h *SuggestionHandler) Accept(c *fiber.Ctx) error {
	s, err := h.uc.AcceptSuggestion(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(fiber.Map{"id": s.ID, "status": s.Status, "stock_lot_id": s.StockLotID})
}

// Reject godoc
// @Summary      Rechazar una sugerencia guardada
// @Tags         suggestions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sugerencia"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suggestions/{id}/reject [post]
func (h *SuggestionHandler) Reject(c *fiber.Ctx) error {
	s, err := h.uc.RejectSuggestion(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(fiber.Map{"id": s.ID, "status": s.Status})
}

// PickingTicket godoc
// @Summary      Vale de salida en PDF de una sugerencia aceptada
// @Tags         suggestions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sugerencia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suggestions/{id}/picking-ticket [get]
func (h *SuggestionHandler) PickingTicket(c *fiber.Ctx) error {
	pdfBytes, err := h.ticket.GenerateBySuggestionID(c.Context(), c.Params("id"))
	if err != nil {
		return h.decisionError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="picking-ticket.pdf"`)
	return c.Send(pdfBytes)
}

// decisionError mapea los errores compartidos de accept/reject/ticket.
func (h *SuggestionHandler) decisionError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sugerencia no encontrada"})
	}
	if err == domain.ErrConflict {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la sugerencia ya fue decidida o no está aceptada"})
	}
	if err == domain.ErrInsufficientStock {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el lote ya no tiene disponibilidad suficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
