package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain"
)

// StockHandler maneja lotes de stock y las mutaciones del ledger (protegido).
type StockHandler struct {
	uc     *stock.UseCase
	ledger *stock.LedgerUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.UseCase, ledger *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc, ledger: ledger}
}

// Create godoc
// @Summary      Ingresar lote de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockLotRequest  true  "material_name, shape_type, dimensiones, current_stock"
// @Success      201   {object}  dto.StockLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.StockLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.uc.CreateLot(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_name y shape_type son requeridos; cantidades no negativas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// List godoc
// @Summary      Listar lotes de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 20)"
// @Param        offset  query  int  false  "Filas a saltar"
// @Success      200  {array}   dto.StockLotResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit/offset inválidos"})
	}
	lots, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lots)
}

// GetByID godoc
// @Summary      Obtener lote de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.StockLotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lot)
}

// Reserve godoc
// @Summary      Reservar cantidad de un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.QuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockLotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	return h.mutation(c, h.ledger.Reserve)
}

// Release godoc
// @Summary      Liberar cantidad reservada
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.QuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockLotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	return h.mutation(c, h.ledger.ReleaseReserve)
}

// Consume godoc
// @Summary      Consumir cantidad del stock físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.QuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockLotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	return h.mutation(c, h.ledger.Consume)
}

// Add godoc
// @Summary      Ingresar cantidad al stock físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.QuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockLotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	return h.mutation(c, h.ledger.AddStock)
}

// mutation parsea cantidad y mapea los errores compartidos del ledger.
func (h *StockHandler) mutation(
	c *fiber.Ctx,
	op func(string, decimal.Decimal) (*dto.StockLotResponse, error),
) error {
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := op(c.Params("id"), in.Quantity)
	if err != nil {
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lot)
}
