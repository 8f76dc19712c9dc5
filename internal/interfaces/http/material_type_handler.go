package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/catalog"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
)

// MaterialTypeHandler maneja el catálogo de tipos de material (protegido).
type MaterialTypeHandler struct {
	uc *catalog.UseCase
}

// NewMaterialTypeHandler construye el handler del catálogo.
func NewMaterialTypeHandler(uc *catalog.UseCase) *MaterialTypeHandler {
	return &MaterialTypeHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar tipos de material
// @Tags         material-types
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Subcadena contra nombre, códigos de especificación y aliases"
// @Success      200  {array}   dto.MaterialTypeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/material-types [get]
func (h *MaterialTypeHandler) Search(c *fiber.Ctx) error {
	results, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(results)
}

// Create godoc
// @Summary      Crear tipo de material
// @Tags         material-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialTypeRequest  true  "name, category, specification_*, aliases, equivalent_to_id"
// @Success      201   {object}  dto.MaterialTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/material-types [post]
func (h *MaterialTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.MaterialTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mt, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un tipo con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(mt)
}

// GetByID godoc
// @Summary      Obtener tipo de material
// @Tags         material-types
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del tipo"
// @Success      200  {object}  dto.MaterialTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/material-types/{id} [get]
func (h *MaterialTypeHandler) GetByID(c *fiber.Ctx) error {
	mt, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(mt)
}

// Update godoc
// @Summary      Actualizar tipo de material
// @Tags         material-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del tipo"
// @Param        body  body  dto.MaterialTypeRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.MaterialTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/material-types/{id} [put]
func (h *MaterialTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.MaterialTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mt, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(mt)
}

// Deactivate godoc
// @Summary      Desactivar tipo de material (soft-delete)
// @Tags         material-types
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del tipo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/material-types/{id} [delete]
func (h *MaterialTypeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "tipo desactivado"})
}

// Equivalents godoc
// @Summary      Set de equivalencias de un tipo
// @Description  IDs intercambiables con el tipo: él mismo, equivalencias
//
//	explícitas, hijos por equivalent_to_id y su padre. Un solo salto.
//
// @Tags         material-types
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del tipo"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/material-types/{id}/equivalents [get]
func (h *MaterialTypeHandler) Equivalents(c *fiber.Ctx) error {
	ids, err := h.uc.ExpandEquivalentIDs(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"type_id": c.Params("id"), "equivalent_ids": ids})
}

// AddEquivalence godoc
// @Summary      Registrar equivalencia explícita
// @Tags         material-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del tipo primario"
// @Param        body  body  dto.EquivalenceRequest  true  "equivalent_id, rank, notes"
// @Success      201   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/material-types/{id}/equivalents [post]
func (h *MaterialTypeHandler) AddEquivalence(c *fiber.Ctx) error {
	var in dto.EquivalenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EquivalentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "equivalent_id es requerido"})
	}
	if err := h.uc.AddEquivalence(c.Params("id"), in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo primario o equivalente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "equivalencia registrada"})
}

// RemoveEquivalence godoc
// @Summary      Eliminar equivalencia explícita
// @Tags         material-types
// @Security     Bearer
// @Produce      json
// @Param        id             path  string  true  "ID del tipo primario"
// @Param        equivalent_id  path  string  true  "ID del tipo equivalente"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/material-types/{id}/equivalents/{equivalent_id} [delete]
func (h *MaterialTypeHandler) RemoveEquivalence(c *fiber.Ctx) error {
	if err := h.uc.RemoveEquivalence(c.Params("id"), c.Params("equivalent_id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equivalencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "equivalencia eliminada"})
}
