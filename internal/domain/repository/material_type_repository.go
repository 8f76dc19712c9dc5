package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// MaterialTypeRepository puerto de persistencia del catálogo de materiales.
// Las búsquedas devuelven nil (sin error) cuando no hay coincidencia: que un
// material no exista en el catálogo es un resultado esperado, no una falla.
type MaterialTypeRepository interface {
	Create(mt *entity.MaterialType) error
	GetByID(id string) (*entity.MaterialType, error)
	Update(mt *entity.MaterialType) error
	// Deactivate soft-delete: marca is_active = false, nunca borra la fila.
	Deactivate(id string) error

	// FindByNameOrAlias coincidencia exacta (case-insensitive) contra nombre,
	// código de especificación o cualquier alias. Devuelve la primera coincidencia.
	FindByNameOrAlias(name string) (*entity.MaterialType, error)
	// Search coincidencia por subcadena contra nombre/códigos/aliases,
	// priorizando nombre exacto, luego código exacto, luego alfabético.
	Search(term string, limit int) ([]*entity.MaterialType, error)

	// EquivalentIDs ids listados en la tabla de equivalencias con primary = id.
	EquivalentIDs(id string) ([]string, error)
	// ChildIDs ids de tipos cuyo equivalent_to_id apunta a id.
	ChildIDs(id string) ([]string, error)
	AddEquivalence(eq *entity.MaterialTypeEquivalence) error
	RemoveEquivalence(primaryID, equivalentID string) error
}
