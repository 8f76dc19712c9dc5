package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// Tope de resultados para búsquedas en el catálogo.
const searchLimit = 20

// UseCase casos de uso del catálogo de materiales: resolución de nombre a tipo,
// expansión del set de equivalencias y mantenimiento CRUD con soft-delete.
type UseCase struct {
	repo repository.MaterialTypeRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(repo repository.MaterialTypeRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ResolveIDByNameOrAlias resuelve un nombre libre al ID del tipo canónico por
// coincidencia exacta (case-insensitive) contra nombre, código de especificación
// o alias. Devuelve "" sin error cuando no hay coincidencia: el flujo de
// sugerencias continúa con el nombre como clave de respaldo.
func (uc *UseCase) ResolveIDByNameOrAlias(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	mt, err := uc.repo.FindByNameOrAlias(name)
	if err != nil {
		return "", err
	}
	if mt == nil {
		return "", nil
	}
	return mt.ID, nil
}

// ExpandEquivalentIDs devuelve el set de tipos intercambiables con typeID:
// el propio tipo, los listados en la tabla de equivalencias con primary=typeID,
// los tipos que apuntan a typeID vía equivalent_to_id, y el padre del propio
// tipo si lo tiene. La expansión es de un solo salto: no recorre cadenas
// A≡B, B≡C salvo que la tabla las liste directamente.
func (uc *UseCase) ExpandEquivalentIDs(typeID string) ([]string, error) {
	self, err := uc.repo.GetByID(typeID)
	if err != nil {
		return nil, err
	}
	if self == nil {
		return nil, domain.ErrNotFound
	}

	seen := map[string]bool{typeID: true}
	ids := []string{typeID}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	tableIDs, err := uc.repo.EquivalentIDs(typeID)
	if err != nil {
		return nil, err
	}
	for _, id := range tableIDs {
		add(id)
	}

	childIDs, err := uc.repo.ChildIDs(typeID)
	if err != nil {
		return nil, err
	}
	for _, id := range childIDs {
		add(id)
	}

	if self.EquivalentToID != nil {
		add(*self.EquivalentToID)
	}
	return ids, nil
}

// Search busca tipos por subcadena en nombre/códigos/aliases, máximo 20
// resultados: primero nombre exacto, luego código exacto, luego alfabético.
func (uc *UseCase) Search(term string) ([]dto.MaterialTypeResponse, error) {
	types, err := uc.repo.Search(strings.TrimSpace(term), searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialTypeResponse, 0, len(types))
	for _, mt := range types {
		out = append(out, *toResponse(mt))
	}
	return out, nil
}

// Create da de alta un tipo de material.
func (uc *UseCase) Create(in dto.MaterialTypeRequest) (*dto.MaterialTypeResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	mt := &entity.MaterialType{
		ID:                    uuid.New().String(),
		Name:                  in.Name,
		Category:              in.Category,
		SpecificationCode:     in.SpecificationCode,
		SpecificationStandard: in.SpecificationStandard,
		SpecificationName:     in.SpecificationName,
		MaterialGrade:         in.MaterialGrade,
		Aliases:               in.Aliases,
		EquivalentToID:        in.EquivalentToID,
		IsPreferred:           in.IsPreferred,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(mt); err != nil {
		return nil, err
	}
	return toResponse(mt), nil
}

// GetByID obtiene un tipo por ID.
func (uc *UseCase) GetByID(id string) (*dto.MaterialTypeResponse, error) {
	mt, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mt == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(mt), nil
}

// Update actualiza campos del tipo (upsert a nivel de campos, sin invariantes
// adicionales).
func (uc *UseCase) Update(id string, in dto.MaterialTypeRequest) (*dto.MaterialTypeResponse, error) {
	mt, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mt == nil {
		return nil, domain.ErrNotFound
	}
	mt.Name = in.Name
	mt.Category = in.Category
	mt.SpecificationCode = in.SpecificationCode
	mt.SpecificationStandard = in.SpecificationStandard
	mt.SpecificationName = in.SpecificationName
	mt.MaterialGrade = in.MaterialGrade
	mt.Aliases = in.Aliases
	mt.EquivalentToID = in.EquivalentToID
	mt.IsPreferred = in.IsPreferred
	mt.UpdatedAt = time.Now()
	if err := uc.repo.Update(mt); err != nil {
		return nil, err
	}
	return toResponse(mt), nil
}

// Deactivate soft-delete del tipo (is_active = false).
func (uc *UseCase) Deactivate(id string) error {
	mt, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if mt == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// AddEquivalence registra una equivalencia explícita primary → equivalent.
func (uc *UseCase) AddEquivalence(primaryID string, in dto.EquivalenceRequest) error {
	primary, err := uc.repo.GetByID(primaryID)
	if err != nil {
		return err
	}
	equivalent, err := uc.repo.GetByID(in.EquivalentID)
	if err != nil {
		return err
	}
	if primary == nil || equivalent == nil {
		return domain.ErrNotFound
	}
	return uc.repo.AddEquivalence(&entity.MaterialTypeEquivalence{
		PrimaryID:    primaryID,
		EquivalentID: in.EquivalentID,
		Rank:         in.Rank,
		Notes:        in.Notes,
	})
}

// RemoveEquivalence elimina una equivalencia explícita.
func (uc *UseCase) RemoveEquivalence(primaryID, equivalentID string) error {
	return uc.repo.RemoveEquivalence(primaryID, equivalentID)
}

func toResponse(mt *entity.MaterialType) *dto.MaterialTypeResponse {
	return &dto.MaterialTypeResponse{
		ID:                    mt.ID,
		Name:                  mt.Name,
		Category:              mt.Category,
		SpecificationCode:     mt.SpecificationCode,
		SpecificationStandard: mt.SpecificationStandard,
		SpecificationName:     mt.SpecificationName,
		MaterialGrade:         mt.MaterialGrade,
		Aliases:               mt.Aliases,
		EquivalentToID:        mt.EquivalentToID,
		IsPreferred:           mt.IsPreferred,
		IsActive:              mt.IsActive,
		CreatedAt:             mt.CreatedAt,
		UpdatedAt:             mt.UpdatedAt,
	}
}
