// Package memory implementa los puertos de persistencia sobre mapas en memoria,
// protegidos por mutex. Pensado para tests y para correr la API sin base de
// datos; replica el contrato de los adaptadores PostgreSQL, incluida la
// atomicidad de las mutaciones del ledger.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.MaterialTypeRepository = (*MaterialTypeRepo)(nil)

// MaterialTypeRepo catálogo de materiales en memoria.
type MaterialTypeRepo struct {
	mu           sync.Mutex
	types        map[string]*entity.MaterialType
	equivalences []*entity.MaterialTypeEquivalence
}

func NewMaterialTypeRepository() *MaterialTypeRepo {
	return &MaterialTypeRepo{types: make(map[string]*entity.MaterialType)}
}

func (r *MaterialTypeRepo) Create(mt *entity.MaterialType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mt.ID == "" {
		mt.ID = uuid.New().String()
	}
	for _, existing := range r.types {
		if strings.EqualFold(existing.Name, mt.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *mt
	r.types[mt.ID] = &cp
	return nil
}

func (r *MaterialTypeRepo) GetByID(id string) (*entity.MaterialType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mt, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	cp := *mt
	return &cp, nil
}

func (r *MaterialTypeRepo) Update(mt *entity.MaterialType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[mt.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *mt
	r.types[mt.ID] = &cp
	return nil
}

func (r *MaterialTypeRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mt, ok := r.types[id]
	if !ok {
		return domain.ErrNotFound
	}
	mt.IsActive = false
	return nil
}

// FindByNameOrAlias coincidencia exacta case-insensitive contra nombre, código
// de especificación o alias, solo tipos activos; prefiere el tipo marcado
// como preferido.
func (r *MaterialTypeRepo) FindByNameOrAlias(name string) (*entity.MaterialType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *entity.MaterialType
	for _, mt := range r.types {
		if !mt.IsActive || !matchesExact(mt, name) {
			continue
		}
		if found == nil || (mt.IsPreferred && !found.IsPreferred) {
			found = mt
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func matchesExact(mt *entity.MaterialType, name string) bool {
	if strings.EqualFold(mt.Name, name) || strings.EqualFold(mt.SpecificationCode, name) {
		return true
	}
	for _, alias := range mt.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Search subcadena case-insensitive en nombre/códigos/aliases; prioriza nombre
// exacto, luego código exacto, luego alfabético (mismo orden que el adaptador
// PostgreSQL).
func (r *MaterialTypeRepo) Search(term string, limit int) ([]*entity.MaterialType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(term)
	var results []*entity.MaterialType
	for _, mt := range r.types {
		if !mt.IsActive {
			continue
		}
		if matchesSubstring(mt, needle) {
			cp := *mt
			results = append(results, &cp)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if ea, eb := strings.EqualFold(a.Name, term), strings.EqualFold(b.Name, term); ea != eb {
			return ea
		}
		if ea, eb := strings.EqualFold(a.SpecificationCode, term), strings.EqualFold(b.SpecificationCode, term); ea != eb {
			return ea
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func matchesSubstring(mt *entity.MaterialType, needle string) bool {
	if strings.Contains(strings.ToLower(mt.Name), needle) ||
		strings.Contains(strings.ToLower(mt.SpecificationCode), needle) ||
		strings.Contains(strings.ToLower(mt.SpecificationName), needle) {
		return true
	}
	for _, alias := range mt.Aliases {
		if strings.Contains(strings.ToLower(alias), needle) {
			return true
		}
	}
	return false
}

// nameOf nombre del tipo por ID, para el fallback del repo de lotes.
func (r *MaterialTypeRepo) nameOf(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mt, ok := r.types[id]
	if !ok {
		return "", false
	}
	return mt.Name, true
}

func (r *MaterialTypeRepo) EquivalentIDs(id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, eq := range r.equivalences {
		if eq.PrimaryID == id {
			ids = append(ids, eq.EquivalentID)
		}
	}
	return ids, nil
}

func (r *MaterialTypeRepo) ChildIDs(id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, mt := range r.types {
		if mt.EquivalentToID != nil && *mt.EquivalentToID == id {
			ids = append(ids, mt.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MaterialTypeRepo) AddEquivalence(eq *entity.MaterialTypeEquivalence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.equivalences {
		if existing.PrimaryID == eq.PrimaryID && existing.EquivalentID == eq.EquivalentID {
			cp := *eq
			r.equivalences[i] = &cp
			return nil
		}
	}
	cp := *eq
	r.equivalences = append(r.equivalences, &cp)
	return nil
}

func (r *MaterialTypeRepo) RemoveEquivalence(primaryID, equivalentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, eq := range r.equivalences {
		if eq.PrimaryID == primaryID && eq.EquivalentID == equivalentID {
			r.equivalences = append(r.equivalences[:i], r.equivalences[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
