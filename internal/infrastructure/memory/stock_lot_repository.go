package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
	"github.com/tallerpro/taller-api/internal/domain/repository"
	"github.com/tallerpro/taller-api/internal/domain/stock"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

const findAvailableLimit = 20

// StockLotRepo lotes de stock en memoria. Las mutaciones del ledger corren bajo
// el mutex del repo, lo que las hace atómicas igual que el UPDATE condicional
// del adaptador PostgreSQL.
type StockLotRepo struct {
	mu    sync.Mutex
	lots  map[string]*entity.StockLot
	types *MaterialTypeRepo
}

func NewStockLotRepository() *StockLotRepo {
	return &StockLotRepo{lots: make(map[string]*entity.StockLot)}
}

// UseCatalog enlaza el catálogo en memoria para que el fallback por nombre
// libre también compare contra el nombre del tipo de material, igual que el
// subquery sobre material_types del adaptador PostgreSQL.
func (r *StockLotRepo) UseCatalog(types *MaterialTypeRepo) {
	r.types = types
}

func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	cp := *lot
	r.lots[lot.ID] = &cp
	return nil
}

func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lot, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *StockLotRepo) List(limit, offset int) ([]*entity.StockLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.StockLot, 0, len(r.lots))
	for _, lot := range r.lots {
		cp := *lot
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// FindAvailable evalúa el filtro en memoria con la misma lógica dimensional
// (matching.Fits) que el adaptador traduce a SQL, ordenado por size_index.
func (r *StockLotRepo) FindAvailable(f repository.StockFilter) ([]*entity.StockLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*entity.StockLot
	for _, lot := range r.lots {
		if !r.matchesFilter(lot, f) {
			continue
		}
		cp := *lot
		results = append(results, &cp)
	}
	sort.Slice(results, func(i, j int) bool {
		return sizeIndexOf(results[i]) < sizeIndexOf(results[j])
	})
	limit := f.Limit
	if limit <= 0 {
		limit = findAvailableLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *StockLotRepo) matchesFilter(lot *entity.StockLot, f repository.StockFilter) bool {
	if lot.Status != entity.StockStatusAvailable {
		return false
	}
	if lot.Available().LessThan(f.RequiredQty) {
		return false
	}
	if len(f.TypeIDs) > 0 {
		if !typeMatches(lot, f.TypeIDs) && !strings.EqualFold(lot.MaterialName, f.FallbackName) {
			return false
		}
	} else if f.FallbackName != "" {
		if !r.fallbackMatches(lot, f.FallbackName) {
			return false
		}
	}
	if f.ShapeType != "" && lot.ShapeType != f.ShapeType {
		return false
	}
	return matching.Fits(f.ShapeType, lotDims(lot), f.MinDims)
}

// fallbackMatches subcadena case-insensitive contra el nombre libre del lote
// y, si hay catálogo enlazado, contra el nombre del tipo asociado.
func (r *StockLotRepo) fallbackMatches(lot *entity.StockLot, name string) bool {
	needle := strings.ToLower(name)
	if strings.Contains(strings.ToLower(lot.MaterialName), needle) {
		return true
	}
	if r.types == nil || lot.MaterialTypeID == nil {
		return false
	}
	typeName, ok := r.types.nameOf(*lot.MaterialTypeID)
	return ok && strings.Contains(strings.ToLower(typeName), needle)
}

func typeMatches(lot *entity.StockLot, typeIDs []string) bool {
	if lot.MaterialTypeID == nil {
		return false
	}
	for _, id := range typeIDs {
		if *lot.MaterialTypeID == id {
			return true
		}
	}
	return false
}

func lotDims(lot *entity.StockLot) matching.Dimensions {
	return matching.Dimensions{
		Diameter:  lot.Diameter,
		Width:     lot.Width,
		Height:    lot.Height,
		Thickness: lot.Thickness,
		Length:    lot.Length,
	}
}

func sizeIndexOf(lot *entity.StockLot) float64 {
	return matching.SizeIndex(lot.ShapeType, lotDims(lot))
}

func (r *StockLotRepo) Reserve(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	return r.mutate(id, func(lot *entity.StockLot) error {
		return stock.ApplyReserve(lot, qty, time.Now())
	})
}

func (r *StockLotRepo) ReleaseReserve(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	return r.mutate(id, func(lot *entity.StockLot) error {
		stock.ApplyRelease(lot, qty, time.Now())
		return nil
	})
}

func (r *StockLotRepo) Consume(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	return r.mutate(id, func(lot *entity.StockLot) error {
		return stock.ApplyConsume(lot, qty, time.Now())
	})
}

func (r *StockLotRepo) AddStock(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	return r.mutate(id, func(lot *entity.StockLot) error {
		stock.ApplyAdd(lot, qty, time.Now())
		return nil
	})
}

func (r *StockLotRepo) mutate(id string, apply func(*entity.StockLot) error) (*entity.StockLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lot, ok := r.lots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := apply(lot); err != nil {
		return nil, err
	}
	cp := *lot
	return &cp, nil
}
