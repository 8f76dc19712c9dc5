package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

const stockLotColumns = `id, material_name, material_type_id, shape_type, diameter, width, height,
		thickness, length, current_stock, reserved_stock, reorder_level, unit, cost_per_unit,
		quality_status, last_used_date, location, status, created_at, updated_at`

const findAvailableLimit = 20

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL (usable con pool o tx).
// Las mutaciones del ledger son UPDATEs condicionales de una sola fila: la
// verificación de disponibilidad vive en el WHERE, así dos reservas
// concurrentes nunca pueden sobrevender el mismo lote.
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

// Create persiste un lote nuevo con su size_index precalculado.
func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	sizeIndex := matching.SizeIndex(lot.ShapeType, matching.Dimensions{
		Diameter:  lot.Diameter,
		Width:     lot.Width,
		Height:    lot.Height,
		Thickness: lot.Thickness,
		Length:    lot.Length,
	})
	query := `
		INSERT INTO stock_lots (id, material_name, material_type_id, shape_type, diameter, width,
			height, thickness, length, current_stock, reserved_stock, reorder_level, unit,
			cost_per_unit, quality_status, last_used_date, location, status, size_index,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.MaterialName, lot.MaterialTypeID, lot.ShapeType, lot.Diameter, lot.Width,
		lot.Height, lot.Thickness, lot.Length, lot.CurrentStock, lot.ReservedStock,
		lot.ReorderLevel, lot.Unit, lot.CostPerUnit, lot.QualityStatus, lot.LastUsedDate,
		lot.Location, lot.Status, sizeIndex, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("material type %v: %w", lot.MaterialTypeID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil sin error si no existe.
func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanStockLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// List lista lotes con paginación, más recientes primero.
func (r *StockLotRepo) List(limit, offset int) ([]*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock lots: %w", err)
	}
	defer rows.Close()
	return collectStockLots(rows)
}

// FindAvailable traduce el StockFilter a SQL parametrizado. Solo lotes con
// status available y disponibilidad suficiente; la lógica dimensional depende
// de la forma: material plano admite rotación en el plano (ancho/alto
// intercambiables), barras y tubos comparan eje por eje. Orden ascendente por
// size_index: primero el material más pequeño que alcanza.
func (r *StockLotRepo) FindAvailable(f repository.StockFilter) ([]*entity.StockLot, error) {
	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	clauses = append(clauses, "status = "+arg(entity.StockStatusAvailable))
	clauses = append(clauses, "(current_stock - reserved_stock) >= "+arg(f.RequiredQty))

	if len(f.TypeIDs) > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"(material_type_id = ANY(%s) OR lower(material_name) = lower(%s))",
			arg(f.TypeIDs), arg(f.FallbackName)))
	} else if f.FallbackName != "" {
		// Sin tipos resueltos el nombre libre también se compara contra el
		// nombre del tipo de material asociado al lote.
		fb := arg(f.FallbackName)
		clauses = append(clauses, fmt.Sprintf(
			`(material_name ILIKE '%%' || %s || '%%'
		   OR material_type_id IN (SELECT id FROM material_types WHERE name ILIKE '%%' || %s || '%%'))`,
			fb, fb))
	}

	if f.ShapeType != "" {
		clauses = append(clauses, "shape_type = "+arg(f.ShapeType))
	}

	if matching.IsFlat(f.ShapeType) {
		clauses = append(clauses, flatDimensionClauses(f.MinDims, arg)...)
	} else {
		clauses = append(clauses, axisDimensionClauses(f.MinDims, arg)...)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = findAvailableLimit
	}
	query := `SELECT ` + stockLotColumns + `
		FROM stock_lots
		WHERE ` + strings.Join(clauses, "\n\t\t  AND ") + `
		ORDER BY size_index ASC
		LIMIT ` + arg(limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("find available stock: %w", err)
	}
	defer rows.Close()
	return collectStockLots(rows)
}

// flatDimensionClauses placa/lámina: espesor por su eje (NULL califica) y
// superficie con rotación: la mayor dimensión planar del lote cubre la mayor
// solicitada y la menor no nula cubre la menor. Con una sola dimensión planar
// solicitada basta cualquier dimensión planar del lote.
func flatDimensionClauses(d matching.Dimensions, arg func(any) string) []string {
	var clauses []string
	if d.Thickness != nil {
		p := arg(*d.Thickness)
		clauses = append(clauses, "(thickness IS NULL OR thickness >= "+p+")")
	}

	const planarLargest = "GREATEST(COALESCE(width, 0), COALESCE(height, 0), COALESCE(length, 0))"
	const planarSmallest = "COALESCE(LEAST(NULLIF(width, 0), NULLIF(height, 0), NULLIF(length, 0)), 0)"

	switch {
	case d.Width != nil && d.Height != nil:
		larger := max(*d.Width, *d.Height)
		smaller := min(*d.Width, *d.Height)
		clauses = append(clauses,
			planarLargest+" >= "+arg(larger),
			planarSmallest+" >= "+arg(smaller))
	case d.Width != nil:
		clauses = append(clauses, planarLargest+" >= "+arg(*d.Width))
	case d.Height != nil:
		clauses = append(clauses, planarLargest+" >= "+arg(*d.Height))
	}
	return clauses
}

// axisDimensionClauses barras/tubos/otros: cada dimensión solicitada contra su
// propio eje, sin rotación; columna NULL no descarta.
func axisDimensionClauses(d matching.Dimensions, arg func(any) string) []string {
	var clauses []string
	add := func(column string, v *float64) {
		if v != nil {
			p := arg(*v)
			clauses = append(clauses, "("+column+" IS NULL OR "+column+" >= "+p+")")
		}
	}
	add("width", d.Width)
	add("height", d.Height)
	add("thickness", d.Thickness)
	add("diameter", d.Diameter)
	return clauses
}

// Reserve aparta qty de forma atómica: el WHERE revalida la disponibilidad en
// el mismo UPDATE, el perdedor de la carrera no afecta filas.
func (r *StockLotRepo) Reserve(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	query := `
		UPDATE stock_lots SET
			reserved_stock = reserved_stock + $2,
			status = CASE
				WHEN current_stock - (reserved_stock + $2) <= 0 THEN 'reserved'
				WHEN current_stock - (reserved_stock + $2) <= reorder_level THEN 'low_stock'
				ELSE status
			END,
			last_used_date = now(),
			updated_at = now()
		WHERE id = $1 AND (current_stock - reserved_stock) >= $2
		RETURNING ` + stockLotColumns
	return r.conditionalUpdate(id, query, id, qty)
}

// ReleaseReserve devuelve qty de la reserva, con piso en cero.
func (r *StockLotRepo) ReleaseReserve(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	query := `
		UPDATE stock_lots SET
			reserved_stock = GREATEST(reserved_stock - $2, 0),
			status = CASE
				WHEN current_stock - GREATEST(reserved_stock - $2, 0) > reorder_level THEN 'available'
				ELSE status
			END,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + stockLotColumns
	lot, err := scanStockLot(r.q.QueryRow(context.Background(), query, id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("release reserve: %w", err)
	}
	return lot, nil
}

// Consume descuenta qty del stock físico y de la reserva (piso en cero),
// con la misma semántica compare-and-swap de Reserve.
func (r *StockLotRepo) Consume(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	query := `
		UPDATE stock_lots SET
			current_stock = current_stock - $2,
			reserved_stock = GREATEST(reserved_stock - $2, 0),
			status = CASE
				WHEN current_stock - $2 <= 0 THEN 'out_of_stock'
				WHEN (current_stock - $2) - GREATEST(reserved_stock - $2, 0) <= reorder_level THEN 'low_stock'
				ELSE status
			END,
			last_used_date = now(),
			updated_at = now()
		WHERE id = $1 AND current_stock >= $2
		RETURNING ` + stockLotColumns
	return r.conditionalUpdate(id, query, id, qty)
}

// AddStock ingresa qty al stock físico.
func (r *StockLotRepo) AddStock(id string, qty decimal.Decimal) (*entity.StockLot, error) {
	query := `
		UPDATE stock_lots SET
			current_stock = current_stock + $2,
			status = CASE
				WHEN (current_stock + $2) - reserved_stock > reorder_level THEN 'available'
				ELSE status
			END,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + stockLotColumns
	lot, err := scanStockLot(r.q.QueryRow(context.Background(), query, id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add stock: %w", err)
	}
	return lot, nil
}

// conditionalUpdate ejecuta un UPDATE con precondición en el WHERE. Cero filas
// puede significar lote inexistente o precondición fallida; se distingue con
// una consulta de existencia para reportar ErrNotFound vs ErrInsufficientStock.
func (r *StockLotRepo) conditionalUpdate(id, query string, args ...any) (*entity.StockLot, error) {
	lot, err := scanStockLot(r.q.QueryRow(context.Background(), query, args...))
	if err == nil {
		return lot, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("stock ledger update: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_lots WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("stock ledger check: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInsufficientStock
}

func scanStockLot(row pgx.Row) (*entity.StockLot, error) {
	var lot entity.StockLot
	err := row.Scan(
		&lot.ID, &lot.MaterialName, &lot.MaterialTypeID, &lot.ShapeType, &lot.Diameter,
		&lot.Width, &lot.Height, &lot.Thickness, &lot.Length, &lot.CurrentStock,
		&lot.ReservedStock, &lot.ReorderLevel, &lot.Unit, &lot.CostPerUnit,
		&lot.QualityStatus, &lot.LastUsedDate, &lot.Location, &lot.Status,
		&lot.CreatedAt, &lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func collectStockLots(rows pgx.Rows) ([]*entity.StockLot, error) {
	var list []*entity.StockLot
	for rows.Next() {
		lot, err := scanStockLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}
