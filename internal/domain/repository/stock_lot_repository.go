package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
)

// StockFilter filtro tipado para FindAvailable. Sustituye la concatenación de
// cláusulas SQL: cada campo presente activa su filtro, el adaptador lo traduce
// a su forma nativa (SQL parametrizado o evaluación en memoria).
type StockFilter struct {
	// TypeIDs set de tipos equivalentes ya expandido. Si está vacío, el filtro
	// de tipo cae a coincidencia por subcadena sobre FallbackName.
	TypeIDs []string
	// FallbackName nombre libre del material; con TypeIDs presentes actúa como
	// clave de respaldo por igualdad (case-insensitive) sobre material_name.
	FallbackName string
	// ShapeType vacío = cualquier forma.
	ShapeType string
	// MinDims dimensiones mínimas solicitadas; la lógica por forma vive en
	// el paquete matching.
	MinDims matching.Dimensions
	// RequiredQty el lote debe tener (actual - reservado) >= RequiredQty.
	RequiredQty decimal.Decimal
	// Limit tope de filas; 0 aplica el default de 20.
	Limit int
}

// StockLotRepository puerto de persistencia de lotes de stock, incluidas las
// mutaciones del ledger. Reserve y Consume deben ser atómicas contra el store:
// la verificación de disponibilidad y la mutación ocurren como una sola
// operación indivisible (UPDATE condicional), nunca como leer-luego-escribir.
type StockLotRepository interface {
	Create(lot *entity.StockLot) error
	GetByID(id string) (*entity.StockLot, error)
	List(limit, offset int) ([]*entity.StockLot, error)

	// FindAvailable lotes físicamente capaces de satisfacer el filtro,
	// ordenados ascendente por size_index (primero el material más pequeño).
	FindAvailable(f StockFilter) ([]*entity.StockLot, error)

	// Reserve aparta qty. ErrNotFound si el lote no existe;
	// ErrInsufficientStock si perdió la carrera o no hay disponibilidad.
	Reserve(id string, qty decimal.Decimal) (*entity.StockLot, error)
	// ReleaseReserve devuelve qty de la reserva (piso en cero).
	ReleaseReserve(id string, qty decimal.Decimal) (*entity.StockLot, error)
	// Consume descuenta qty del stock físico y de la reserva.
	Consume(id string, qty decimal.Decimal) (*entity.StockLot, error)
	// AddStock ingresa qty al stock físico.
	AddStock(id string, qty decimal.Decimal) (*entity.StockLot, error)
}
