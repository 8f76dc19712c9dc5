package stock

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Mutaciones del ledger de stock (servicio de dominio, sin I/O).
//
// Cada operación valida su precondición y recalcula el estado derivado del lote.
// El adaptador de persistencia debe aplicar la operación completa de forma
// atómica (UPDATE condicional de una sola fila); el adaptador en memoria las usa
// bajo su propio candado. Invariantes tras cada operación:
//
//	ReservedStock <= CurrentStock
//	Available() >= 0

// ApplyReserve aparta qty del lote. Falla con ErrInsufficientStock si la
// disponibilidad (actual - reservado) no alcanza.
func ApplyReserve(lot *entity.StockLot, qty decimal.Decimal, now time.Time) error {
	if lot.Available().LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	lot.ReservedStock = lot.ReservedStock.Add(qty)

	available := lot.Available()
	switch {
	case !available.IsPositive():
		lot.Status = entity.StockStatusReserved
	case available.LessThanOrEqual(lot.ReorderLevel):
		lot.Status = entity.StockStatusLowStock
	}
	lot.LastUsedDate = &now
	lot.UpdatedAt = now
	return nil
}

// ApplyRelease devuelve qty de la reserva al disponible, con piso en cero.
// Recupera el estado available si la disponibilidad supera el punto de reorden.
func ApplyRelease(lot *entity.StockLot, qty decimal.Decimal, now time.Time) {
	lot.ReservedStock = lot.ReservedStock.Sub(qty)
	if lot.ReservedStock.IsNegative() {
		lot.ReservedStock = decimal.Zero
	}
	if lot.Available().GreaterThan(lot.ReorderLevel) {
		lot.Status = entity.StockStatusAvailable
	}
	lot.UpdatedAt = now
}

// ApplyConsume descuenta qty del stock físico y de la reserva (piso en cero).
// Falla con ErrInsufficientStock si el stock actual no alcanza.
func ApplyConsume(lot *entity.StockLot, qty decimal.Decimal, now time.Time) error {
	if lot.CurrentStock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	lot.CurrentStock = lot.CurrentStock.Sub(qty)
	lot.ReservedStock = lot.ReservedStock.Sub(qty)
	if lot.ReservedStock.IsNegative() {
		lot.ReservedStock = decimal.Zero
	}

	switch {
	case !lot.CurrentStock.IsPositive():
		lot.Status = entity.StockStatusOutOfStock
	case lot.Available().LessThanOrEqual(lot.ReorderLevel):
		lot.Status = entity.StockStatusLowStock
	}
	lot.LastUsedDate = &now
	lot.UpdatedAt = now
	return nil
}

// ApplyAdd ingresa qty al stock físico.
func ApplyAdd(lot *entity.StockLot, qty decimal.Decimal, now time.Time) {
	lot.CurrentStock = lot.CurrentStock.Add(qty)
	if lot.Available().GreaterThan(lot.ReorderLevel) {
		lot.Status = entity.StockStatusAvailable
	}
	lot.UpdatedAt = now
}
