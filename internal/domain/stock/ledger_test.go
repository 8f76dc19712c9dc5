package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newLot(current, reserved, reorder string) *entity.StockLot {
	return &entity.StockLot{
		ID:            "lote-1",
		MaterialName:  "Barra acero 1045",
		CurrentStock:  decimal.RequireFromString(current),
		ReservedStock: decimal.RequireFromString(reserved),
		ReorderLevel:  decimal.RequireFromString(reorder),
		Status:        entity.StockStatusAvailable,
	}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyReserve
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyReserve_DescuentaDelDisponible(t *testing.T) {
	lot := newLot("10", "0", "2")

	require.NoError(t, stock.ApplyReserve(lot, qty("3"), testNow))

	assert.True(t, lot.CurrentStock.Equal(qty("10")), "reservar no toca el stock físico")
	assert.True(t, lot.ReservedStock.Equal(qty("3")))
	assert.True(t, lot.Available().Equal(qty("7")))
	assert.Equal(t, entity.StockStatusAvailable, lot.Status)
	require.NotNil(t, lot.LastUsedDate)
	assert.Equal(t, testNow, *lot.LastUsedDate)
}

func TestApplyReserve_InsuficienteNoMuta(t *testing.T) {
	lot := newLot("10", "8", "0")

	err := stock.ApplyReserve(lot, qty("3"), testNow)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, lot.ReservedStock.Equal(qty("8")), "un fallo no debe dejar mutación parcial")
}

func TestApplyReserve_AgotaDisponibleCambiaEstado(t *testing.T) {
	lot := newLot("10", "0", "2")

	require.NoError(t, stock.ApplyReserve(lot, qty("10"), testNow))
	assert.Equal(t, entity.StockStatusReserved, lot.Status)
}

func TestApplyReserve_BajoPuntoDeReorden(t *testing.T) {
	lot := newLot("10", "0", "3")

	require.NoError(t, stock.ApplyReserve(lot, qty("8"), testNow))
	assert.Equal(t, entity.StockStatusLowStock, lot.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyRelease
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyRelease_RecuperaDisponibilidad(t *testing.T) {
	lot := newLot("10", "8", "2")
	lot.Status = entity.StockStatusLowStock

	stock.ApplyRelease(lot, qty("8"), testNow)

	assert.True(t, lot.ReservedStock.IsZero())
	assert.Equal(t, entity.StockStatusAvailable, lot.Status)
}

func TestApplyRelease_PisoEnCero(t *testing.T) {
	lot := newLot("10", "2", "0")

	stock.ApplyRelease(lot, qty("5"), testNow)

	assert.True(t, lot.ReservedStock.IsZero(), "liberar más de lo reservado queda en cero, nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyConsume
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyConsume_DescuentaFisicoYReserva(t *testing.T) {
	lot := newLot("10", "5", "0")

	require.NoError(t, stock.ApplyConsume(lot, qty("5"), testNow))

	assert.True(t, lot.CurrentStock.Equal(qty("5")))
	assert.True(t, lot.ReservedStock.IsZero())
}

func TestApplyConsume_AgotaElLote(t *testing.T) {
	lot := newLot("5", "5", "0")

	require.NoError(t, stock.ApplyConsume(lot, qty("5"), testNow))
	assert.Equal(t, entity.StockStatusOutOfStock, lot.Status)
}

func TestApplyConsume_MasDelFisicoFalla(t *testing.T) {
	lot := newLot("5", "0", "0")

	err := stock.ApplyConsume(lot, qty("6"), testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, lot.CurrentStock.Equal(qty("5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyAdd y ciclo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAdd_RecuperaEstado(t *testing.T) {
	lot := newLot("0", "0", "2")
	lot.Status = entity.StockStatusOutOfStock

	stock.ApplyAdd(lot, qty("10"), testNow)

	assert.True(t, lot.CurrentStock.Equal(qty("10")))
	assert.Equal(t, entity.StockStatusAvailable, lot.Status)
}

// Reservar → consumir → reponer deja el lote consistente en cada paso.
func TestLedger_CicloCompleto(t *testing.T) {
	lot := newLot("20", "0", "5")

	require.NoError(t, stock.ApplyReserve(lot, qty("8"), testNow))
	assert.True(t, lot.Available().Equal(qty("12")))

	require.NoError(t, stock.ApplyConsume(lot, qty("8"), testNow))
	assert.True(t, lot.CurrentStock.Equal(qty("12")))
	assert.True(t, lot.ReservedStock.IsZero())

	stock.ApplyAdd(lot, qty("10"), testNow)
	assert.True(t, lot.CurrentStock.Equal(qty("22")))
	assert.Equal(t, entity.StockStatusAvailable, lot.Status)

	// invariante: la reserva nunca supera el físico
	assert.True(t, lot.ReservedStock.LessThanOrEqual(lot.CurrentStock))
}
