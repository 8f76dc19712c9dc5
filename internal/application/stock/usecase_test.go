package stock_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
	"github.com/tallerpro/taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newStockUCs(t *testing.T) (*stock.UseCase, *stock.LedgerUseCase) {
	t.Helper()
	repo := memory.NewStockLotRepository()
	return stock.NewUseCase(repo), stock.NewLedgerUseCase(repo)
}

func plateRequest(current, reorder string) dto.StockLotRequest {
	return dto.StockLotRequest{
		MaterialName: "Placa aluminio 6061",
		ShapeType:    entity.ShapePlate,
		Width:        matching.Float64Ptr(300),
		Height:       matching.Float64Ptr(200),
		Thickness:    matching.Float64Ptr(12),
		CurrentStock: decimal.RequireFromString(current),
		ReorderLevel: decimal.RequireFromString(reorder),
		Unit:         "pza",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateLot
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLot_EstadoInicialDerivado(t *testing.T) {
	uc, _ := newStockUCs(t)

	cases := []struct {
		name    string
		current string
		reorder string
		want    string
	}{
		{"con stock holgado", "10", "2", entity.StockStatusAvailable},
		{"en el punto de reorden", "2", "2", entity.StockStatusLowStock},
		{"sin stock", "0", "2", entity.StockStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lot, err := uc.CreateLot(plateRequest(tc.current, tc.reorder))
			require.NoError(t, err)
			assert.Equal(t, tc.want, lot.Status)
		})
	}
}

func TestCreateLot_CalidadPorDefectoNueva(t *testing.T) {
	uc, _ := newStockUCs(t)

	lot, err := uc.CreateLot(plateRequest("10", "2"))
	require.NoError(t, err)
	assert.Equal(t, entity.QualityNew, lot.QualityStatus)
}

func TestCreateLot_Validaciones(t *testing.T) {
	uc, _ := newStockUCs(t)

	in := plateRequest("10", "2")
	in.MaterialName = ""
	_, err := uc.CreateLot(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = plateRequest("-1", "2")
	_, err = uc.CreateLot(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LedgerUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_CantidadNoPositivaRechazada(t *testing.T) {
	uc, ledger := newStockUCs(t)
	lot, err := uc.CreateLot(plateRequest("10", "2"))
	require.NoError(t, err)

	_, err = ledger.Reserve(lot.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.Consume(lot.ID, decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestLedger_LoteInexistente(t *testing.T) {
	_, ledger := newStockUCs(t)

	_, err := ledger.Reserve("no-existe", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_ReservaYLiberacion(t *testing.T) {
	uc, ledger := newStockUCs(t)
	lot, err := uc.CreateLot(plateRequest("10", "2"))
	require.NoError(t, err)

	after, err := ledger.Reserve(lot.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, after.AvailableStock.Equal(decimal.NewFromInt(6)))

	after, err = ledger.ReleaseReserve(lot.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, after.AvailableStock.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.StockStatusAvailable, after.Status)
}

// Dos reservas concurrentes sobre el último disponible: exactamente una gana.
// La verificación y la mutación son una sola operación atómica en el repo.
func TestLedger_ReservasConcurrentesNoSobrevenden(t *testing.T) {
	uc, ledger := newStockUCs(t)
	lot, err := uc.CreateLot(plateRequest("10", "0"))
	require.NoError(t, err)

	// deja solo 4 disponibles
	_, err = ledger.Reserve(lot.ID, decimal.NewFromInt(6))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Reserve(lot.ID, decimal.NewFromInt(4))
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, e := range errs {
		switch {
		case e == nil:
			ok++
		case assert.ErrorIs(t, e, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "exactamente una reserva debe ganar")
	assert.Equal(t, 1, insufficient, "la otra debe perder con stock insuficiente")

	final, err := uc.GetByID(lot.ID)
	require.NoError(t, err)
	assert.True(t, final.ReservedStock.Equal(decimal.NewFromInt(10)),
		"la reserva nunca supera el stock físico")
}

func TestLedger_ConsumoDescuentaFisico(t *testing.T) {
	uc, ledger := newStockUCs(t)
	lot, err := uc.CreateLot(plateRequest("10", "2"))
	require.NoError(t, err)

	_, err = ledger.Reserve(lot.ID, decimal.NewFromInt(3))
	require.NoError(t, err)

	after, err := ledger.Consume(lot.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, after.CurrentStock.Equal(decimal.NewFromInt(7)))
	assert.True(t, after.ReservedStock.IsZero())
}

func TestLedger_AddRecuperaEstado(t *testing.T) {
	uc, ledger := newStockUCs(t)
	lot, err := uc.CreateLot(plateRequest("1", "2"))
	require.NoError(t, err)
	require.Equal(t, entity.StockStatusLowStock, lot.Status)

	after, err := ledger.AddStock(lot.ID, decimal.NewFromInt(9))
	require.NoError(t, err)
	assert.True(t, after.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.StockStatusAvailable, after.Status)
}
