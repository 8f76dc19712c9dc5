package matching_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests SizeScore — material plano
// ──────────────────────────────────────────────────────────────────────────────

// Placa 100×50×10 para pieza 50×100×10: ajuste exacto con rotación → 100.
func TestSizeScore_PlacaAjusteExactoRotado(t *testing.T) {
	score := matching.SizeScore(entity.ShapePlate, flat(100, 50, 10), flat(50, 100, 10))
	assert.Equal(t, 100.0, score)
}

// Placa demasiado angosta: insuficiencia dimensional descarta con 0, nunca
// puntaje parcial.
func TestSizeScore_PlacaInsuficienteEsCero(t *testing.T) {
	score := matching.SizeScore(entity.ShapePlate, flat(40, 100, 10), flat(50, 100, 10))
	assert.Equal(t, 0.0, score)
}

// Dentro del +2% de tolerancia sigue siendo ajuste exacto.
func TestSizeScore_PlacaDentroDeTolerancia(t *testing.T) {
	score := matching.SizeScore(entity.ShapePlate, flat(102, 51, 10.2), flat(100, 50, 10))
	assert.Equal(t, 100.0, score)
}

// Lote más grande que la tolerancia: el puntaje cae según el desperdicio
// volumétrico. 110×55×10 para 100×50×10 → 21% de desperdicio → 79.
func TestSizeScore_PlacaConDesperdicio(t *testing.T) {
	score := matching.SizeScore(entity.ShapePlate, flat(110, 55, 10), flat(100, 50, 10))
	assert.InDelta(t, 79.0, score, 0.01)
}

// Desperdicio mayor al 100% del volumen solicitado satura en 0.
func TestSizeScore_PlacaDesperdicioSaturado(t *testing.T) {
	score := matching.SizeScore(entity.ShapePlate, flat(200, 100, 20), flat(100, 50, 10))
	assert.Equal(t, 0.0, score)
}

// La menor dimensión solicitada se trata como espesor aunque llegue nombrada
// como ancho: la pieza puede reorientarse.
func TestSizeScore_MenorDimensionComoEspesor(t *testing.T) {
	// pedido "ancho 10, alto 100, espesor 50" equivale a pieza 100×50×10
	score := matching.SizeScore(entity.ShapePlate, flat(100, 50, 10), flat(10, 100, 50))
	assert.Equal(t, 100.0, score)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SizeScore — barras
// ──────────────────────────────────────────────────────────────────────────────

func TestSizeScore_BarraRedondaExacta(t *testing.T) {
	score := matching.SizeScore(entity.ShapeBarRound, dims(20, 0, 0, 0, 0), dims(20, 0, 0, 0, 0))
	assert.Equal(t, 100.0, score)
}

func TestSizeScore_BarraRedondaConDesperdicio(t *testing.T) {
	// Ø25 para Ø20: 25% de sobre-dimensión → 75
	score := matching.SizeScore(entity.ShapeBarRound, dims(25, 0, 0, 0, 0), dims(20, 0, 0, 0, 0))
	assert.InDelta(t, 75.0, score, 0.01)
}

func TestSizeScore_BarraRedondaInsuficiente(t *testing.T) {
	score := matching.SizeScore(entity.ShapeBarRound, dims(18, 0, 0, 0, 0), dims(20, 0, 0, 0, 0))
	assert.Equal(t, 0.0, score)
}

// Monotonicidad: a mayor sobre-dimensión, menor puntaje.
func TestSizeScore_BarraMonotonaEnSobredimension(t *testing.T) {
	req := dims(20, 0, 0, 0, 0)
	s22 := matching.SizeScore(entity.ShapeBarRound, dims(22, 0, 0, 0, 0), req)
	s25 := matching.SizeScore(entity.ShapeBarRound, dims(25, 0, 0, 0, 0), req)
	s30 := matching.SizeScore(entity.ShapeBarRound, dims(30, 0, 0, 0, 0), req)

	assert.Greater(t, s22, s25)
	assert.Greater(t, s25, s30)
}

// Sin dimensión solicitada no hay nada que comparar: puntaje neutro.
func TestSizeScore_SinDimensionSolicitadaNeutro(t *testing.T) {
	score := matching.SizeScore(entity.ShapeBarRound, dims(25, 0, 0, 0, 0), matching.Dimensions{})
	assert.Equal(t, 50.0, score)
}

// Forma desconocida: puntaje neutro.
func TestSizeScore_FormaDesconocidaNeutro(t *testing.T) {
	score := matching.SizeScore(entity.ShapeOther, dims(0, 10, 10, 0, 0), dims(0, 5, 5, 0, 0))
	assert.Equal(t, 50.0, score)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AvailabilityScore
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailabilityScore_Escalones(t *testing.T) {
	cases := []struct {
		name      string
		available string
		required  string
		want      float64
	}{
		{"doble o más", "20", "10", 20},
		{"colchón 1.5x", "15", "10", 15},
		{"colchón 1.2x", "12", "10", 10},
		{"apenas alcanza", "11", "10", 5},
		{"exacto", "10", "10", 5},
		{"insuficiente", "9", "10", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matching.AvailabilityScore(
				decimal.RequireFromString(tc.available),
				decimal.RequireFromString(tc.required),
			)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FreshnessScore
// ──────────────────────────────────────────────────────────────────────────────

func TestFreshnessScore_Escalones(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}

	cases := []struct {
		name     string
		lastUsed *time.Time
		want     float64
	}{
		{"usado esta semana", daysAgo(3), 15},
		{"usado este mes", daysAgo(20), 12},
		{"usado este trimestre", daysAgo(60), 8},
		{"usado este semestre", daysAgo(120), 3},
		{"sin uso hace más de 180 días", daysAgo(200), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matching.FreshnessScore(tc.lastUsed, time.Time{}, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Lote nunca usado: cuenta desde su ingreso.
func TestFreshnessScore_SinUsoCuentaDesdeIngreso(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -60)

	got := matching.FreshnessScore(nil, created, now)
	assert.Equal(t, 8.0, got)
}

// Lote sin fechas: puntúa como recién usado, no se castiga la falta de dato.
func TestFreshnessScore_SinFechasPuntuaMaximo(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	got := matching.FreshnessScore(nil, time.Time{}, now)
	assert.Equal(t, 15.0, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CostScore
// ──────────────────────────────────────────────────────────────────────────────

func TestCostScore_InterpolacionLineal(t *testing.T) {
	assert.Equal(t, 10.0, matching.CostScore(decimal.NewFromInt(100), 100, 200), "el más barato puntúa 10")
	assert.Equal(t, 0.0, matching.CostScore(decimal.NewFromInt(200), 100, 200), "el más caro puntúa 0")
	assert.InDelta(t, 5.0, matching.CostScore(decimal.NewFromInt(150), 100, 200), 0.01)
}

func TestCostScore_SinCostoConocidoEsCero(t *testing.T) {
	assert.Equal(t, 0.0, matching.CostScore(decimal.Zero, 100, 200))
	assert.Equal(t, 0.0, matching.CostScore(decimal.NewFromInt(-5), 100, 200))
}

func TestCostScore_UnSoloCostoEnElConjunto(t *testing.T) {
	assert.Equal(t, 10.0, matching.CostScore(decimal.NewFromInt(150), 150, 150))
}

func TestCostScore_ConjuntoSinCostos(t *testing.T) {
	assert.Equal(t, 0.0, matching.CostScore(decimal.NewFromInt(150), 0, 0))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests QualityScore, FinalScore y Category
// ──────────────────────────────────────────────────────────────────────────────

func TestQualityScore_PorEstado(t *testing.T) {
	assert.Equal(t, 10.0, matching.QualityScore(entity.QualityNew))
	assert.Equal(t, 10.0, matching.QualityScore(entity.QualityTested))
	assert.Equal(t, 5.0, matching.QualityScore(entity.QualityUsed))
	assert.Equal(t, 0.0, matching.QualityScore(entity.QualityRestricted))
	assert.Equal(t, 5.0, matching.QualityScore(""), "estado desconocido puntúa neutro")
}

// El tamaño pesa la mitad; los demás ejes suman directo. Máximo teórico 105.
func TestFinalScore_Composicion(t *testing.T) {
	assert.Equal(t, 105.0, matching.FinalScore(100, 20, 15, 10, 10))
	assert.Equal(t, 50.0, matching.FinalScore(100, 0, 0, 0, 0))
	assert.Equal(t, 0.0, matching.FinalScore(0, 0, 0, 0, 0))
}

func TestCategory_Umbrales(t *testing.T) {
	assert.Equal(t, entity.CategoryExactMatch, matching.Category(95))
	assert.Equal(t, entity.CategoryCloseFit, matching.Category(80))
	assert.Equal(t, entity.CategoryAcceptable, matching.Category(60))
	assert.Equal(t, entity.CategoryLastResort, matching.Category(40))
}

func TestMatchReason_DerivaSoloDelTamano(t *testing.T) {
	assert.Equal(t, "Exact size match", matching.MatchReason(100))
	assert.Equal(t, "Very close size match (minimal waste)", matching.MatchReason(92))
	assert.Equal(t, "Good size match (some waste expected)", matching.MatchReason(80))
	assert.Equal(t, "Acceptable size (moderate waste)", matching.MatchReason(60))
	assert.Equal(t, "Usable but significant oversizing", matching.MatchReason(30))
}
