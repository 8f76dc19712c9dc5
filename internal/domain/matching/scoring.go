package matching

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Tolerancia de corte: un lote dentro del +2% de la dimensión solicitada se
// considera ajuste exacto (el sobrante se pierde en el refrentado de todas formas).
const sizeTolerance = 0.02

// Peso del eje de tamaño sobre el puntaje final. Los demás ejes ya traen su
// peso incorporado en la escala (disponibilidad hasta 20, frescura hasta 15,
// costo y calidad hasta 10), así el máximo teórico del total es 105.
const sizeWeight = 0.50

// SizeScore puntaje 0-100 de ajuste dimensional según la forma.
// 0 significa que el lote es demasiado pequeño y queda descartado por completo.
func SizeScore(shapeType string, lot, req Dimensions) float64 {
	switch shapeType {
	case entity.ShapePlate, entity.ShapeSheet:
		return flatSizeScore(lot, req)
	case entity.ShapeBarRound:
		return linearSizeScore(val(lot.Diameter), val(req.Diameter))
	case entity.ShapeBarSquare, entity.ShapeBarHex:
		return linearSizeScore(val(lot.Width), val(req.Width))
	default:
		// Forma desconocida: puntaje neutro, sin premiar ni castigar.
		return 50
	}
}

// flatSizeScore material plano. La menor de las tres dimensiones solicitadas se
// trata como espesor aunque el solicitante la haya nombrado de otro modo: la
// pieza puede reorientarse en los tres ejes. Las dos mayores deben caber en la
// superficie del lote (mayor contra mayor, menor contra menor).
func flatSizeScore(lot, req Dimensions) float64 {
	reqDims := []float64{val(req.Width), val(req.Height), val(req.Thickness)}
	// orden descendente: reqDims[2] pasa a ser el espesor requerido
	sortDesc(reqDims)
	reqLarger, reqSmaller, reqThickness := reqDims[0], reqDims[1], reqDims[2]

	lotThickness := val(lot.Thickness)
	lotLarger, lotSmaller := PlanarDims(lot)

	if lotThickness < reqThickness || lotLarger < reqLarger || lotSmaller < reqSmaller {
		return 0
	}

	reqVolume := reqLarger * reqSmaller * reqThickness
	if reqVolume <= 0 {
		// Solicitud sin las tres dimensiones: no hay volumen comparable.
		return 50
	}

	if withinTolerance(lotLarger, reqLarger) &&
		withinTolerance(lotSmaller, reqSmaller) &&
		withinTolerance(lotThickness, reqThickness) {
		return 100
	}

	lotVolume := lotLarger * lotSmaller * lotThickness
	wastePct := (lotVolume - reqVolume) / reqVolume * 100
	return 100 - math.Min(wastePct, 100)
}

// linearSizeScore barras: una sola dimensión gobierna (diámetro o ancho),
// sin rotación. El desperdicio se mide sobre esa dimensión.
func linearSizeScore(lotDim, reqDim float64) float64 {
	if reqDim <= 0 {
		return 50
	}
	if lotDim < reqDim {
		return 0
	}
	if withinTolerance(lotDim, reqDim) {
		return 100
	}
	wastePct := (lotDim - reqDim) / reqDim * 100
	return 100 - math.Min(wastePct, 100)
}

func withinTolerance(lotDim, reqDim float64) bool {
	return lotDim <= reqDim*(1+sizeTolerance)
}

// AvailabilityScore 0-20 según el colchón de stock disponible sobre lo requerido.
func AvailabilityScore(available, required decimal.Decimal) float64 {
	if available.LessThan(required) {
		return 0
	}
	if !required.IsPositive() {
		return 20
	}
	ratio, _ := available.Div(required).Float64()
	switch {
	case ratio >= 2.0:
		return 20
	case ratio >= 1.5:
		return 15
	case ratio >= 1.2:
		return 10
	default:
		return 5
	}
}

// FreshnessScore 0-15 según los días desde el último uso del lote
// (o desde su ingreso si nunca se usó; lote sin fechas puntúa como recién usado).
func FreshnessScore(lastUsed *time.Time, createdAt time.Time, now time.Time) float64 {
	ref := now
	switch {
	case lastUsed != nil:
		ref = *lastUsed
	case !createdAt.IsZero():
		ref = createdAt
	}
	days := now.Sub(ref).Hours() / 24
	switch {
	case days <= 7:
		return 15
	case days <= 30:
		return 12
	case days <= 90:
		return 8
	case days <= 180:
		return 3
	default:
		return 0
	}
}

// CostScore 0-10 relativo al conjunto de candidatos: el más barato obtiene 10,
// el más caro 0, interpolación lineal entre ambos. Sin costo conocido puntúa 0.
// minCost y maxCost provienen de los costos positivos de todos los candidatos.
func CostScore(cost decimal.Decimal, minCost, maxCost float64) float64 {
	if !cost.IsPositive() || maxCost <= 0 {
		return 0
	}
	if minCost == maxCost {
		// un único costo en el conjunto: todos puntúan igual
		return 10
	}
	c, _ := cost.Float64()
	return (1 - (c-minCost)/(maxCost-minCost)) * 10
}

// QualityScore bono 0-10 por estado de calidad del material.
func QualityScore(qualityStatus string) float64 {
	switch qualityStatus {
	case entity.QualityNew, entity.QualityTested:
		return 10
	case entity.QualityUsed:
		return 5
	case entity.QualityRestricted:
		return 0
	default:
		return 5
	}
}

// FinalScore combina los cinco ejes. El tamaño (0-100) pesa la mitad del total;
// los demás ejes ya traen su peso incorporado en la escala, así el máximo teórico
// es 105 y los umbrales de categoría operan sobre una escala ~100.
func FinalScore(size, availability, freshness, cost, quality float64) float64 {
	return size*sizeWeight + availability + freshness + cost + quality
}

// Category clasifica el puntaje final.
func Category(finalScore float64) string {
	switch {
	case finalScore >= 95:
		return entity.CategoryExactMatch
	case finalScore >= 75:
		return entity.CategoryCloseFit
	case finalScore >= 50:
		return entity.CategoryAcceptable
	default:
		return entity.CategoryLastResort
	}
}

// MatchReason texto para humanos derivado únicamente del puntaje de tamaño.
func MatchReason(sizeScore float64) string {
	switch {
	case sizeScore >= 98:
		return "Exact size match"
	case sizeScore >= 90:
		return "Very close size match (minimal waste)"
	case sizeScore >= 75:
		return "Good size match (some waste expected)"
	case sizeScore >= 50:
		return "Acceptable size (moderate waste)"
	default:
		return "Usable but significant oversizing"
	}
}

// Round2 redondea a 2 decimales para las respuestas.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortDesc(v []float64) {
	for i := 0; i < len(v); i++ {
		for j := i + 1; j < len(v); j++ {
			if v[j] > v[i] {
				v[i], v[j] = v[j], v[i]
			}
		}
	}
}
