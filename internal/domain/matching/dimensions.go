package matching

import "github.com/tallerpro/taller-api/internal/domain/entity"

// Dimensions dimensiones solicitadas o de un lote, en mm.
// nil significa no especificada; nunca se trata como cero implícito.
type Dimensions struct {
	Diameter  *float64
	Width     *float64
	Height    *float64
	Thickness *float64
	Length    *float64
}

// val devuelve el valor o 0 si no está especificado.
func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Float64Ptr helper para construir dimensiones literales.
func Float64Ptr(v float64) *float64 { return &v }

// IsFlat indica si la forma es material plano (placa o lámina), donde la pieza
// puede rotarse en el plano y ancho/alto son intercambiables.
func IsFlat(shapeType string) bool {
	return shapeType == entity.ShapePlate || shapeType == entity.ShapeSheet
}

// Fits decide si un lote puede satisfacer dimensionalmente la solicitud.
// Material plano usa lógica de rotación en el plano; barras, tubos y otras
// formas comparan cada dimensión por su eje, sin rotación.
func Fits(shapeType string, lot, req Dimensions) bool {
	if IsFlat(shapeType) {
		return fitsFlat(lot, req)
	}
	return fitsAxisAligned(lot, req)
}

// fitsFlat material plano: el espesor del lote debe alcanzar el solicitado
// (lote sin espesor declarado califica), y la superficie admite rotación:
// la mayor dimensión planar del lote debe cubrir la mayor solicitada y la menor
// no nula debe cubrir la menor solicitada. Si solo se pide una dimensión planar,
// basta con que cualquier dimensión planar la cubra.
func fitsFlat(lot, req Dimensions) bool {
	if req.Thickness != nil && lot.Thickness != nil && *lot.Thickness < *req.Thickness {
		return false
	}

	lotLarger, lotSmaller := PlanarDims(lot)

	switch {
	case req.Width != nil && req.Height != nil:
		reqLarger := max(*req.Width, *req.Height)
		reqSmaller := min(*req.Width, *req.Height)
		return lotLarger >= reqLarger && lotSmaller >= reqSmaller
	case req.Width != nil:
		return lotLarger >= *req.Width
	case req.Height != nil:
		return lotLarger >= *req.Height
	}
	return true
}

// fitsAxisAligned cada dimensión solicitada debe satisfacerse en su propio eje;
// una dimensión no declarada en el lote no descarta (igual que el SQL con IS NULL).
func fitsAxisAligned(lot, req Dimensions) bool {
	pairs := [][2]*float64{
		{lot.Width, req.Width},
		{lot.Height, req.Height},
		{lot.Thickness, req.Thickness},
		{lot.Diameter, req.Diameter},
	}
	for _, p := range pairs {
		lotDim, reqDim := p[0], p[1]
		if reqDim == nil {
			continue
		}
		if lotDim != nil && *lotDim < *reqDim {
			return false
		}
	}
	return true
}

// PlanarDims devuelve la mayor dimensión planar del lote (ancho/alto/largo,
// faltantes cuentan 0) y la menor dimensión planar no nula (0 si no hay ninguna).
func PlanarDims(lot Dimensions) (larger, smaller float64) {
	dims := []float64{val(lot.Width), val(lot.Height), val(lot.Length)}
	for _, d := range dims {
		if d > larger {
			larger = d
		}
		if d > 0 && (smaller == 0 || d < smaller) {
			smaller = d
		}
	}
	return larger, smaller
}

// SizeIndex escalar precalculado que aproxima el tamaño físico del lote según su
// forma. Se usa solo para el orden por defecto de candidatos, nunca para puntuar.
func SizeIndex(shapeType string, d Dimensions) float64 {
	switch shapeType {
	case entity.ShapeBarRound:
		return val(d.Diameter)
	case entity.ShapeBarSquare:
		return val(d.Width) * val(d.Width)
	case entity.ShapeBarHex:
		return val(d.Width)
	case entity.ShapePlate, entity.ShapeSheet:
		return val(d.Width) * val(d.Height) * val(d.Thickness)
	case entity.ShapeTube:
		return val(d.Diameter) * val(d.Thickness)
	default:
		return val(d.Width) * val(d.Height)
	}
}
