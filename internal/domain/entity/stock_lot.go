package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de sección del material en stock.
const (
	ShapePlate     = "plate"
	ShapeSheet     = "sheet"
	ShapeBarRound  = "bar_round"
	ShapeBarSquare = "bar_square"
	ShapeBarHex    = "bar_hex"
	ShapeTube      = "tube"
	ShapeOther     = "other"
)

// Estados derivados del lote. No son autoritativos por sí mismos: se recalculan
// en cada mutación del ledger a partir de cantidades y punto de reorden.
const (
	StockStatusAvailable  = "available"
	StockStatusLowStock   = "low_stock"
	StockStatusReserved   = "reserved"
	StockStatusOutOfStock = "out_of_stock"
)

// Estado de calidad del material.
const (
	QualityNew        = "new"
	QualityTested     = "tested"
	QualityUsed       = "used"
	QualityRestricted = "restricted"
)

// StockLot lote físico de material en bodega. Las dimensiones son opcionales según
// la forma (una barra redonda solo tiene diámetro y largo); nil significa no
// especificada, nunca cero implícito.
type StockLot struct {
	ID             string
	MaterialName   string // texto libre, clave de respaldo cuando no hay tipo asignado
	MaterialTypeID *string
	ShapeType      string
	Diameter       *float64 // mm
	Width          *float64
	Height         *float64
	Thickness      *float64
	Length         *float64
	CurrentStock   decimal.Decimal
	ReservedStock  decimal.Decimal
	ReorderLevel   decimal.Decimal
	Unit           string
	CostPerUnit    decimal.Decimal // <= 0 significa sin costo conocido
	QualityStatus  string
	LastUsedDate   *time.Time
	Location       string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Available cantidad disponible (actual - reservada).
// Invariante: ReservedStock <= CurrentStock, por lo que nunca es negativa tras una mutación válida.
func (s *StockLot) Available() decimal.Decimal {
	return s.CurrentStock.Sub(s.ReservedStock)
}
