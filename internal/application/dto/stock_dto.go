package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLotRequest body para ingresar un lote de stock.
type StockLotRequest struct {
	MaterialName   string          `json:"material_name" validate:"required,min=1,max=200"`
	MaterialTypeID *string         `json:"material_type_id" validate:"omitempty,uuid"`
	ShapeType      string          `json:"shape_type" validate:"required,oneof=plate sheet bar_round bar_square bar_hex tube other"`
	Diameter       *float64        `json:"diameter"`
	Width          *float64        `json:"width"`
	Height         *float64        `json:"height"`
	Thickness      *float64        `json:"thickness"`
	Length         *float64        `json:"length"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	QualityStatus  string          `json:"quality_status" validate:"omitempty,oneof=new tested used restricted"`
	Location       string          `json:"location"`
}

// StockLotResponse salida de un lote de stock.
type StockLotResponse struct {
	ID             string          `json:"id"`
	MaterialName   string          `json:"material_name"`
	MaterialTypeID *string         `json:"material_type_id,omitempty"`
	ShapeType      string          `json:"shape_type"`
	Diameter       *float64        `json:"diameter,omitempty"`
	Width          *float64        `json:"width,omitempty"`
	Height         *float64        `json:"height,omitempty"`
	Thickness      *float64        `json:"thickness,omitempty"`
	Length         *float64        `json:"length,omitempty"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	Unit           string          `json:"unit,omitempty"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	QualityStatus  string          `json:"quality_status,omitempty"`
	LastUsedDate   *time.Time      `json:"last_used_date,omitempty"`
	Location       string          `json:"location,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// QuantityRequest body para las mutaciones del ledger (reserve/release/consume/add).
type QuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}
