package dto

import (
	"github.com/shopspring/decimal"
)

// DimensionsDTO dimensiones solicitadas en mm. nil = no especificada.
type DimensionsDTO struct {
	ShapeType string   `json:"shape_type,omitempty" validate:"omitempty,oneof=plate sheet bar_round bar_square bar_hex tube other"`
	Diameter  *float64 `json:"diameter,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Length    *float64 `json:"length,omitempty"`
}

// SuggestionRequest body para POST /api/suggestions.
type SuggestionRequest struct {
	MaterialType   string          `json:"material_type" validate:"required,min=1"`
	Dimensions     DimensionsDTO   `json:"dimensions"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	MaxSuggestions int             `json:"max_suggestions" validate:"omitempty,min=1,max=20"`
	PartRef        string          `json:"part_ref,omitempty"`
	// Save persiste las sugerencias devueltas como registro de auditoría
	// (habilita accept/reject posteriores por ID).
	Save bool `json:"save,omitempty"`
}

// SuggestionDTO una recomendación puntuada de lote de stock.
type SuggestionDTO struct {
	ID                string  `json:"id,omitempty"` // presente solo si fue persistida
	StockID           string  `json:"stock_id"`
	MaterialName      string  `json:"material_name"`
	Location          string  `json:"location,omitempty"`
	Rank              int     `json:"rank"`
	SizeScore         float64 `json:"size_score"`
	AvailabilityScore float64 `json:"availability_score"`
	FreshnessScore    float64 `json:"freshness_score"`
	CostScore         float64 `json:"cost_score"`
	QualityScore      float64 `json:"quality_score"`
	FinalScore        float64 `json:"final_score"`
	Category          string  `json:"category"`
	MatchReason       string  `json:"match_reason"`
}

// SuggestionResponse resultado del motor de sugerencias. Cero candidatos no es
// un error: Suggestions vacío + Message explican el resultado de negocio.
type SuggestionResponse struct {
	Suggestions     []SuggestionDTO   `json:"suggestions"`
	TotalCandidates int               `json:"total_candidates"`
	Message         string            `json:"message,omitempty"`
	Requested       SuggestionRequest `json:"requested"`
}
