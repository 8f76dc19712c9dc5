package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de decisión de una sugerencia persistida.
const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

// Categorías de ajuste según el puntaje final.
const (
	CategoryExactMatch = "exact_match"
	CategoryCloseFit   = "close_fit"
	CategoryAcceptable = "acceptable"
	CategoryLastResort = "last_resort"
)

// Suggestion recomendación de un lote de stock para una solicitud de material,
// con el desglose de puntajes. Se persiste solo como registro de auditoría cuando
// el usuario la guarda o decide sobre ella.
type Suggestion struct {
	ID                string
	StockLotID        string
	PartRef           string // referencia opcional a la pieza u orden que la originó
	MaterialTypeName  string
	RequiredQuantity  decimal.Decimal // snapshot de la cantidad solicitada
	Rank              int
	SizeScore         float64
	AvailabilityScore float64
	FreshnessScore    float64
	CostScore         float64
	QualityScore      float64
	FinalScore        float64
	Category          string
	MatchReason       string
	Status            string // pending, accepted, rejected
	DecidedBy         string
	DecidedAt         *time.Time
	CreatedAt         time.Time
}
