package matching

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/catalog"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/matching"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// Defaults del motor de sugerencias.
const (
	defaultMaxSuggestions = 5
	noStockMessage        = "No matching stock available"
)

// SuggestionUseCase motor de sugerencias de material: resuelve el tipo y sus
// equivalencias, busca candidatos dimensionalmente capaces y los puntúa en
// cinco ejes independientes. El camino de puntuación es puro y sin estado
// entre llamadas; solo persiste cuando el solicitante pide guardar auditoría.
type SuggestionUseCase struct {
	catalog        *catalog.UseCase
	stockRepo      repository.StockLotRepository
	suggestionRepo repository.SuggestionRepository
	txRunner       TxRunner
	now            func() time.Time
}

// NewSuggestionUseCase construye el caso de uso.
func NewSuggestionUseCase(
	catalogUC *catalog.UseCase,
	stockRepo repository.StockLotRepository,
	suggestionRepo repository.SuggestionRepository,
	txRunner TxRunner,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		catalog:        catalogUC,
		stockRepo:      stockRepo,
		suggestionRepo: suggestionRepo,
		txRunner:       txRunner,
		now:            time.Now,
	}
}

// scoredCandidate lote con sus puntajes, previo a ordenar y truncar.
type scoredCandidate struct {
	lot          *entity.StockLot
	size         float64
	availability float64
	freshness    float64
	cost         float64
	quality      float64
	final        float64
}

// GetSuggestions devuelve hasta MaxSuggestions lotes rankeados para la
// solicitud. Cero candidatos no es error: responde lista vacía con mensaje.
// Si el nombre de material no resuelve en el catálogo, la búsqueda continúa
// solo por nombre; la respuesta es idéntica ante entradas idénticas mientras
// el stock no cambie.
func (uc *SuggestionUseCase) GetSuggestions(ctx context.Context, req dto.SuggestionRequest) (*dto.SuggestionResponse, error) {
	if strings.TrimSpace(req.MaterialType) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !req.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	maxSuggestions := req.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = defaultMaxSuggestions
	}

	// 1. Nombre → tipo canónico → set de equivalencias (un solo salto).
	var typeIDs []string
	typeID, err := uc.catalog.ResolveIDByNameOrAlias(req.MaterialType)
	if err != nil {
		return nil, err
	}
	if typeID != "" {
		typeIDs, err = uc.catalog.ExpandEquivalentIDs(typeID)
		if err != nil {
			return nil, err
		}
	}

	// 2. Candidatos físicamente capaces, ordenados por size_index.
	reqDims := matching.Dimensions{
		Diameter:  req.Dimensions.Diameter,
		Width:     req.Dimensions.Width,
		Height:    req.Dimensions.Height,
		Thickness: req.Dimensions.Thickness,
		Length:    req.Dimensions.Length,
	}
	candidates, err := uc.stockRepo.FindAvailable(repository.StockFilter{
		TypeIDs:      typeIDs,
		FallbackName: req.MaterialType,
		ShapeType:    req.Dimensions.ShapeType,
		MinDims:      reqDims,
		RequiredQty:  req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SuggestionResponse{
		Suggestions:     []dto.SuggestionDTO{},
		TotalCandidates: len(candidates),
		Requested:       req,
	}
	if len(candidates) == 0 {
		resp.Message = noStockMessage
		return resp, nil
	}

	// 3. Costos positivos del conjunto, para el puntaje relativo de costo.
	minCost, maxCost := costRange(candidates)

	// 4. Puntuar cada candidato; tamaño 0 = demasiado pequeño, se descarta por
	// completo (ni siquiera como último recurso).
	now := uc.now()
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, lot := range candidates {
		lotDims := matching.Dimensions{
			Diameter:  lot.Diameter,
			Width:     lot.Width,
			Height:    lot.Height,
			Thickness: lot.Thickness,
			Length:    lot.Length,
		}
		size := matching.SizeScore(lot.ShapeType, lotDims, reqDims)
		if size <= 0 {
			continue
		}
		availability := matching.AvailabilityScore(lot.Available(), req.Quantity)
		freshness := matching.FreshnessScore(lot.LastUsedDate, lot.CreatedAt, now)
		cost := matching.CostScore(lot.CostPerUnit, minCost, maxCost)
		quality := matching.QualityScore(lot.QualityStatus)
		scored = append(scored, scoredCandidate{
			lot:          lot,
			size:         size,
			availability: availability,
			freshness:    freshness,
			cost:         cost,
			quality:      quality,
			final:        matching.FinalScore(size, availability, freshness, cost, quality),
		})
	}

	// 5. Ranking descendente por puntaje final; el orden previo por size_index
	// hace el desempate estable y la salida determinista.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].final > scored[j].final
	})
	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}

	for i, sc := range scored {
		item := dto.SuggestionDTO{
			StockID:           sc.lot.ID,
			MaterialName:      sc.lot.MaterialName,
			Location:          sc.lot.Location,
			Rank:              i + 1,
			SizeScore:         matching.Round2(sc.size),
			AvailabilityScore: matching.Round2(sc.availability),
			FreshnessScore:    matching.Round2(sc.freshness),
			CostScore:         matching.Round2(sc.cost),
			QualityScore:      matching.Round2(sc.quality),
			FinalScore:        matching.Round2(sc.final),
			Category:          matching.Category(sc.final),
			MatchReason:       matching.MatchReason(sc.size),
		}
		if req.Save {
			saved, err := uc.saveSuggestion(req, item, now)
			if err != nil {
				return nil, err
			}
			item.ID = saved.ID
		}
		resp.Suggestions = append(resp.Suggestions, item)
	}
	return resp, nil
}

// saveSuggestion persiste una sugerencia como registro de auditoría pendiente.
func (uc *SuggestionUseCase) saveSuggestion(req dto.SuggestionRequest, item dto.SuggestionDTO, now time.Time) (*entity.Suggestion, error) {
	s := &entity.Suggestion{
		ID:                uuid.New().String(),
		StockLotID:        item.StockID,
		PartRef:           req.PartRef,
		MaterialTypeName:  req.MaterialType,
		RequiredQuantity:  req.Quantity,
		Rank:              item.Rank,
		SizeScore:         item.SizeScore,
		AvailabilityScore: item.AvailabilityScore,
		FreshnessScore:    item.FreshnessScore,
		CostScore:         item.CostScore,
		QualityScore:      item.QualityScore,
		FinalScore:        item.FinalScore,
		Category:          item.Category,
		MatchReason:       item.MatchReason,
		Status:            entity.SuggestionPending,
		CreatedAt:         now,
	}
	if err := uc.suggestionRepo.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// AcceptSuggestion marca la sugerencia como aceptada y reserva la cantidad
// solicitada sobre el lote, en una sola transacción. Si la reserva pierde la
// carrera contra otra (ErrInsufficientStock), la decisión se revierte.
func (uc *SuggestionUseCase) AcceptSuggestion(ctx context.Context, id, actor string) (*entity.Suggestion, error) {
	var accepted *entity.Suggestion
	err := uc.txRunner.Run(ctx, func(
		suggestionRepo repository.SuggestionRepository,
		stockRepo repository.StockLotRepository,
	) error {
		s, err := suggestionRepo.GetByID(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.Status != entity.SuggestionPending {
			return domain.ErrConflict
		}
		if _, err := stockRepo.Reserve(s.StockLotID, s.RequiredQuantity); err != nil {
			return err
		}
		now := uc.now()
		if err := suggestionRepo.UpdateDecision(id, entity.SuggestionAccepted, actor, now); err != nil {
			return err
		}
		s.Status = entity.SuggestionAccepted
		s.DecidedBy = actor
		s.DecidedAt = &now
		accepted = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// RejectSuggestion marca la sugerencia como rechazada. No toca stock.
func (uc *SuggestionUseCase) RejectSuggestion(ctx context.Context, id, actor string) (*entity.Suggestion, error) {
	s, err := uc.suggestionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Status != entity.SuggestionPending {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	if err := uc.suggestionRepo.UpdateDecision(id, entity.SuggestionRejected, actor, now); err != nil {
		return nil, err
	}
	s.Status = entity.SuggestionRejected
	s.DecidedBy = actor
	s.DecidedAt = &now
	return s, nil
}

// ExpandEquivalentIDs expone el set de equivalencias crudo para callers fuera
// del flujo de puntuación.
func (uc *SuggestionUseCase) ExpandEquivalentIDs(typeID string) ([]string, error) {
	return uc.catalog.ExpandEquivalentIDs(typeID)
}

// costRange extrae mínimo y máximo de los costos positivos del conjunto.
// (0, 0) significa que ningún candidato tiene costo conocido.
func costRange(candidates []*entity.StockLot) (minCost, maxCost float64) {
	for _, lot := range candidates {
		if !lot.CostPerUnit.IsPositive() {
			continue
		}
		c, _ := lot.CostPerUnit.Float64()
		if minCost == 0 || c < minCost {
			minCost = c
		}
		if c > maxCost {
			maxCost = c
		}
	}
	return minCost, maxCost
}
