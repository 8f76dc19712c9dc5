package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

const suggestionColumns = `id, stock_lot_id, part_ref, material_type_name, required_quantity,
		rank, size_score, availability_score, freshness_score, cost_score, quality_score,
		final_score, category, match_reason, status, decided_by, decided_at, created_at`

// SuggestionRepo persistencia de sugerencias sobre PostgreSQL.
type SuggestionRepo struct {
	q Querier
}

func NewSuggestionRepository(q Querier) *SuggestionRepo {
	return &SuggestionRepo{q: q}
}

// Save inserta la sugerencia como registro de auditoría.
func (r *SuggestionRepo) Save(s *entity.Suggestion) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_suggestions (id, stock_lot_id, part_ref, material_type_name,
			required_quantity, rank, size_score, availability_score, freshness_score,
			cost_score, quality_score, final_score, category, match_reason, status,
			decided_by, decided_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.StockLotID, s.PartRef, s.MaterialTypeName, s.RequiredQuantity,
		s.Rank, s.SizeScore, s.AvailabilityScore, s.FreshnessScore, s.CostScore,
		s.QualityScore, s.FinalScore, s.Category, s.MatchReason, s.Status,
		s.DecidedBy, s.DecidedAt, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// GetByID obtiene una sugerencia por ID. Devuelve nil sin error si no existe.
func (r *SuggestionRepo) GetByID(id string) (*entity.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM material_suggestions WHERE id = $1`
	var s entity.Suggestion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.StockLotID, &s.PartRef, &s.MaterialTypeName, &s.RequiredQuantity,
		&s.Rank, &s.SizeScore, &s.AvailabilityScore, &s.FreshnessScore, &s.CostScore,
		&s.QualityScore, &s.FinalScore, &s.Category, &s.MatchReason, &s.Status,
		&s.DecidedBy, &s.DecidedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	return &s, nil
}

// UpdateDecision registra la decisión (accepted/rejected) con actor y fecha.
func (r *SuggestionRepo) UpdateDecision(id, status, actor string, decidedAt time.Time) error {
	query := `
		UPDATE material_suggestions
		SET status = $2, decided_by = $3, decided_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, actor, decidedAt)
	if err != nil {
		return fmt.Errorf("update suggestion decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
