package repository

import (
	"time"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// SuggestionRepository puerto de persistencia del registro de auditoría de
// sugerencias. El camino caliente de puntuación no escribe aquí; solo se
// persiste cuando el usuario guarda o decide sobre una recomendación.
type SuggestionRepository interface {
	Save(s *entity.Suggestion) error
	GetByID(id string) (*entity.Suggestion, error)
	// UpdateDecision marca accepted/rejected con actor y fecha.
	// ErrNotFound si la sugerencia no existe.
	UpdateDecision(id, status, actor string, decidedAt time.Time) error
}
