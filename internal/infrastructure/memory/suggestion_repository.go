package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

// SuggestionRepo registro de sugerencias en memoria.
type SuggestionRepo struct {
	mu          sync.Mutex
	suggestions map[string]*entity.Suggestion
}

func NewSuggestionRepository() *SuggestionRepo {
	return &SuggestionRepo{suggestions: make(map[string]*entity.Suggestion)}
}

func (r *SuggestionRepo) Save(s *entity.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	cp := *s
	r.suggestions[s.ID] = &cp
	return nil
}

func (r *SuggestionRepo) GetByID(id string) (*entity.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suggestions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SuggestionRepo) UpdateDecision(id, status, actor string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suggestions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	s.DecidedBy = actor
	s.DecidedAt = &decidedAt
	return nil
}
