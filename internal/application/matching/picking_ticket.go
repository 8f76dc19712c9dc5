package matching

import (
	"context"

	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// PickingTicketUseCase genera el vale de salida en PDF para que bodega retire
// el material de una sugerencia ya aceptada.
type PickingTicketUseCase struct {
	suggestionRepo repository.SuggestionRepository
	stockRepo      repository.StockLotRepository
	generator      PickingTicketGenerator
}

// NewPickingTicketUseCase construye el caso de uso.
func NewPickingTicketUseCase(
	suggestionRepo repository.SuggestionRepository,
	stockRepo repository.StockLotRepository,
	generator PickingTicketGenerator,
) *PickingTicketUseCase {
	return &PickingTicketUseCase{
		suggestionRepo: suggestionRepo,
		stockRepo:      stockRepo,
		generator:      generator,
	}
}

// GenerateBySuggestionID genera el PDF del vale. Solo sugerencias aceptadas
// tienen vale; pendientes o rechazadas devuelven ErrConflict.
func (uc *PickingTicketUseCase) GenerateBySuggestionID(ctx context.Context, suggestionID string) ([]byte, error) {
	s, err := uc.suggestionRepo.GetByID(suggestionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Status != entity.SuggestionAccepted {
		return nil, domain.ErrConflict
	}
	lot, err := uc.stockRepo.GetByID(s.StockLotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GeneratePickingTicket(ctx, s, lot)
}
