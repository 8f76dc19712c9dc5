package matching

import (
	"context"

	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Aceptar una sugerencia marca la decisión y reserva el lote en una sola
// transacción: si la reserva pierde la carrera, la decisión se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		suggestionRepo repository.SuggestionRepository,
		stockRepo repository.StockLotRepository,
	) error) error
}

// PickingTicketGenerator genera el vale de salida (picking ticket) en PDF para
// una sugerencia aceptada.
type PickingTicketGenerator interface {
	GeneratePickingTicket(ctx context.Context, s *entity.Suggestion, lot *entity.StockLot) ([]byte, error)
}
