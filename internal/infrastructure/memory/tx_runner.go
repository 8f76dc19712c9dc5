package memory

import (
	"context"

	"github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ matching.TxRunner = (*TxRunner)(nil)

// TxRunner runner de transacciones para los repos en memoria. No hay rollback
// real: cada operación de los repos ya es atómica bajo su mutex, y el caso de
// uso reserva antes de escribir la decisión, así que un fallo deja el estado
// consistente.
type TxRunner struct {
	suggestionRepo repository.SuggestionRepository
	stockRepo      repository.StockLotRepository
}

func NewTxRunner(suggestionRepo repository.SuggestionRepository, stockRepo repository.StockLotRepository) *TxRunner {
	return &TxRunner{suggestionRepo: suggestionRepo, stockRepo: stockRepo}
}

func (r *TxRunner) Run(_ context.Context, fn func(
	suggestionRepo repository.SuggestionRepository,
	stockRepo repository.StockLotRepository,
) error) error {
	return fn(r.suggestionRepo, r.stockRepo)
}
