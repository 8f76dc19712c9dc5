package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appmatching "github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// stubTicketGenerator captura los argumentos y devuelve bytes fijos.
type stubTicketGenerator struct {
	lastSuggestion *entity.Suggestion
	lastLot        *entity.StockLot
}

func (g *stubTicketGenerator) GeneratePickingTicket(_ context.Context, s *entity.Suggestion, lot *entity.StockLot) ([]byte, error) {
	g.lastSuggestion = s
	g.lastLot = lot
	return []byte("%PDF-stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PickingTicketUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestPickingTicket_SugerenciaAceptada(t *testing.T) {
	f := newSuggestionFixture(t)
	gen := &stubTicketGenerator{}
	ticketUC := appmatching.NewPickingTicketUseCase(f.sugRepo, f.stockRepo, gen)

	saved := savedSuggestion(t, f, "5")
	_, err := f.uc.AcceptSuggestion(context.Background(), saved.ID, "almacenista-1")
	require.NoError(t, err)

	pdf, err := ticketUC.GenerateBySuggestionID(context.Background(), saved.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	require.NotNil(t, gen.lastSuggestion)
	assert.Equal(t, saved.ID, gen.lastSuggestion.ID)
	assert.Equal(t, saved.StockID, gen.lastLot.ID, "el vale se genera con el lote de la sugerencia")
}

// Solo sugerencias aceptadas tienen vale de salida.
func TestPickingTicket_PendienteEsConflicto(t *testing.T) {
	f := newSuggestionFixture(t)
	ticketUC := appmatching.NewPickingTicketUseCase(f.sugRepo, f.stockRepo, &stubTicketGenerator{})

	saved := savedSuggestion(t, f, "5")

	_, err := ticketUC.GenerateBySuggestionID(context.Background(), saved.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPickingTicket_Inexistente(t *testing.T) {
	f := newSuggestionFixture(t)
	ticketUC := appmatching.NewPickingTicketUseCase(f.sugRepo, f.stockRepo, &stubTicketGenerator{})

	_, err := ticketUC.GenerateBySuggestionID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
