package stock

import (
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// LedgerUseCase mutaciones de cantidades sobre un lote. Valida la cantidad
// antes de tocar almacenamiento; la atomicidad chequeo+mutación es contrato
// del repositorio (UPDATE condicional de una sola fila). Un perdedor de la
// carrera recibe ErrInsufficientStock y no se reintenta aquí: la política de
// reintento es del caller.
type LedgerUseCase struct {
	repo repository.StockLotRepository
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(repo repository.StockLotRepository) *LedgerUseCase {
	return &LedgerUseCase{repo: repo}
}

// Reserve aparta cantidad de un lote.
func (uc *LedgerUseCase) Reserve(id string, qty decimal.Decimal) (*dto.StockLotResponse, error) {
	return uc.mutate(id, qty, uc.repo.Reserve)
}

// ReleaseReserve devuelve cantidad reservada al disponible.
func (uc *LedgerUseCase) ReleaseReserve(id string, qty decimal.Decimal) (*dto.StockLotResponse, error) {
	return uc.mutate(id, qty, uc.repo.ReleaseReserve)
}

// Consume descuenta cantidad del stock físico.
func (uc *LedgerUseCase) Consume(id string, qty decimal.Decimal) (*dto.StockLotResponse, error) {
	return uc.mutate(id, qty, uc.repo.Consume)
}

// AddStock ingresa cantidad al stock físico.
func (uc *LedgerUseCase) AddStock(id string, qty decimal.Decimal) (*dto.StockLotResponse, error) {
	return uc.mutate(id, qty, uc.repo.AddStock)
}

func (uc *LedgerUseCase) mutate(
	id string,
	qty decimal.Decimal,
	op func(string, decimal.Decimal) (*entity.StockLot, error),
) (*dto.StockLotResponse, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	lot, err := op(id, qty)
	if err != nil {
		return nil, err
	}
	return ToResponse(lot), nil
}
