package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// UseCase mantenimiento de lotes de stock: ingreso y consulta.
// Las mutaciones de cantidades van por LedgerUseCase, nunca por aquí.
type UseCase struct {
	repo repository.StockLotRepository
}

// NewUseCase construye el caso de uso de lotes.
func NewUseCase(repo repository.StockLotRepository) *UseCase {
	return &UseCase{repo: repo}
}

// CreateLot ingresa un lote nuevo. El estado inicial se deriva de las cantidades.
func (uc *UseCase) CreateLot(in dto.StockLotRequest) (*dto.StockLotResponse, error) {
	if strings.TrimSpace(in.MaterialName) == "" || in.ShapeType == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	quality := in.QualityStatus
	if quality == "" {
		quality = entity.QualityNew
	}
	lot := &entity.StockLot{
		ID:             uuid.New().String(),
		MaterialName:   in.MaterialName,
		MaterialTypeID: in.MaterialTypeID,
		ShapeType:      in.ShapeType,
		Diameter:       in.Diameter,
		Width:          in.Width,
		Height:         in.Height,
		Thickness:      in.Thickness,
		Length:         in.Length,
		CurrentStock:   in.CurrentStock,
		ReorderLevel:   in.ReorderLevel,
		Unit:           in.Unit,
		CostPerUnit:    in.CostPerUnit,
		QualityStatus:  quality,
		Location:       in.Location,
		Status:         initialStatus(in.CurrentStock, in.ReorderLevel),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(lot); err != nil {
		return nil, err
	}
	return ToResponse(lot), nil
}

// GetByID obtiene un lote por ID.
func (uc *UseCase) GetByID(id string) (*dto.StockLotResponse, error) {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(lot), nil
}

// List lista lotes con paginación.
func (uc *UseCase) List(page dto.PageRequest) ([]dto.StockLotResponse, error) {
	page.DefaultPage()
	lots, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, *ToResponse(lot))
	}
	return out, nil
}

func initialStatus(current, reorder decimal.Decimal) string {
	switch {
	case !current.IsPositive():
		return entity.StockStatusOutOfStock
	case current.LessThanOrEqual(reorder):
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusAvailable
	}
}

// ToResponse mapea la entidad a su DTO de salida.
func ToResponse(lot *entity.StockLot) *dto.StockLotResponse {
	return &dto.StockLotResponse{
		ID:             lot.ID,
		MaterialName:   lot.MaterialName,
		MaterialTypeID: lot.MaterialTypeID,
		ShapeType:      lot.ShapeType,
		Diameter:       lot.Diameter,
		Width:          lot.Width,
		Height:         lot.Height,
		Thickness:      lot.Thickness,
		Length:         lot.Length,
		CurrentStock:   lot.CurrentStock,
		ReservedStock:  lot.ReservedStock,
		AvailableStock: lot.Available(),
		ReorderLevel:   lot.ReorderLevel,
		Unit:           lot.Unit,
		CostPerUnit:    lot.CostPerUnit,
		QualityStatus:  lot.QualityStatus,
		LastUsedDate:   lot.LastUsedDate,
		Location:       lot.Location,
		Status:         lot.Status,
		CreatedAt:      lot.CreatedAt,
	}
}
