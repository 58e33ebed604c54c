package stock

import (
	"context"
	"time"

	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// SaleUseCase consume el evento de compra que produce el módulo de ventas:
// la tarjeta pasa IN_STATION -> SOLD_ACTIVE con fechas de compra y expiración
// según la vigencia de su tipo, y el bucket de la estación mueve una unidad
// de cardBelumTerjual a cardAktif.
type SaleUseCase struct {
	txRunner    TxRunner
	catalogRepo repository.CatalogRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, catalogRepo repository.CatalogRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, catalogRepo: catalogRepo}
}

// SaleInput entrada de la venta.
type SaleInput struct {
	SerialNumber string
	ActorID      string
}

// SaleResult resultado de la venta.
type SaleResult struct {
	SerialNumber string
	StationID    string
	PurchaseDate time.Time
	ExpiredDate  time.Time
}

// Execute aplica la venta con guardia optimista sobre el estado de la tarjeta.
func (uc *SaleUseCase) Execute(ctx context.Context, input SaleInput) (*SaleResult, error) {
	if input.SerialNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *SaleResult
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		_ repository.StockBatchRepository,
		_ repository.InboxRepository,
	) error {
		card, err := cardRepo.GetBySerial(ctx, input.SerialNumber)
		if err != nil {
			return err
		}
		if card == nil {
			return domain.ErrNotFound
		}
		if card.Status != entity.CardInStation || card.StationID == nil {
			return domain.ErrInvalidTransition
		}

		cardType, err := uc.catalogRepo.GetType(ctx, card.TypeID)
		if err != nil {
			return err
		}
		if cardType == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		expiry := cardType.ExpiryFrom(now)
		sold, err := cardRepo.MarkSold(ctx, input.SerialNumber, now, expiry)
		if err != nil {
			return err
		}

		if err := summaryRepo.ApplyDelta(ctx, entity.DeltaSale(card.CategoryID, card.TypeID, *card.StationID)); err != nil {
			return err
		}

		result = &SaleResult{
			SerialNumber: sold.SerialNumber,
			StationID:    *card.StationID,
			PurchaseDate: now,
			ExpiredDate:  expiry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
