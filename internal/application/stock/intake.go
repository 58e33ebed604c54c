package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// IntakeUseCase registra el ingreso de tarjetas nuevas del fabricante a la
// bodega central: crea las tarjetas IN_OFFICE y suma cardOffice en la fila
// de bodega del agregado, todo en una transacción.
type IntakeUseCase struct {
	txRunner    TxRunner
	catalogRepo repository.CatalogRepository
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(txRunner TxRunner, catalogRepo repository.CatalogRepository) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner, catalogRepo: catalogRepo}
}

// IntakeInput entrada del ingreso: seriales físicos del fabricante.
type IntakeInput struct {
	CategoryID string
	TypeID     string
	ProductID  string
	Serials    []string
	ActorID    string
}

// Execute valida catálogo y seriales, crea las tarjetas y actualiza el agregado.
func (uc *IntakeUseCase) Execute(ctx context.Context, input IntakeInput) error {
	if input.CategoryID == "" || input.TypeID == "" || len(input.Serials) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(input.Serials))
	for _, s := range input.Serials {
		if s == "" {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[s]; dup {
			return domain.ErrDuplicate
		}
		seen[s] = struct{}{}
	}

	cardType, err := uc.catalogRepo.GetType(ctx, input.TypeID)
	if err != nil {
		return err
	}
	if cardType == nil || cardType.CategoryID != input.CategoryID {
		return domain.ErrNotFound
	}

	now := time.Now()
	cards := make([]*entity.Card, 0, len(input.Serials))
	for _, serial := range input.Serials {
		cards = append(cards, &entity.Card{
			ID:           uuid.New().String(),
			SerialNumber: serial,
			Status:       entity.CardInOffice,
			CategoryID:   input.CategoryID,
			TypeID:       input.TypeID,
			ProductID:    input.ProductID,
			QuotaTicket:  cardType.QuotaTicket,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		_ repository.StockBatchRepository,
		_ repository.InboxRepository,
	) error {
		if err := cardRepo.CreateBatch(ctx, cards); err != nil {
			return err
		}
		return summaryRepo.ApplyDelta(ctx, entity.DeltaOfficeIntake(input.CategoryID, input.TypeID, len(cards)))
	})
}
