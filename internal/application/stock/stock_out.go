package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// StockOutUseCase despacha un lote de tarjetas de bodega a una estación:
// todas pasan IN_OFFICE -> IN_TRANSIT, se crea el lote con el conjunto exacto
// de seriales y el agregado se mueve de cardOffice a cardInTransit de la
// estación destino. El lote es todo-o-nada: si un serial no está IN_OFFICE
// no se commitea nada.
type StockOutUseCase struct {
	txRunner    TxRunner
	stationRepo repository.StationRepository
}

// NewStockOutUseCase construye el caso de uso.
func NewStockOutUseCase(txRunner TxRunner, stationRepo repository.StationRepository) *StockOutUseCase {
	return &StockOutUseCase{txRunner: txRunner, stationRepo: stationRepo}
}

// StockOutInput entrada del despacho.
type StockOutInput struct {
	StationID string
	Serials   []string
	ActorID   string
}

// StockOutResult resultado del despacho.
type StockOutResult struct {
	BatchID    string
	CategoryID string
	TypeID     string
	StationID  string
	Dispatched int
}

// Execute valida la estación y los seriales, transiciona el lote y actualiza
// el agregado (bodega y bucket destino) en la misma transacción.
func (uc *StockOutUseCase) Execute(ctx context.Context, input StockOutInput) (*StockOutResult, error) {
	if input.StationID == "" || len(input.Serials) == 0 {
		return nil, domain.ErrInvalidInput
	}
	station, err := uc.stationRepo.GetByID(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, domain.ErrNotFound
	}

	var result *StockOutResult
	err = uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		batchRepo repository.StockBatchRepository,
		_ repository.InboxRepository,
	) error {
		cards, err := cardRepo.ListBySerials(ctx, input.Serials)
		if err != nil {
			return err
		}
		if len(cards) != len(input.Serials) {
			return domain.ErrNotFound
		}
		// Un lote es homogéneo: una sola combinación categoría/tipo, y todas
		// las tarjetas deben estar IN_OFFICE.
		categoryID, typeID := cards[0].CategoryID, cards[0].TypeID
		for _, c := range cards {
			if c.Status != entity.CardInOffice {
				return domain.ErrInvalidBatch
			}
			if c.CategoryID != categoryID || c.TypeID != typeID {
				return domain.ErrInvalidBatch
			}
		}

		// La estación queda registrada de forma provisional; se confirma en la recepción.
		if err := cardRepo.TransitionSerials(ctx, input.Serials, entity.CardInOffice, entity.CardInTransit, &input.StationID); err != nil {
			return err
		}

		batch := &entity.StockBatch{
			ID:         uuid.New().String(),
			CategoryID: categoryID,
			TypeID:     typeID,
			StationID:  input.StationID,
			Serials:    input.Serials,
			Status:     entity.BatchInTransit,
			CreatedBy:  input.ActorID,
			CreatedAt:  time.Now(),
		}
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}

		officeDelta, stationDelta := entity.DeltaStockOut(categoryID, typeID, input.StationID, len(cards))
		if err := summaryRepo.ApplyDelta(ctx, officeDelta); err != nil {
			return err
		}
		if err := summaryRepo.ApplyDelta(ctx, stationDelta); err != nil {
			return err
		}

		result = &StockOutResult{
			BatchID:    batch.ID,
			CategoryID: categoryID,
			TypeID:     typeID,
			StationID:  input.StationID,
			Dispatched: len(cards),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
