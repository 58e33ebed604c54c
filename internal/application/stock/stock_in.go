package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// StockInUseCase confirma la recepción de un lote en estación. Los seriales
// confirmados pasan IN_TRANSIT -> IN_STATION y entran a cardBeredar y
// cardBelumTerjual; los reportados como perdidos/dañados NO cambian de estado
// todavía: quedan retenidos en tránsito hasta que un administrador decida
// sobre el mensaje STOCK_ISSUE_APPROVAL generado. Cada recepción produce
// exactamente un mensaje de bandeja.
type StockInUseCase struct {
	txRunner TxRunner
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(txRunner TxRunner) *StockInUseCase {
	return &StockInUseCase{txRunner: txRunner}
}

// StockInInput entrada de la recepción. confirmados ∪ perdidos ∪ dañados debe
// cubrir exactamente el conjunto de seriales del lote original.
type StockInInput struct {
	BatchID   string
	Confirmed []string
	Lost      []string
	Damaged   []string
	ActorID   string
	ActorRole string
}

// StockInResult resultado de la recepción.
type StockInResult struct {
	BatchID        string
	Confirmed      int
	Lost           int
	Damaged        int
	InboxMessageID string
	NeedsApproval  bool
}

// Execute bloquea el lote, valida la conciliación y aplica la recepción.
func (uc *StockInUseCase) Execute(ctx context.Context, input StockInInput) (*StockInResult, error) {
	if input.BatchID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *StockInResult
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		batchRepo repository.StockBatchRepository,
		inboxRepo repository.InboxRepository,
	) error {
		// FOR UPDATE: una recepción reintentada espera aquí y luego observa RECEIVED.
		batch, err := batchRepo.GetForUpdate(ctx, input.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Status != entity.BatchInTransit {
			return domain.ErrAlreadyProcessed
		}

		reported := make([]string, 0, len(input.Confirmed)+len(input.Lost)+len(input.Damaged))
		reported = append(reported, input.Confirmed...)
		reported = append(reported, input.Lost...)
		reported = append(reported, input.Damaged...)
		if !batch.ContainsExactly(reported) {
			return domain.ErrIncompleteReconciliation
		}

		if len(input.Confirmed) > 0 {
			if err := cardRepo.TransitionSerials(ctx, input.Confirmed, entity.CardInTransit, entity.CardInStation, &batch.StationID); err != nil {
				return err
			}
			if err := summaryRepo.ApplyDelta(ctx, entity.DeltaStockIn(batch.CategoryID, batch.TypeID, batch.StationID, len(input.Confirmed))); err != nil {
				return err
			}
		}

		if err := batchRepo.MarkReceived(ctx, batch.ID); err != nil {
			return err
		}

		msg := buildReceiptMessage(batch, input)
		if err := inboxRepo.Create(ctx, msg); err != nil {
			return err
		}

		result = &StockInResult{
			BatchID:        batch.ID,
			Confirmed:      len(input.Confirmed),
			Lost:           len(input.Lost),
			Damaged:        len(input.Damaged),
			InboxMessageID: msg.ID,
			NeedsApproval:  msg.RequiresDecision(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// buildReceiptMessage arma el único mensaje de bandeja de la recepción:
// STOCK_ISSUE_APPROVAL si hubo novedades (pendiente de decisión), de lo
// contrario un STOCK_OUT_REPORT informativo ya procesado.
func buildReceiptMessage(batch *entity.StockBatch, input StockInInput) *entity.InboxMessage {
	payload := entity.InboxPayload{
		BatchID:        batch.ID,
		StationID:      batch.StationID,
		CategoryID:     batch.CategoryID,
		TypeID:         batch.TypeID,
		LostSerials:    input.Lost,
		DamagedSerials: input.Damaged,
		ConfirmedCount: len(input.Confirmed),
	}
	msg := &entity.InboxMessage{
		ID:            uuid.New().String(),
		Payload:       payload,
		Sender:        fmt.Sprintf("%s:%s", input.ActorRole, input.ActorID),
		RecipientRole: "admin",
		SentAt:        time.Now(),
	}
	if len(input.Lost) > 0 || len(input.Damaged) > 0 {
		msg.Type = entity.InboxStockIssueApproval
		msg.Processed = false
	} else {
		msg.Type = entity.InboxStockOutReport
		msg.Processed = true
	}
	return msg
}
