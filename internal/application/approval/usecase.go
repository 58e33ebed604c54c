package approval

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// DecisionUseCase procesa mensajes STOCK_ISSUE_APPROVAL exactamente una vez.
// El flag processed es el latch de un solo escritor: se fija en la misma
// transacción que las transiciones de tarjeta, así un reintento concurrente
// observa processed = true y recibe ErrAlreadyProcessed en vez de aplicar
// la baja dos veces.
type DecisionUseCase struct {
	txRunner stock.TxRunner
}

// NewDecisionUseCase construye el caso de uso.
func NewDecisionUseCase(txRunner stock.TxRunner) *DecisionUseCase {
	return &DecisionUseCase{txRunner: txRunner}
}

// DecisionResult resultado de la decisión.
type DecisionResult struct {
	InboxMessageID string
	Action         entity.DecisionAction
	LostApplied    int
	DamagedApplied int
	Restored       int // seriales devueltos al flujo confirmado en un REJECT
}

// Decide aplica la decisión del administrador sobre el mensaje.
//
// APPROVE: los seriales reportados pasan IN_TRANSIT -> LOST/DAMAGED y solo se
// decrementa cardInTransit (nunca entraron a cardBeredar; las tarjetas
// perdidas/dañadas no cuentan en ningún contador del agregado).
//
// REJECT: el reporte se descarta y las tarjetas se tratan como recibidas
// tarde: pasan IN_TRANSIT -> IN_STATION con los deltas normales de recepción.
// Así ninguna tarjeta queda en un limbo sin dueño contable.
func (uc *DecisionUseCase) Decide(ctx context.Context, inboxID string, action entity.DecisionAction, actorID string) (*DecisionResult, error) {
	if inboxID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if action != entity.DecisionApprove && action != entity.DecisionReject {
		return nil, domain.ErrInvalidInput
	}

	var result *DecisionResult
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		_ repository.StockBatchRepository,
		inboxRepo repository.InboxRepository,
	) error {
		msg, err := inboxRepo.GetByID(ctx, inboxID)
		if err != nil {
			return err
		}
		if msg == nil {
			return domain.ErrNotFound
		}
		if !msg.RequiresDecision() {
			return domain.ErrInvalidType
		}
		if msg.Processed {
			return domain.ErrAlreadyProcessed
		}

		// Latch: el UPDATE condicionado decide quién gana entre concurrentes.
		won, err := inboxRepo.MarkProcessed(ctx, msg.ID)
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrAlreadyProcessed
		}

		p := msg.Payload
		result = &DecisionResult{InboxMessageID: msg.ID, Action: action}

		switch action {
		case entity.DecisionApprove:
			if len(p.LostSerials) > 0 {
				if err := cardRepo.TransitionSerials(ctx, p.LostSerials, entity.CardInTransit, entity.CardLost, nil); err != nil {
					return err
				}
			}
			if len(p.DamagedSerials) > 0 {
				if err := cardRepo.TransitionSerials(ctx, p.DamagedSerials, entity.CardInTransit, entity.CardDamaged, nil); err != nil {
					return err
				}
			}
			total := len(p.LostSerials) + len(p.DamagedSerials)
			if total > 0 {
				if err := summaryRepo.ApplyDelta(ctx, entity.DeltaApprovedIssue(p.CategoryID, p.TypeID, p.StationID, total)); err != nil {
					return err
				}
			}
			result.LostApplied = len(p.LostSerials)
			result.DamagedApplied = len(p.DamagedSerials)

		case entity.DecisionReject:
			serials := make([]string, 0, len(p.LostSerials)+len(p.DamagedSerials))
			serials = append(serials, p.LostSerials...)
			serials = append(serials, p.DamagedSerials...)
			if len(serials) > 0 {
				if err := cardRepo.TransitionSerials(ctx, serials, entity.CardInTransit, entity.CardInStation, &p.StationID); err != nil {
					return err
				}
				if err := summaryRepo.ApplyDelta(ctx, entity.DeltaStockIn(p.CategoryID, p.TypeID, p.StationID, len(serials))); err != nil {
					return err
				}
			}
			result.Restored = len(serials)
		}

		return inboxRepo.MarkRead(ctx, msg.ID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
