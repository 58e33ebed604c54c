package stock

import (
	"context"
	"time"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
	"github.com/tu-usuario/cardstock-pro/pkg/logger"
)

// ExpirySweepUseCase materializa la expiración de tarjetas vendidas: el
// estado sigue siendo SOLD_ACTIVE (la expiración es un predicado derivado),
// pero el agregado mueve cada tarjeta vencida de cardAktif a cardNonAktif
// exactamente una vez, para que todos los resúmenes lean la misma cifra.
type ExpirySweepUseCase struct {
	txRunner  TxRunner
	batchSize int
	log       *logger.Logger
}

// NewExpirySweepUseCase construye el caso de uso.
func NewExpirySweepUseCase(txRunner TxRunner, batchSize int, log *logger.Logger) *ExpirySweepUseCase {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ExpirySweepUseCase{txRunner: txRunner, batchSize: batchSize, log: log}
}

// Sweep procesa un lote de tarjetas vencidas sin materializar y devuelve
// cuántas movió. El caller (ticker en main) repite hasta que devuelva cero.
func (uc *ExpirySweepUseCase) Sweep(ctx context.Context) (int, error) {
	var moved int
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		_ repository.StockBatchRepository,
		_ repository.InboxRepository,
	) error {
		cards, err := cardRepo.ListExpiredUnmaterialized(ctx, time.Now(), uc.batchSize)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			return nil
		}

		byID := make(map[string]*entity.Card, len(cards))
		ids := make([]string, 0, len(cards))
		for _, c := range cards {
			if c.StationID == nil {
				// No debería pasar: una tarjeta vendida siempre tiene estación.
				uc.log.Warn().Str("serial", c.SerialNumber).Msg("tarjeta vendida sin estación, omitida del barrido")
				continue
			}
			byID[c.ID] = c
			ids = append(ids, c.ID)
		}
		if len(ids) == 0 {
			return nil
		}

		// Reclamar primero, contabilizar después: el delta solo se aplica a
		// las filas que este barrido ganó. Una instancia concurrente que leyó
		// la misma tarjeta antes del commit no la reclama y no duplica el
		// movimiento cardAktif -> cardNonAktif.
		claimed, err := cardRepo.MarkExpiryMaterialized(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range claimed {
			c := byID[id]
			if err := summaryRepo.ApplyDelta(ctx, entity.DeltaExpiry(c.CategoryID, c.TypeID, *c.StationID)); err != nil {
				return err
			}
		}
		moved = len(claimed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// RunPeriodic ejecuta el barrido cada interval hasta que el contexto se cancele.
func (uc *ExpirySweepUseCase) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				n, err := uc.Sweep(ctx)
				if err != nil {
					uc.log.Error().Err(err).Msg("barrido de expiración")
					break
				}
				if n == 0 {
					break
				}
				uc.log.Info().Int("tarjetas", n).Msg("expiraciones materializadas")
			}
		}
	}
}
