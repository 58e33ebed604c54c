package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
	"github.com/tu-usuario/cardstock-pro/pkg/logger"
)

// CooldownStore ventana de enfriamiento por bucket para no repetir alertas.
// Acquire devuelve true si este caller ganó la ventana (SET NX + TTL en Redis);
// Release la devuelve cuando la alerta no llegó a escribirse, para no quemar
// la ventana completa sin mensaje en la bandeja.
type CooldownStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// LowStockUseCase compara cardBelumTerjual de cada bucket de estación contra
// el umbral configurado y genera mensajes LOW_STOCK informativos. Solo lee el
// agregado y escribe en la bandeja; nunca toca el Card Store.
type LowStockUseCase struct {
	summaryRepo repository.StockSummaryRepository
	stationRepo repository.StationRepository
	inboxRepo   repository.InboxRepository
	cooldown    CooldownStore

	defaultMin  int
	cooldownTTL time.Duration
	log         *logger.Logger
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(
	summaryRepo repository.StockSummaryRepository,
	stationRepo repository.StationRepository,
	inboxRepo repository.InboxRepository,
	cooldown CooldownStore,
	defaultMin int,
	cooldownTTL time.Duration,
	log *logger.Logger,
) *LowStockUseCase {
	return &LowStockUseCase{
		summaryRepo: summaryRepo,
		stationRepo: stationRepo,
		inboxRepo:   inboxRepo,
		cooldown:    cooldown,
		defaultMin:  defaultMin,
		cooldownTTL: cooldownTTL,
		log:         log,
	}
}

// CheckResult conteos del chequeo.
type CheckResult struct {
	BucketsChecked int
	AlertsSent     int
}

// Check recorre los buckets de estación y alerta los que estén bajo el umbral
// y fuera de la ventana de enfriamiento.
func (uc *LowStockUseCase) Check(ctx context.Context) (*CheckResult, error) {
	stations, err := uc.stationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	thresholds := make(map[string]int, len(stations))
	for _, s := range stations {
		t := s.MinStockThreshold
		if t <= 0 {
			t = uc.defaultMin
		}
		thresholds[s.ID] = t
	}

	buckets, err := uc.summaryRepo.ListStationBuckets(ctx, repository.SummaryFilter{})
	if err != nil {
		return nil, err
	}

	result := &CheckResult{}
	for _, b := range buckets {
		result.BucketsChecked++
		threshold, ok := thresholds[*b.StationID]
		if !ok {
			threshold = uc.defaultMin
		}
		if b.CardBelumTerjual >= threshold {
			continue
		}

		key := cooldownKey(b)
		won, err := uc.cooldown.Acquire(ctx, key, uc.cooldownTTL)
		if err != nil {
			// Redis caído no debe tumbar el monitor: se alerta igual, a riesgo
			// de repetir la alerta en el siguiente ciclo.
			uc.log.Warn().Err(err).Str("bucket", key).Msg("cooldown no disponible")
			won = true
		}
		if !won {
			continue
		}

		msg := &entity.InboxMessage{
			ID:            uuid.New().String(),
			Type:          entity.InboxLowStock,
			Sender:        "low-stock-monitor",
			RecipientRole: "admin",
			SentAt:        time.Now(),
			Processed:     true, // informativo, no requiere decisión
			Payload: entity.InboxPayload{
				StationID:    *b.StationID,
				CategoryID:   b.CategoryID,
				TypeID:       b.TypeID,
				CurrentStock: b.CardBelumTerjual,
				MinThreshold: threshold,
			},
		}
		if err := uc.inboxRepo.Create(ctx, msg); err != nil {
			// La ventana ya está tomada pero la alerta no existe: liberar la
			// clave para que el siguiente ciclo pueda reintentar, en vez de
			// suprimir la alerta durante todo el TTL.
			if relErr := uc.cooldown.Release(ctx, key); relErr != nil {
				uc.log.Warn().Err(relErr).Str("bucket", key).Msg("no se pudo liberar la ventana de enfriamiento")
			}
			return nil, err
		}
		result.AlertsSent++
	}
	return result, nil
}

func cooldownKey(b *entity.StockSummary) string {
	return fmt.Sprintf("lowstock:%s:%s:%s", b.CategoryID, b.TypeID, *b.StationID)
}
