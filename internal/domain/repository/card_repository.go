package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// CardRepository define el puerto de persistencia del Card Store.
// Las transiciones de estado llevan guardia optimista: el UPDATE exige el
// estado origen esperado y falla si alguna tarjeta no lo cumple.
type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	// CreateBatch inserta n tarjetas nuevas (ingreso de bodega) en un solo viaje.
	CreateBatch(ctx context.Context, cards []*entity.Card) error
	GetBySerial(ctx context.Context, serial string) (*entity.Card, error)
	ListBySerials(ctx context.Context, serials []string) ([]*entity.Card, error)
	ListByStatus(ctx context.Context, status entity.CardStatus, limit, offset int) ([]*entity.Card, error)
	// TransitionSerials cambia el estado de todos los seriales de from a to en
	// un solo UPDATE guardado. Si el número de filas afectadas no coincide con
	// len(serials), la implementación debe devolver ErrInvalidTransition (y el
	// caller abortar la transacción: los lotes son todo-o-nada).
	TransitionSerials(ctx context.Context, serials []string, from, to entity.CardStatus, stationID *string) error
	// MarkSold transición IN_STATION -> SOLD_ACTIVE de una tarjeta, fijando
	// fechas de compra y expiración. Guardia optimista sobre el estado origen.
	MarkSold(ctx context.Context, serial string, purchaseDate, expiredDate time.Time) (*entity.Card, error)
	// CountByStatus conteo directo por estado; reservado al resumen total,
	// que necesita cifras (perdidas, dañadas) que el agregado no mantiene.
	CountByStatus(ctx context.Context) (map[entity.CardStatus]int, error)
	// ListExpiredUnmaterialized tarjetas vendidas ya vencidas cuya expiración
	// aún no fue materializada en el agregado por el barrido. La implementación
	// debe bloquear las filas devueltas sin esperar a otros barridos (SKIP
	// LOCKED) para que instancias concurrentes no compartan candidatas.
	ListExpiredUnmaterialized(ctx context.Context, now time.Time, limit int) ([]*entity.Card, error)
	// MarkExpiryMaterialized reclama las tarjetas aún no materializadas y
	// devuelve los IDs efectivamente reclamados: una tarjeta ya marcada por
	// otro barrido no aparece en el resultado y no debe contabilizarse.
	MarkExpiryMaterialized(ctx context.Context, ids []string) ([]string, error)
}
