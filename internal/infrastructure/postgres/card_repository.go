package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

var _ repository.CardRepository = (*CardRepo)(nil)

// CardRepo implementación del Card Store sobre PostgreSQL.
type CardRepo struct {
	q Querier
}

// NewCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCardRepository(q Querier) *CardRepo {
	return &CardRepo{q: q}
}

const cardColumns = `id, serial_number, status, category_id, type_id, product_id,
	station_id, quota_ticket, purchase_date, expired_date, expiry_materialized,
	created_at, updated_at`

func scanCard(row pgx.Row) (*entity.Card, error) {
	var c entity.Card
	err := row.Scan(
		&c.ID, &c.SerialNumber, &c.Status, &c.CategoryID, &c.TypeID, &c.ProductID,
		&c.StationID, &c.QuotaTicket, &c.PurchaseDate, &c.ExpiredDate, &c.ExpiryMaterialized,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una tarjeta nueva.
func (r *CardRepo) Create(ctx context.Context, card *entity.Card) error {
	query := `
		INSERT INTO cards (id, serial_number, status, category_id, type_id, product_id,
			station_id, quota_ticket, expiry_materialized, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		card.ID, card.SerialNumber, card.Status, card.CategoryID, card.TypeID, card.ProductID,
		card.StationID, card.QuotaTicket, card.ExpiryMaterialized, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// CreateBatch inserta n tarjetas en un solo viaje usando pgx.Batch.
func (r *CardRepo) CreateBatch(ctx context.Context, cards []*entity.Card) error {
	if len(cards) == 0 {
		return nil
	}
	query := `
		INSERT INTO cards (id, serial_number, status, category_id, type_id, product_id,
			station_id, quota_ticket, expiry_materialized, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for _, card := range cards {
		batch.Queue(query,
			card.ID, card.SerialNumber, card.Status, card.CategoryID, card.TypeID, card.ProductID,
			card.StationID, card.QuotaTicket, card.ExpiryMaterialized, card.CreatedAt, card.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range cards {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert card batch: %w", err)
		}
	}
	return nil
}

// GetBySerial devuelve la tarjeta por serial, o nil si no existe.
func (r *CardRepo) GetBySerial(ctx context.Context, serial string) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE serial_number = $1`
	c, err := scanCard(r.q.QueryRow(ctx, query, serial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}

// ListBySerials devuelve las tarjetas cuyos seriales estén en la lista.
func (r *CardRepo) ListBySerials(ctx context.Context, serials []string) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE serial_number = ANY($1)`
	rows, err := r.q.Query(ctx, query, serials)
	if err != nil {
		return nil, fmt.Errorf("list cards by serial: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// ListByStatus devuelve tarjetas por estado con paginación.
func (r *CardRepo) ListByStatus(ctx context.Context, status entity.CardStatus, limit, offset int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cards by status: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// TransitionSerials cambia el estado de todos los seriales con guardia
// optimista: el UPDATE exige el estado origen; si alguna tarjeta no lo cumple
// (interferencia concurrente o error del cliente) las filas afectadas no
// coinciden y se devuelve ErrInvalidTransition para abortar la transacción.
func (r *CardRepo) TransitionSerials(ctx context.Context, serials []string, from, to entity.CardStatus, stationID *string) error {
	if len(serials) == 0 {
		return nil
	}
	if !entity.CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	var (
		tag pgconn.CommandTag
		err error
	)
	if stationID != nil {
		query := `
			UPDATE cards SET status = $1, station_id = $2, updated_at = now()
			WHERE serial_number = ANY($3) AND status = $4`
		tag, err = r.q.Exec(ctx, query, to, *stationID, serials, from)
	} else {
		query := `
			UPDATE cards SET status = $1, updated_at = now()
			WHERE serial_number = ANY($2) AND status = $3`
		tag, err = r.q.Exec(ctx, query, to, serials, from)
	}
	if err != nil {
		return fmt.Errorf("transition cards: %w", err)
	}
	if tag.RowsAffected() != int64(len(serials)) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// MarkSold transición IN_STATION -> SOLD_ACTIVE con fechas de venta.
func (r *CardRepo) MarkSold(ctx context.Context, serial string, purchaseDate, expiredDate time.Time) (*entity.Card, error) {
	query := `
		UPDATE cards SET status = $1, purchase_date = $2, expired_date = $3, updated_at = now()
		WHERE serial_number = $4 AND status = $5
		RETURNING ` + cardColumns
	c, err := scanCard(r.q.QueryRow(ctx, query,
		entity.CardSoldActive, purchaseDate, expiredDate, serial, entity.CardInStation,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("mark card sold: %w", err)
	}
	return c, nil
}

// CountByStatus conteo directo por estado (solo para el resumen total).
func (r *CardRepo) CountByStatus(ctx context.Context) (map[entity.CardStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM cards GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count cards by status: %w", err)
	}
	defer rows.Close()
	counts := make(map[entity.CardStatus]int)
	for rows.Next() {
		var status entity.CardStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListExpiredUnmaterialized tarjetas vendidas ya vencidas pendientes del
// barrido. SKIP LOCKED evita que dos instancias con ticks solapados
// compartan candidatas: cada una bloquea y procesa filas distintas.
func (r *CardRepo) ListExpiredUnmaterialized(ctx context.Context, now time.Time, limit int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE status = $1 AND expired_date < $2 AND NOT expiry_materialized
		ORDER BY expired_date LIMIT $3
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(ctx, query, entity.CardSoldActive, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// MarkExpiryMaterialized reclama las tarjetas con un UPDATE condicionado y
// devuelve los IDs reclamados. Una fila que otra instancia ya marcó (lectura
// obsoleta bajo read-committed) no cumple la guardia y queda fuera.
func (r *CardRepo) MarkExpiryMaterialized(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		UPDATE cards SET expiry_materialized = true, updated_at = now()
		WHERE id = ANY($1) AND NOT expiry_materialized
		RETURNING id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("mark expiry materialized: %w", err)
	}
	defer rows.Close()
	var claimed []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan claimed id: %w", err)
		}
		claimed = append(claimed, id)
	}
	return claimed, rows.Err()
}

func collectCards(rows pgx.Rows) ([]*entity.Card, error) {
	var list []*entity.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
