package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

var _ repository.InboxRepository = (*InboxRepo)(nil)

// InboxRepo implementación de la bandeja administrativa sobre PostgreSQL.
// El payload se persiste como jsonb.
type InboxRepo struct {
	q Querier
}

// NewInboxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInboxRepository(q Querier) *InboxRepo {
	return &InboxRepo{q: q}
}

// Create persiste un mensaje nuevo.
func (r *InboxRepo) Create(ctx context.Context, msg *entity.InboxMessage) error {
	query := `
		INSERT INTO inbox_messages (id, type, payload, sender, recipient_role, is_read, sent_at, processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		msg.ID, msg.Type, msg.Payload, msg.Sender, msg.RecipientRole,
		msg.IsRead, msg.SentAt, msg.Processed,
	)
	if err != nil {
		return fmt.Errorf("insert inbox message: %w", err)
	}
	return nil
}

const inboxColumns = `id, type, payload, sender, recipient_role, is_read, read_at, sent_at, processed`

func scanInbox(row pgx.Row) (*entity.InboxMessage, error) {
	var m entity.InboxMessage
	err := row.Scan(
		&m.ID, &m.Type, &m.Payload, &m.Sender, &m.RecipientRole,
		&m.IsRead, &m.ReadAt, &m.SentAt, &m.Processed,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID devuelve el mensaje, o nil si no existe.
func (r *InboxRepo) GetByID(ctx context.Context, id string) (*entity.InboxMessage, error) {
	query := `SELECT ` + inboxColumns + ` FROM inbox_messages WHERE id = $1`
	m, err := scanInbox(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbox message: %w", err)
	}
	return m, nil
}

// List devuelve mensajes con filtros y paginación, más reciente primero.
func (r *InboxRepo) List(ctx context.Context, f repository.InboxFilter) ([]*entity.InboxMessage, error) {
	query := `SELECT ` + inboxColumns + ` FROM inbox_messages WHERE 1=1`
	var args []any
	n := 0
	addArg := func(clause string, v any) {
		n++
		args = append(args, v)
		query += fmt.Sprintf(clause, n)
	}
	if f.RecipientRole != "" {
		addArg(` AND recipient_role = $%d`, f.RecipientRole)
	}
	if f.Type != "" {
		addArg(` AND type = $%d`, f.Type)
	}
	if f.UnreadOnly {
		query += ` AND NOT is_read`
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	query += ` ORDER BY sent_at DESC`
	addArg(` LIMIT $%d`, limit)
	addArg(` OFFSET $%d`, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inbox messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.InboxMessage
	for rows.Next() {
		m, err := scanInbox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inbox message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// MarkRead marca el mensaje como leído.
func (r *InboxRepo) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE inbox_messages SET is_read = true, read_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark inbox read: %w", err)
	}
	return nil
}

// MarkProcessed latch de un solo escritor: solo gana el primer caller.
// El UPDATE condicionado es quien serializa decisiones concurrentes; el
// perdedor recibe false y el caso de uso lo traduce a ErrAlreadyProcessed.
func (r *InboxRepo) MarkProcessed(ctx context.Context, id string) (bool, error) {
	query := `UPDATE inbox_messages SET processed = true WHERE id = $1 AND processed = false`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark inbox processed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
