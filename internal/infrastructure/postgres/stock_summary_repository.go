package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

var _ repository.StockSummaryRepository = (*StockSummaryRepo)(nil)

// StockSummaryRepo implementación del agregado de inventario sobre PostgreSQL.
type StockSummaryRepo struct {
	q Querier
}

// NewStockSummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSummaryRepository(q Querier) *StockSummaryRepo {
	return &StockSummaryRepo{q: q}
}

// ApplyDelta upsert atómico insert-or-increment sobre el bucket. Dos
// operaciones que estrenan el mismo bucket a la vez no se pierden: la segunda
// cae en el ON CONFLICT e incrementa sobre lo ya insertado. La fila de bodega
// (station_id NULL) y las de estación usan índices únicos parciales distintos.
func (r *StockSummaryRepo) ApplyDelta(ctx context.Context, d entity.SummaryDelta) error {
	if d.IsZero() {
		return nil
	}
	var (
		query string
		args  []any
	)
	if d.StationID == nil {
		query = `
			INSERT INTO stock_summaries (id, category_id, type_id, station_id,
				card_office, card_in_transit, card_beredar, card_aktif, card_non_aktif, card_belum_terjual, updated_at)
			VALUES (gen_random_uuid(), $1, $2, NULL, $3, $4, $5, $6, $7, $8, now())
			ON CONFLICT (category_id, type_id) WHERE station_id IS NULL
			DO UPDATE SET
				card_office        = stock_summaries.card_office + EXCLUDED.card_office,
				card_in_transit    = stock_summaries.card_in_transit + EXCLUDED.card_in_transit,
				card_beredar       = stock_summaries.card_beredar + EXCLUDED.card_beredar,
				card_aktif         = stock_summaries.card_aktif + EXCLUDED.card_aktif,
				card_non_aktif     = stock_summaries.card_non_aktif + EXCLUDED.card_non_aktif,
				card_belum_terjual = stock_summaries.card_belum_terjual + EXCLUDED.card_belum_terjual,
				updated_at         = now()`
		args = []any{d.CategoryID, d.TypeID,
			d.CardOffice, d.CardInTransit, d.CardBeredar, d.CardAktif, d.CardNonAktif, d.CardBelumTerjual}
	} else {
		query = `
			INSERT INTO stock_summaries (id, category_id, type_id, station_id,
				card_office, card_in_transit, card_beredar, card_aktif, card_non_aktif, card_belum_terjual, updated_at)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			ON CONFLICT (category_id, type_id, station_id) WHERE station_id IS NOT NULL
			DO UPDATE SET
				card_office        = stock_summaries.card_office + EXCLUDED.card_office,
				card_in_transit    = stock_summaries.card_in_transit + EXCLUDED.card_in_transit,
				card_beredar       = stock_summaries.card_beredar + EXCLUDED.card_beredar,
				card_aktif         = stock_summaries.card_aktif + EXCLUDED.card_aktif,
				card_non_aktif     = stock_summaries.card_non_aktif + EXCLUDED.card_non_aktif,
				card_belum_terjual = stock_summaries.card_belum_terjual + EXCLUDED.card_belum_terjual,
				updated_at         = now()`
		args = []any{d.CategoryID, d.TypeID, *d.StationID,
			d.CardOffice, d.CardInTransit, d.CardBeredar, d.CardAktif, d.CardNonAktif, d.CardBelumTerjual}
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("apply summary delta: %w", err)
	}
	return nil
}

const summaryColumns = `id, category_id, type_id, station_id,
	card_office, card_in_transit, card_beredar, card_aktif, card_non_aktif, card_belum_terjual, updated_at`

func scanSummary(row pgx.Row) (*entity.StockSummary, error) {
	var s entity.StockSummary
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.TypeID, &s.StationID,
		&s.CardOffice, &s.CardInTransit, &s.CardBeredar, &s.CardAktif, &s.CardNonAktif, &s.CardBelumTerjual,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetBucket devuelve un bucket puntual, o nil si no existe aún.
func (r *StockSummaryRepo) GetBucket(ctx context.Context, categoryID, typeID string, stationID *string) (*entity.StockSummary, error) {
	var (
		query string
		args  []any
	)
	if stationID == nil {
		query = `SELECT ` + summaryColumns + ` FROM stock_summaries
			WHERE category_id = $1 AND type_id = $2 AND station_id IS NULL`
		args = []any{categoryID, typeID}
	} else {
		query = `SELECT ` + summaryColumns + ` FROM stock_summaries
			WHERE category_id = $1 AND type_id = $2 AND station_id = $3`
		args = []any{categoryID, typeID, *stationID}
	}
	s, err := scanSummary(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get summary bucket: %w", err)
	}
	return s, nil
}

// ListBuckets lista todas las filas que pasen el filtro, incluida la de bodega.
func (r *StockSummaryRepo) ListBuckets(ctx context.Context, f repository.SummaryFilter) ([]*entity.StockSummary, error) {
	return r.list(ctx, f, false)
}

// ListStationBuckets lista solo filas con estación.
func (r *StockSummaryRepo) ListStationBuckets(ctx context.Context, f repository.SummaryFilter) ([]*entity.StockSummary, error) {
	return r.list(ctx, f, true)
}

func (r *StockSummaryRepo) list(ctx context.Context, f repository.SummaryFilter, stationsOnly bool) ([]*entity.StockSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM stock_summaries WHERE 1=1`
	var args []any
	n := 0
	addArg := func(clause string, v any) {
		n++
		args = append(args, v)
		query += fmt.Sprintf(clause, n)
	}
	if stationsOnly {
		query += ` AND station_id IS NOT NULL`
	}
	if f.CategoryID != "" {
		addArg(` AND category_id = $%d`, f.CategoryID)
	}
	if f.TypeID != "" {
		addArg(` AND type_id = $%d`, f.TypeID)
	}
	if f.StationID != "" {
		addArg(` AND station_id = $%d`, f.StationID)
	}
	query += ` ORDER BY category_id, type_id, station_id NULLS FIRST`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list summary buckets: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary bucket: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
