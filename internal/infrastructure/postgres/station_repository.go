package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

var _ repository.StationRepository = (*StationRepo)(nil)

// StationRepo implementación del puerto de estaciones sobre PostgreSQL.
type StationRepo struct {
	q Querier
}

// NewStationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStationRepository(q Querier) *StationRepo {
	return &StationRepo{q: q}
}

// Create persiste una estación nueva.
func (r *StationRepo) Create(ctx context.Context, station *entity.Station) error {
	query := `
		INSERT INTO stations (id, name, min_stock_threshold, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, station.ID, station.Name, station.MinStockThreshold, station.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

// GetByID devuelve la estación, o nil si no existe.
func (r *StationRepo) GetByID(ctx context.Context, id string) (*entity.Station, error) {
	query := `SELECT id, name, min_stock_threshold, created_at FROM stations WHERE id = $1`
	var s entity.Station
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.MinStockThreshold, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get station: %w", err)
	}
	return &s, nil
}

// List devuelve todas las estaciones ordenadas por nombre.
func (r *StationRepo) List(ctx context.Context) ([]*entity.Station, error) {
	query := `SELECT id, name, min_stock_threshold, created_at FROM stations ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Station
	for rows.Next() {
		var s entity.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.MinStockThreshold, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
