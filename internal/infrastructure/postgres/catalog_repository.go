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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del catálogo (categorías y tipos) sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// CreateCategory persiste una categoría nueva.
func (r *CatalogRepo) CreateCategory(ctx context.Context, c *entity.CardCategory) error {
	query := `INSERT INTO card_categories (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert card category: %w", err)
	}
	return nil
}

// CreateType persiste un tipo nuevo.
func (r *CatalogRepo) CreateType(ctx context.Context, t *entity.CardType) error {
	query := `
		INSERT INTO card_types (id, category_id, name, price, quota_ticket, validity_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, t.ID, t.CategoryID, t.Name, t.Price, t.QuotaTicket, t.ValidityDays, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert card type: %w", err)
	}
	return nil
}

// GetCategory devuelve la categoría, o nil si no existe.
func (r *CatalogRepo) GetCategory(ctx context.Context, id string) (*entity.CardCategory, error) {
	query := `SELECT id, name, created_at FROM card_categories WHERE id = $1`
	var c entity.CardCategory
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get card category: %w", err)
	}
	return &c, nil
}

// GetType devuelve el tipo, o nil si no existe.
func (r *CatalogRepo) GetType(ctx context.Context, id string) (*entity.CardType, error) {
	query := `SELECT id, category_id, name, price, quota_ticket, validity_days, created_at FROM card_types WHERE id = $1`
	var t entity.CardType
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.CategoryID, &t.Name, &t.Price, &t.QuotaTicket, &t.ValidityDays, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get card type: %w", err)
	}
	return &t, nil
}

// ListCategories devuelve todas las categorías.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]*entity.CardCategory, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM card_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list card categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.CardCategory
	for rows.Next() {
		var c entity.CardCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListTypes devuelve los tipos, opcionalmente filtrados por categoría.
func (r *CatalogRepo) ListTypes(ctx context.Context, categoryID string) ([]*entity.CardType, error) {
	query := `SELECT id, category_id, name, price, quota_ticket, validity_days, created_at FROM card_types`
	var args []any
	if categoryID != "" {
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list card types: %w", err)
	}
	defer rows.Close()
	var list []*entity.CardType
	for rows.Next() {
		var t entity.CardType
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Price, &t.QuotaTicket, &t.ValidityDays, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
