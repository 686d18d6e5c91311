package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type StockLocationInput struct {
	Identifier *string
	Name       string
}

func (r *Repository) ListStockLocations(ctx context.Context, search string, limit, offset int) ([]domain.StockLocation, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)
	search = strings.TrimSpace(search)

	rows, err := r.pool.Query(ctx, `
		SELECT id, identifier, name, created_at, modified_at
		FROM stock_locations
		WHERE ($1 = '' OR identifier ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.StockLocation, 0, limit)
	for rows.Next() {
		l, err := scanStockLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock locations: %w", err)
	}
	return locations, nil
}

func (r *Repository) GetStockLocationByID(ctx context.Context, id int64) (*domain.StockLocation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, identifier, name, created_at, modified_at
		FROM stock_locations
		WHERE id = $1
	`, id)
	location, err := scanStockLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get stock location %d: %w", id, err)
	}
	return &location, nil
}

func (r *Repository) CreateStockLocation(ctx context.Context, input StockLocationInput) (domain.StockLocation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.StockLocation{}, fmt.Errorf("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO stock_locations (identifier, name)
		VALUES ($1, $2)
		RETURNING id, identifier, name, created_at, modified_at
	`, normalizeNullable(input.Identifier), name)
	location, err := scanStockLocation(row)
	if err != nil {
		return domain.StockLocation{}, fmt.Errorf("create stock location: %w", err)
	}
	return location, nil
}

func (r *Repository) UpdateStockLocation(ctx context.Context, id int64, input StockLocationInput) (*domain.StockLocation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE stock_locations
		SET identifier = $2, name = $3, modified_at = NOW()
		WHERE id = $1
		RETURNING id, identifier, name, created_at, modified_at
	`, id, normalizeNullable(input.Identifier), name)
	location, err := scanStockLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update stock location %d: %w", id, err)
	}
	return &location, nil
}

func (r *Repository) DeleteStockLocation(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM stock_locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete stock location %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStockLocation(row pgx.Row) (domain.StockLocation, error) {
	var l domain.StockLocation
	if err := row.Scan(&l.ID, &l.Identifier, &l.Name, &l.CreatedAt, &l.ModifiedAt); err != nil {
		return domain.StockLocation{}, err
	}
	return l, nil
}
