package repository

import (
	"context"
	"errors"
	"fmt"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type StockMutationInput struct {
	ProductID      int64
	FromLocationID *int64
	ToLocationID   *int64
	MutationType   domain.MutationType
	Amount         int
}

// CreateStockMutation persists the mutation and applies its ledger effect in
// one transaction. The type/location combination is validated up front; a
// mutation that fails validation is never stored.
func (r *Repository) CreateStockMutation(ctx context.Context, input StockMutationInput) (domain.StockMutation, error) {
	deltas, err := domain.MutationDeltas(input.MutationType, input.FromLocationID, input.ToLocationID, input.Amount)
	if err != nil {
		return domain.StockMutation{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.StockMutation{}, fmt.Errorf("begin mutation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var productName string
	err = tx.QueryRow(ctx, "SELECT name FROM products WHERE id = $1", input.ProductID).Scan(&productName)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StockMutation{}, fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
	}
	if err != nil {
		return domain.StockMutation{}, fmt.Errorf("load product for mutation: %w", err)
	}

	locationName := func(id *int64) (string, error) {
		if id == nil {
			return "", nil
		}
		var name string
		err := tx.QueryRow(ctx, "SELECT name FROM stock_locations WHERE id = $1", *id).Scan(&name)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("stock location %d: %w", *id, ErrNotFound)
		}
		if err != nil {
			return "", fmt.Errorf("load stock location %d: %w", *id, err)
		}
		return name, nil
	}
	fromName, err := locationName(input.FromLocationID)
	if err != nil {
		return domain.StockMutation{}, err
	}
	toName, err := locationName(input.ToLocationID)
	if err != nil {
		return domain.StockMutation{}, err
	}

	mutation := domain.StockMutation{
		ProductID:      input.ProductID,
		ProductName:    productName,
		FromLocationID: input.FromLocationID,
		ToLocationID:   input.ToLocationID,
		MutationType:   input.MutationType,
		Amount:         input.Amount,
		Summary:        domain.MutationSummary(input.MutationType, fromName, toName),
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO stock_mutations (product_id, from_location_id, to_location_id, mutation_type, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, modified_at
	`,
		input.ProductID,
		input.FromLocationID,
		input.ToLocationID,
		string(input.MutationType),
		input.Amount,
	).Scan(&mutation.ID, &mutation.CreatedAt, &mutation.ModifiedAt); err != nil {
		return domain.StockMutation{}, fmt.Errorf("insert stock mutation: %w", err)
	}

	for _, delta := range deltas {
		if err := adjustInventory(ctx, tx, input.ProductID, delta); err != nil {
			return domain.StockMutation{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.StockMutation{}, fmt.Errorf("commit mutation tx: %w", err)
	}
	return mutation, nil
}

func (r *Repository) ListStockMutations(ctx context.Context, productID *int64, limit, offset int) ([]domain.StockMutation, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)

	base := `
		SELECT
			m.id,
			m.product_id,
			p.name,
			m.from_location_id,
			COALESCE(lf.name, ''),
			m.to_location_id,
			COALESCE(lt.name, ''),
			m.mutation_type,
			m.amount,
			m.created_at,
			m.modified_at
		FROM stock_mutations m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN stock_locations lf ON lf.id = m.from_location_id
		LEFT JOIN stock_locations lt ON lt.id = m.to_location_id
	`
	args := []any{}
	argIndex := 1
	if productID != nil {
		base += fmt.Sprintf(" WHERE m.product_id = $%d", argIndex)
		args = append(args, *productID)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock mutations: %w", err)
	}
	defer rows.Close()

	mutations := make([]domain.StockMutation, 0, limit)
	for rows.Next() {
		m, err := scanStockMutation(rows)
		if err != nil {
			return nil, err
		}
		mutations = append(mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock mutations: %w", err)
	}
	return mutations, nil
}

func (r *Repository) GetStockMutationByID(ctx context.Context, id int64) (*domain.StockMutation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			m.id,
			m.product_id,
			p.name,
			m.from_location_id,
			COALESCE(lf.name, ''),
			m.to_location_id,
			COALESCE(lt.name, ''),
			m.mutation_type,
			m.amount,
			m.created_at,
			m.modified_at
		FROM stock_mutations m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN stock_locations lf ON lf.id = m.from_location_id
		LEFT JOIN stock_locations lt ON lt.id = m.to_location_id
		WHERE m.id = $1
	`, id)
	mutation, err := scanStockMutation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get stock mutation %d: %w", id, err)
	}
	return &mutation, nil
}

// DeleteStockMutation removes the event record only. The inventory effect is
// intentionally not reversed; stock corrections are posted as new mutations.
func (r *Repository) DeleteStockMutation(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM stock_mutations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete stock mutation %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStockMutation(row pgx.Row) (domain.StockMutation, error) {
	var (
		m        domain.StockMutation
		fromName string
		toName   string
	)
	if err := row.Scan(
		&m.ID,
		&m.ProductID,
		&m.ProductName,
		&m.FromLocationID,
		&fromName,
		&m.ToLocationID,
		&toName,
		&m.MutationType,
		&m.Amount,
		&m.CreatedAt,
		&m.ModifiedAt,
	); err != nil {
		return domain.StockMutation{}, err
	}
	m.Summary = domain.MutationSummary(m.MutationType, fromName, toName)
	return m, nil
}
