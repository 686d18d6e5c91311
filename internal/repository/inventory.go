package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type InventoryListFilter struct {
	ProductID  *int64
	LocationID *int64
	Search     string
	Limit      int
	Offset     int
}

// adjustInventory applies one balance delta as a single atomic statement.
// The ON CONFLICT arm materializes the implicit-zero row on first touch and
// serializes concurrent updates against the same (product, location) pair.
func adjustInventory(ctx context.Context, tx pgx.Tx, productID int64, delta domain.LedgerDelta) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_location_inventory (product_id, location_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET
			amount = stock_location_inventory.amount + EXCLUDED.amount,
			modified_at = NOW()
	`, productID, delta.LocationID, delta.Delta); err != nil {
		return fmt.Errorf("adjust inventory (product %d, location %d): %w", productID, delta.LocationID, err)
	}
	return nil
}

// GetInventoryBalance returns the current balance, treating an absent row as zero.
func (r *Repository) GetInventoryBalance(ctx context.Context, productID, locationID int64) (int, error) {
	var amount int
	err := r.pool.QueryRow(ctx, `
		SELECT amount
		FROM stock_location_inventory
		WHERE product_id = $1 AND location_id = $2
	`, productID, locationID).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get inventory balance: %w", err)
	}
	return amount, nil
}

func (r *Repository) ListInventory(ctx context.Context, filter InventoryListFilter) ([]domain.StockLocationInventory, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	base := `
		SELECT i.id, i.product_id, i.location_id, i.amount, i.modified_at
		FROM stock_location_inventory i
		JOIN products p ON p.id = i.product_id
		JOIN stock_locations l ON l.id = i.location_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR l.name ILIKE '%' || $1 || '%')
	`
	args := []any{search}
	argIndex := 2
	if filter.ProductID != nil {
		base += fmt.Sprintf(" AND i.product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		argIndex++
	}
	if filter.LocationID != nil {
		base += fmt.Sprintf(" AND i.location_id = $%d", argIndex)
		args = append(args, *filter.LocationID)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY p.name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := make([]domain.StockLocationInventory, 0, limit)
	for rows.Next() {
		var item domain.StockLocationInventory
		if err := rows.Scan(&item.ID, &item.ProductID, &item.LocationID, &item.Amount, &item.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}
	return items, nil
}

// ListInventoryFull embeds product and location plus today's sales amount for
// the pair, for the stock-count view.
func (r *Repository) ListInventoryFull(ctx context.Context, filter InventoryListFilter) ([]domain.StockLocationInventoryFull, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	base := `
		SELECT
			i.id,
			i.amount,
			i.modified_at,
			` + prefixColumns("p", productColumns) + `,
			l.id, l.identifier, l.name, l.created_at, l.modified_at,
			COALESCE((
				SELECT SUM(ol.amount)
				FROM order_lines ol
				JOIN orders o ON o.id = ol.order_id
				WHERE ol.product_id = i.product_id
					AND ol.location_id = i.location_id
					AND o.order_type = 'sales'
					AND o.start_date = CURRENT_DATE
			), 0)::int AS sales_amount_today
		FROM stock_location_inventory i
		JOIN products p ON p.id = i.product_id
		JOIN stock_locations l ON l.id = i.location_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR l.name ILIKE '%' || $1 || '%')
	`
	args := []any{search}
	argIndex := 2
	if filter.ProductID != nil {
		base += fmt.Sprintf(" AND i.product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		argIndex++
	}
	if filter.LocationID != nil {
		base += fmt.Sprintf(" AND i.location_id = $%d", argIndex)
		args = append(args, *filter.LocationID)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY p.name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory full: %w", err)
	}
	defer rows.Close()

	items := make([]domain.StockLocationInventoryFull, 0, limit)
	for rows.Next() {
		var item domain.StockLocationInventoryFull
		if err := rows.Scan(
			&item.ID,
			&item.Amount,
			&item.ModifiedAt,
			&item.Product.ID,
			&item.Product.Identifier,
			&item.Product.Name,
			&item.Product.NameShort,
			&item.Product.SearchName,
			&item.Product.Unit,
			&item.Product.Supplier,
			&item.Product.ProductType,
			&item.Product.PricePurchase,
			&item.Product.PricePurchaseCurrency,
			&item.Product.PriceSelling,
			&item.Product.PriceSellingCurrency,
			&item.Product.PriceSellingAlt,
			&item.Product.PriceSellingAltCurrency,
			&item.Product.PricePurchaseEx,
			&item.Product.PriceSellingEx,
			&item.Product.PriceSellingAltEx,
			&item.Product.TaxPercentage,
			&item.Product.CreatedAt,
			&item.Product.ModifiedAt,
			&item.Location.ID,
			&item.Location.Identifier,
			&item.Location.Name,
			&item.Location.CreatedAt,
			&item.Location.ModifiedAt,
			&item.SalesAmountToday,
		); err != nil {
			return nil, fmt.Errorf("scan full inventory row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate full inventory rows: %w", err)
	}
	return items, nil
}

func (r *Repository) ListLocationProductTypes(ctx context.Context, locationID int64) ([]domain.LocationProductType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.product_type
		FROM stock_location_inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.location_id = $1
		ORDER BY p.product_type ASC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list location product types: %w", err)
	}
	defer rows.Close()

	result := make([]domain.LocationProductType, 0)
	for rows.Next() {
		row := domain.LocationProductType{LocationID: locationID}
		if err := rows.Scan(&row.ProductType); err != nil {
			return nil, fmt.Errorf("scan location product type: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location product types: %w", err)
	}
	return result, nil
}

// prefixColumns rewrites a bare column list to one qualified with an alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
