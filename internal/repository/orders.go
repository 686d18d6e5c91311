package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderLineInput struct {
	ProductID             int64
	LocationID            *int64
	Amount                int
	PricePurchase         decimal.Decimal
	PricePurchaseCurrency string
	PriceSelling          decimal.Decimal
	PriceSellingCurrency  string
}

type OrderInput struct {
	OrderName  string
	CustomerID int64
	OrderType  string
	StartDate  time.Time
	Lines      []OrderLineInput
}

func (r *Repository) CreateOrder(ctx context.Context, input OrderInput) (domain.Order, error) {
	input.OrderName = strings.TrimSpace(input.OrderName)
	if input.OrderName == "" {
		return domain.Order{}, fmt.Errorf("order_name is required")
	}
	input.OrderType = strings.TrimSpace(input.OrderType)
	if input.OrderType == "" {
		input.OrderType = "sales"
	}
	if len(input.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("lines cannot be empty")
	}
	for _, line := range input.Lines {
		if line.Amount < 0 {
			return domain.Order{}, fmt.Errorf("line amount cannot be negative")
		}
		if line.PricePurchase.IsNegative() || line.PriceSelling.IsNegative() {
			return domain.Order{}, fmt.Errorf("line prices cannot be negative")
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order := domain.Order{
		OrderName:  input.OrderName,
		CustomerID: input.CustomerID,
		OrderType:  input.OrderType,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (order_name, customer_id, order_type, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, start_date, created_at
	`, input.OrderName, input.CustomerID, input.OrderType, input.StartDate).Scan(
		&order.ID, &order.StartDate, &order.CreatedAt,
	); err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range input.Lines {
		var productExists bool
		if err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", line.ProductID,
		).Scan(&productExists); err != nil {
			return domain.Order{}, fmt.Errorf("check order line product: %w", err)
		}
		if !productExists {
			return domain.Order{}, fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_lines (
				order_id,
				product_id,
				location_id,
				amount,
				price_purchase,
				price_purchase_currency,
				price_selling,
				price_selling_currency
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			order.ID,
			line.ProductID,
			line.LocationID,
			line.Amount,
			line.PricePurchase,
			normalizeCurrency(line.PricePurchaseCurrency),
			line.PriceSelling,
			normalizeCurrency(line.PriceSellingCurrency),
		); err != nil {
			return domain.Order{}, fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("commit order tx: %w", err)
	}
	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, orderType string, limit, offset int) ([]domain.Order, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_name, customer_id, order_type, start_date, created_at
		FROM orders
		WHERE ($1 = '' OR order_type = $1)
		ORDER BY start_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`, strings.TrimSpace(orderType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderName, &o.CustomerID, &o.OrderType, &o.StartDate, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// SalesTotals aggregates the full year's sales scope, deliberately ignoring
// any free-text filter: report percentages are relative to the whole year.
func (r *Repository) SalesTotals(ctx context.Context, year int) (domain.SalesTotals, error) {
	var totals domain.SalesTotals
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(ol.amount), 0)::int,
			COALESCE(SUM(ol.price_purchase), 0),
			COALESCE(SUM(ol.price_selling), 0)
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.order_type = 'sales'
			AND EXTRACT(YEAR FROM o.start_date) = $1
	`, year).Scan(&totals.Amount, &totals.PricePurchase, &totals.PriceSelling)
	if err != nil {
		return domain.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return totals, nil
}

// ListSalesOrderLines loads the sales order lines for a report year. The
// free-text query matches the product name, the order name, or either,
// depending on which report is being built.
func (r *Repository) ListSalesOrderLines(ctx context.Context, year int, query string, matchProduct, matchOrder bool) ([]domain.SalesOrderLine, error) {
	base := `
		SELECT
			ol.product_id,
			p.name,
			o.customer_id,
			o.order_name,
			ol.amount,
			ol.price_purchase,
			ol.price_purchase_currency,
			ol.price_selling,
			ol.price_selling_currency
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		JOIN products p ON p.id = ol.product_id
		WHERE o.order_type = 'sales'
			AND EXTRACT(YEAR FROM o.start_date) = $1
	`
	args := []any{year}
	if query = strings.TrimSpace(query); query != "" {
		switch {
		case matchProduct && matchOrder:
			base += " AND (p.name ILIKE '%' || $2 || '%' OR o.order_name ILIKE '%' || $2 || '%')"
		case matchProduct:
			base += " AND p.name ILIKE '%' || $2 || '%'"
		case matchOrder:
			base += " AND o.order_name ILIKE '%' || $2 || '%'"
		}
		if matchProduct || matchOrder {
			args = append(args, query)
		}
	}
	base += " ORDER BY ol.id ASC"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.SalesOrderLine, 0)
	for rows.Next() {
		var line domain.SalesOrderLine
		if err := rows.Scan(
			&line.ProductID,
			&line.ProductName,
			&line.CustomerID,
			&line.OrderName,
			&line.Amount,
			&line.PricePurchase,
			&line.PricePurchaseCurrency,
			&line.PriceSelling,
			&line.PriceSellingCurrency,
		); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales order lines: %w", err)
	}
	return lines, nil
}

// SalesAmountForPairToday sums today's sales order-line amounts for one
// (product, location) pair.
func (r *Repository) SalesAmountForPairToday(ctx context.Context, productID, locationID int64) (int, error) {
	var amount int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(ol.amount), 0)::int
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE ol.product_id = $1
			AND ol.location_id = $2
			AND o.order_type = 'sales'
			AND o.start_date = CURRENT_DATE
	`, productID, locationID).Scan(&amount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("sales amount today: %w", err)
	}
	return amount, nil
}
