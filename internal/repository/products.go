package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ProductListFilter struct {
	Search      string
	ProductType string
	Limit       int
	Offset      int
}

type ProductInput struct {
	Identifier              *string
	Name                    string
	NameShort               *string
	SearchName              *string
	Unit                    *string
	Supplier                *string
	ProductType             *string
	PricePurchase           decimal.Decimal
	PricePurchaseCurrency   string
	PriceSelling            decimal.Decimal
	PriceSellingCurrency    string
	PriceSellingAlt         decimal.Decimal
	PriceSellingAltCurrency string
	PricePurchaseEx         decimal.Decimal
	PriceSellingEx          decimal.Decimal
	PriceSellingAltEx       decimal.Decimal
	TaxPercentage           decimal.Decimal
}

const productColumns = `
	id,
	identifier,
	name,
	name_short,
	search_name,
	unit,
	supplier,
	product_type,
	price_purchase,
	price_purchase_currency,
	price_selling,
	price_selling_currency,
	price_selling_alt,
	price_selling_alt_currency,
	price_purchase_ex,
	price_selling_ex,
	price_selling_alt_ex,
	tax_percentage,
	created_at,
	modified_at
`

func (input *ProductInput) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("name is required")
	}
	for field, amount := range map[string]decimal.Decimal{
		"price_purchase":       input.PricePurchase,
		"price_selling":        input.PriceSelling,
		"price_selling_alt":    input.PriceSellingAlt,
		"price_purchase_ex":    input.PricePurchaseEx,
		"price_selling_ex":     input.PriceSellingEx,
		"price_selling_alt_ex": input.PriceSellingAltEx,
	} {
		if amount.IsNegative() {
			return fmt.Errorf("%s cannot be negative", field)
		}
	}
	input.PricePurchaseCurrency = normalizeCurrency(input.PricePurchaseCurrency)
	input.PriceSellingCurrency = normalizeCurrency(input.PriceSellingCurrency)
	input.PriceSellingAltCurrency = normalizeCurrency(input.PriceSellingAltCurrency)
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, filter ProductListFilter) ([]domain.Product, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	base := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR
			identifier ILIKE '%' || $1 || '%' OR
			name ILIKE '%' || $1 || '%' OR
			name_short ILIKE '%' || $1 || '%' OR
			search_name ILIKE '%' || $1 || '%' OR
			unit ILIKE '%' || $1 || '%' OR
			supplier ILIKE '%' || $1 || '%' OR
			product_type ILIKE '%' || $1 || '%')
	`
	args := []any{search}
	argIndex := 2
	if productType := strings.TrimSpace(filter.ProductType); productType != "" {
		base += fmt.Sprintf(" AND product_type = $%d", argIndex)
		args = append(args, productType)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, input ProductInput) (domain.Product, error) {
	if err := input.validate(); err != nil {
		return domain.Product{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (
			identifier,
			name,
			name_short,
			search_name,
			unit,
			supplier,
			product_type,
			price_purchase,
			price_purchase_currency,
			price_selling,
			price_selling_currency,
			price_selling_alt,
			price_selling_alt_currency,
			price_purchase_ex,
			price_selling_ex,
			price_selling_alt_ex,
			tax_percentage
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+productColumns,
		normalizeNullable(input.Identifier),
		input.Name,
		normalizeNullable(input.NameShort),
		normalizeNullable(input.SearchName),
		normalizeNullable(input.Unit),
		normalizeNullable(input.Supplier),
		normalizeNullable(input.ProductType),
		input.PricePurchase,
		input.PricePurchaseCurrency,
		input.PriceSelling,
		input.PriceSellingCurrency,
		input.PriceSellingAlt,
		input.PriceSellingAltCurrency,
		input.PricePurchaseEx,
		input.PriceSellingEx,
		input.PriceSellingAltEx,
		input.TaxPercentage,
	)
	product, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET
			identifier = $2,
			name = $3,
			name_short = $4,
			search_name = $5,
			unit = $6,
			supplier = $7,
			product_type = $8,
			price_purchase = $9,
			price_purchase_currency = $10,
			price_selling = $11,
			price_selling_currency = $12,
			price_selling_alt = $13,
			price_selling_alt_currency = $14,
			price_purchase_ex = $15,
			price_selling_ex = $16,
			price_selling_alt_ex = $17,
			tax_percentage = $18,
			modified_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns,
		id,
		normalizeNullable(input.Identifier),
		input.Name,
		normalizeNullable(input.NameShort),
		normalizeNullable(input.SearchName),
		normalizeNullable(input.Unit),
		normalizeNullable(input.Supplier),
		normalizeNullable(input.ProductType),
		input.PricePurchase,
		input.PricePurchaseCurrency,
		input.PriceSelling,
		input.PriceSellingCurrency,
		input.PriceSellingAlt,
		input.PriceSellingAltCurrency,
		input.PricePurchaseEx,
		input.PriceSellingEx,
		input.PriceSellingAltEx,
		input.TaxPercentage,
	)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &product, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AutocompleteProducts(ctx context.Context, query string) ([]domain.ProductAutocompleteRow, error) {
	query = strings.TrimSpace(query)
	rows, err := r.pool.Query(ctx, `
		SELECT
			id,
			identifier,
			name,
			name_short,
			unit,
			price_purchase,
			price_selling
		FROM products
		WHERE
			identifier ILIKE '%' || $1 || '%' OR
			name ILIKE '%' || $1 || '%' OR
			name_short ILIKE '%' || $1 || '%' OR
			search_name ILIKE '%' || $1 || '%' OR
			unit ILIKE '%' || $1 || '%' OR
			supplier ILIKE '%' || $1 || '%' OR
			product_type ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("autocomplete products: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ProductAutocompleteRow, 0)
	for rows.Next() {
		var (
			row       domain.ProductAutocompleteRow
			nameShort *string
			unit      *string
		)
		if err := rows.Scan(
			&row.ID,
			&row.Identifier,
			&row.Name,
			&nameShort,
			&unit,
			&row.PricePurchase,
			&row.PriceSelling,
		); err != nil {
			return nil, fmt.Errorf("scan product autocomplete row: %w", err)
		}
		display := domain.Product{Name: row.Name, NameShort: nameShort}.ShowName()
		if unit != nil {
			row.Value = fmt.Sprintf("%s (%s)", display, *unit)
		} else {
			row.Value = display
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product autocomplete rows: %w", err)
	}
	return result, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Identifier,
		&p.Name,
		&p.NameShort,
		&p.SearchName,
		&p.Unit,
		&p.Supplier,
		&p.ProductType,
		&p.PricePurchase,
		&p.PricePurchaseCurrency,
		&p.PriceSelling,
		&p.PriceSellingCurrency,
		&p.PriceSellingAlt,
		&p.PriceSellingAltCurrency,
		&p.PricePurchaseEx,
		&p.PriceSellingEx,
		&p.PriceSellingAltEx,
		&p.TaxPercentage,
		&p.CreatedAt,
		&p.ModifiedAt,
	); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
