package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type SupplierListFilter struct {
	Search string
	Limit  int
	Offset int
}

type SupplierInput struct {
	Identifier  *string
	Name        string
	Address     *string
	Postal      *string
	City        *string
	State       *string
	CountryCode string
	Tel         *string
	Mobile      *string
	Email       *string
	Contact     *string
	Remarks     *string
	Lat         *float64
	Lon         *float64
}

const supplierColumns = `
	id,
	identifier,
	name,
	address,
	postal,
	city,
	state,
	country_code,
	tel,
	mobile,
	email,
	contact,
	remarks,
	lat,
	lon,
	created_at,
	modified_at
`

func (input *SupplierInput) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("name is required")
	}
	input.CountryCode = strings.ToUpper(strings.TrimSpace(input.CountryCode))
	if input.CountryCode == "" {
		input.CountryCode = "NL"
	}
	if len(input.CountryCode) != 2 {
		return fmt.Errorf("country_code must be a 2-letter code")
	}
	return nil
}

func (r *Repository) ListSuppliers(ctx context.Context, filter SupplierListFilter) ([]domain.Supplier, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	rows, err := r.pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE ($1 = '' OR
			name ILIKE '%' || $1 || '%' OR
			city ILIKE '%' || $1 || '%' OR
			identifier ILIKE '%' || $1 || '%' OR
			email ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0, limit)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *Repository) GetSupplierByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE id = $1
	`, id)
	supplier, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get supplier %d: %w", id, err)
	}
	return &supplier, nil
}

func (r *Repository) CreateSupplier(ctx context.Context, input SupplierInput) (domain.Supplier, error) {
	if err := input.validate(); err != nil {
		return domain.Supplier{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (
			identifier,
			name,
			address,
			postal,
			city,
			state,
			country_code,
			tel,
			mobile,
			email,
			contact,
			remarks,
			lat,
			lon
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+supplierColumns,
		normalizeNullable(input.Identifier),
		input.Name,
		normalizeNullable(input.Address),
		normalizeNullable(input.Postal),
		normalizeNullable(input.City),
		normalizeNullable(input.State),
		input.CountryCode,
		normalizeNullable(input.Tel),
		normalizeNullable(input.Mobile),
		normalizeNullable(input.Email),
		normalizeNullable(input.Contact),
		normalizeNullable(input.Remarks),
		input.Lat,
		input.Lon,
	)
	supplier, err := scanSupplier(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Supplier{}, fmt.Errorf("supplier already exists: %w", ErrConflict)
		}
		return domain.Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (r *Repository) UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*domain.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET
			identifier = $2,
			name = $3,
			address = $4,
			postal = $5,
			city = $6,
			state = $7,
			country_code = $8,
			tel = $9,
			mobile = $10,
			email = $11,
			contact = $12,
			remarks = $13,
			lat = $14,
			lon = $15,
			modified_at = NOW()
		WHERE id = $1
		RETURNING `+supplierColumns,
		id,
		normalizeNullable(input.Identifier),
		input.Name,
		normalizeNullable(input.Address),
		normalizeNullable(input.Postal),
		normalizeNullable(input.City),
		normalizeNullable(input.State),
		input.CountryCode,
		normalizeNullable(input.Tel),
		normalizeNullable(input.Mobile),
		normalizeNullable(input.Email),
		normalizeNullable(input.Contact),
		normalizeNullable(input.Remarks),
		input.Lat,
		input.Lon,
	)
	supplier, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("supplier already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("update supplier %d: %w", id, err)
	}
	return &supplier, nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete supplier %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AutocompleteSuppliers(ctx context.Context, query string) ([]domain.SupplierAutocompleteRow, error) {
	query = strings.TrimSpace(query)
	rows, err := r.pool.Query(ctx, `
		SELECT
			id,
			identifier,
			name,
			postal,
			city,
			country_code,
			tel,
			mobile,
			email,
			contact,
			remarks
		FROM suppliers
		WHERE
			name ILIKE '%' || $1 || '%' OR
			address ILIKE '%' || $1 || '%' OR
			city ILIKE '%' || $1 || '%' OR
			email ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("autocomplete suppliers: %w", err)
	}
	defer rows.Close()

	result := make([]domain.SupplierAutocompleteRow, 0)
	for rows.Next() {
		var row domain.SupplierAutocompleteRow
		if err := rows.Scan(
			&row.ID,
			&row.Identifier,
			&row.Name,
			&row.Postal,
			&row.City,
			&row.CountryCode,
			&row.Tel,
			&row.Mobile,
			&row.Email,
			&row.Contact,
			&row.Remarks,
		); err != nil {
			return nil, fmt.Errorf("scan supplier autocomplete row: %w", err)
		}
		identifier := ""
		if row.Identifier != nil {
			identifier = *row.Identifier
		}
		city := ""
		if row.City != nil {
			city = *row.City
		}
		row.Value = fmt.Sprintf("(%s) %s, %s (%s)", identifier, row.Name, city, row.CountryCode)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplier autocomplete rows: %w", err)
	}
	return result, nil
}

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var s domain.Supplier
	if err := row.Scan(
		&s.ID,
		&s.Identifier,
		&s.Name,
		&s.Address,
		&s.Postal,
		&s.City,
		&s.State,
		&s.CountryCode,
		&s.Tel,
		&s.Mobile,
		&s.Email,
		&s.Contact,
		&s.Remarks,
		&s.Lat,
		&s.Lon,
		&s.CreatedAt,
		&s.ModifiedAt,
	); err != nil {
		return domain.Supplier{}, err
	}
	return s, nil
}
