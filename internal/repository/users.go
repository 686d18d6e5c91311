package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchasing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// EnsureDefaultUser creates a planning user "admin" when the users table is
// empty, so a fresh install can log in and create real accounts.
func (r *Repository) EnsureDefaultUser(ctx context.Context) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users)").Scan(&exists); err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if exists {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
	`, "admin", string(hash), "planning"); err != nil {
		return fmt.Errorf("create default user: %w", err)
	}
	return nil
}

// AuthenticateUser returns nil without error when the credentials do not
// match, so callers can distinguish bad credentials from storage failures.
func (r *Repository) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	var (
		user domain.User
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, role, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Role, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate user query: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	role = strings.ToLower(strings.TrimSpace(role))
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user domain.User
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, role
	`, username, string(hash), role).Scan(&user.ID, &user.Username, &user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username already taken: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, role
		FROM users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
