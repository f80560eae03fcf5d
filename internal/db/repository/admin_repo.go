package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin is an administrator account record.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// AdminRepository manages administrator accounts.
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByEmail fetches an admin by lowercased email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := r.pool.QueryRow(ctx,
		`SELECT admin_id, email, password_hash, created_at, last_login_at
		 FROM admins WHERE email = $1`, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// Create inserts a new admin account. Email uniqueness is schema-enforced;
// a duplicate insert is reported as-is for the caller to interpret.
func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) (Admin, error) {
	a := Admin{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (admin_id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		a.ID, a.Email, a.PasswordHash,
	).Scan(&a.CreatedAt)
	if err != nil {
		return Admin{}, fmt.Errorf("create admin: %w", err)
	}
	return a, nil
}

// UpdateLastLogin records a successful login.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx,
		"UPDATE admins SET last_login_at = now() WHERE admin_id = $1", id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
