package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Postgres unique_violation code.
const uniqueViolation = "23505"

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed credential store. Backend
// failures are translated to domain errors at this boundary.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (nip, name, division, email, phone, role, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		user.NIP,
		user.Name,
		user.Division,
		user.Email,
		user.Phone,
		user.Role,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.NewConflict("nip already registered", map[string]any{"nip": user.NIP})
		}
		return apperrors.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, nip, name, division, COALESCE(email, ''), COALESCE(phone, ''), role, password_hash, created_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByNIP(ctx context.Context, nip string) (*domain.User, error) {
	const query = `
        SELECT id, nip, name, division, COALESCE(email, ''), COALESCE(phone, ''), role, password_hash, created_at
        FROM users WHERE nip=$1`
	return r.fetchSingle(ctx, query, nip)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.NIP,
		&user.Name,
		&user.Division,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewStoreError(err)
	}
	return &user, nil
}
