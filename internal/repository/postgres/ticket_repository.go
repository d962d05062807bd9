package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const ticketColumns = `
        t.id, t.title, t.description, t.category, t.priority, t.status,
        t.user_id, COALESCE(t.admin_response, ''), t.created_at, t.updated_at,
        u.id, u.nip, u.name, u.division, COALESCE(u.email, ''), COALESCE(u.phone, ''), u.role, u.created_at`

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository returns a Postgres-backed ticket store.
func NewTicketRepository(pool *pgxpool.Pool) repository.TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, category, priority, status, user_id, admin_response)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.UserID,
		ticket.AdminResponse,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return apperrors.NewStoreError(err)
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
        FROM tickets t JOIN users u ON u.id = t.user_id
        WHERE t.id=$1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreError(err)
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
        FROM tickets t JOIN users u ON u.id = t.user_id`
	args := []any{}
	if filter.OwnerID != "" {
		query += ` WHERE t.user_id=$1`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, apperrors.NewStoreError(err)
		}
		result = append(result, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return result, nil
}

func (r *ticketRepository) Update(ctx context.Context, id string, update repository.TicketUpdate) (*domain.Ticket, error) {
	// Omitted fields keep their prior values; updated_at always advances.
	const query = `
        UPDATE tickets SET
            status = COALESCE($1, status),
            admin_response = COALESCE($2, admin_response),
            updated_at = NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, update.Status, update.AdminResponse, id)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return r.GetByID(ctx, id)
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var owner domain.User
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.UserID,
		&ticket.AdminResponse,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&owner.ID,
		&owner.NIP,
		&owner.Name,
		&owner.Division,
		&owner.Email,
		&owner.Phone,
		&owner.Role,
		&owner.CreatedAt,
	); err != nil {
		return nil, err
	}
	ticket.Owner = &owner
	return &ticket, nil
}
