// Package repository defines persistence access for the credential and
// ticket stores. Two interchangeable backends implement these interfaces:
// Postgres (hosted) and an in-memory fallback. The backend is chosen once
// at startup and injected; nothing downstream probes which one is active.
package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserRepository defines persistence access for registered users. Users
// are created at registration and never updated or deleted.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByNIP(ctx context.Context, nip string) (*domain.User, error)
}

// ListFilter narrows ticket listing. A zero value lists everything (the
// admin view); OwnerID restricts to a single user's tickets.
type ListFilter struct {
	OwnerID string
}

// TicketUpdate carries the admin's partial update. Nil fields keep their
// prior values.
type TicketUpdate struct {
	Status        *domain.TicketStatus
	AdminResponse *string
}

// TicketRepository encapsulates ticket persistence. Every read joins the
// owner's identity fields; List orders by creation time descending.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, id string, update TicketUpdate) (*domain.Ticket, error)
}
