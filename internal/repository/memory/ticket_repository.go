package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketRepository is the in-memory ticket store. It resolves owner joins
// against the in-memory credential store.
type TicketRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Ticket
	users *UserRepository
}

// NewTicketRepository returns an empty in-memory ticket store backed by the
// given credential store for owner joins.
func NewTicketRepository(users *UserRepository) *TicketRepository {
	return &TicketRepository{
		byID:  make(map[string]domain.Ticket),
		users: users,
	}
}

// Create inserts the ticket, generating an ID and timestamps, and attaches
// the owner's identity snapshot.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	owner, err := r.users.GetByID(ctx, ticket.UserID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	stored := *ticket
	stored.Owner = nil
	r.byID[stored.ID] = stored

	snapshot := owner.Snapshot()
	ticket.Owner = &snapshot
	return nil
}

// GetByID returns the ticket with its owner joined.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	ticket, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return r.withOwner(ctx, ticket)
}

// List returns tickets joined with their owners, newest first.
func (r *TicketRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	tickets := make([]domain.Ticket, 0, len(r.byID))
	for _, ticket := range r.byID {
		if filter.OwnerID != "" && ticket.UserID != filter.OwnerID {
			continue
		}
		tickets = append(tickets, ticket)
	}
	r.mu.RUnlock()

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})

	result := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		joined, err := r.withOwner(ctx, ticket)
		if err != nil {
			return nil, err
		}
		result = append(result, *joined)
	}
	return result, nil
}

// Update applies the supplied fields, leaving omitted ones untouched, and
// refreshes the updated-at timestamp. Last write wins; there is no
// conflict detection.
func (r *TicketRepository) Update(ctx context.Context, id string, update repository.TicketUpdate) (*domain.Ticket, error) {
	r.mu.Lock()
	ticket, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	if update.AdminResponse != nil {
		ticket.AdminResponse = *update.AdminResponse
	}
	ticket.UpdatedAt = time.Now().UTC()
	r.byID[id] = ticket
	r.mu.Unlock()

	return r.withOwner(ctx, ticket)
}

func (r *TicketRepository) withOwner(ctx context.Context, ticket domain.Ticket) (*domain.Ticket, error) {
	owner, err := r.users.GetByID(ctx, ticket.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := owner.Snapshot()
	ticket.Owner = &snapshot
	return &ticket, nil
}

var _ repository.TicketRepository = (*TicketRepository)(nil)
