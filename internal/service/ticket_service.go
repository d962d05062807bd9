package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/ticketfilter"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// CreateInput describes a ticket creation payload. Any status supplied by
// the caller is ignored; new tickets always start open.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TicketPriority
}

// Create submits a ticket owned by the given user. Status is forced to
// open; priority defaults to medium.
func (s *TicketService) Create(ctx context.Context, owner domain.User, input CreateInput) (*domain.Ticket, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)

	missing := map[string]any{}
	for field, val := range map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
	} {
		if val == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		UserID:      owner.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	// The returned record always carries the owner's identity, regardless
	// of whether the backend attached it during the insert.
	if ticket.Owner == nil {
		snapshot := owner.Snapshot()
		ticket.Owner = &snapshot
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{Role: owner.Role, UserID: owner.ID},
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListForUser returns the user's own tickets, newest first, with the given
// filters applied.
func (s *TicketService) ListForUser(ctx context.Context, userID string, params ticketfilter.Params) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.ListFilter{OwnerID: userID})
	if err != nil {
		return nil, err
	}
	return ticketfilter.Apply(tickets, params), nil
}

// ListAll returns every ticket, newest first, with the given filters
// applied. Admin view.
func (s *TicketService) ListAll(ctx context.Context, params ticketfilter.Params) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	return ticketfilter.Apply(tickets, params), nil
}

// GetForUser fetches a ticket, reporting not-found for tickets the user
// does not own.
func (s *TicketService) GetForUser(ctx context.Context, userID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
	}
	return ticket, nil
}

// Get fetches any ticket. Admin view.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, ticketID)
}

// UpdateInput carries the admin's partial update; nil fields are left
// untouched.
type UpdateInput struct {
	Status        *domain.TicketStatus
	AdminResponse *string
}

// Update applies a status change and/or response to a ticket. Transitions
// are unconstrained; updated_at is always refreshed.
func (s *TicketService) Update(ctx context.Context, actor domain.User, ticketID string, input UpdateInput) (*domain.Ticket, error) {
	if input.Status == nil && input.AdminResponse == nil {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
	}

	before, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	updated, err := s.tickets.Update(ctx, ticketID, repository.TicketUpdate{
		Status:        input.Status,
		AdminResponse: input.AdminResponse,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: updated.ID,
		Actor:    events.Actor{Role: actor.Role, UserID: actor.ID},
		Payload: events.TicketUpdatedPayload{
			OldStatus:   before.Status,
			NewStatus:   updated.Status,
			HasResponse: updated.AdminResponse != "",
		},
	})
	return updated, nil
}

// Stats summarizes ticket counts by status for the admin dashboard header.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// Stats counts tickets per status across the full set.
func (s *TicketService) Stats(ctx context.Context) (*Stats, error) {
	tickets, err := s.tickets.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(tickets)}
	for _, ticket := range tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
