package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Status is not accepted; new tickets always
// start open.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload for the admin update. Absent fields keep
// their prior values.
type UpdateTicketRequest struct {
	Status        *domain.TicketStatus `json:"status"`
	AdminResponse *string              `json:"admin_response"`
}

// TicketResponse is the full ticket shape including the owner join.
type TicketResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	UserID        string                `json:"user_id"`
	AdminResponse string                `json:"admin_response,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Owner         *UserResponse         `json:"user,omitempty"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Category:      ticket.Category,
		Priority:      ticket.Priority,
		Status:        ticket.Status,
		UserID:        ticket.UserID,
		AdminResponse: ticket.AdminResponse,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
	if ticket.Owner != nil {
		owner := NewUserResponse(*ticket.Owner)
		resp.Owner = &owner
	}
	return resp
}

// NewTicketResponses maps a ticket list.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(tickets[i]))
	}
	return items
}
