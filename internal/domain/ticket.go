package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Transitions are
// deliberately unconstrained: an admin may move a ticket between any two
// states, including reopening a closed one.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for a single reported technical issue. Owner is
// the denormalized identity of the submitting user, attached on every read
// so list views never need a second lookup.
type Ticket struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Priority      TicketPriority
	Status        TicketStatus
	UserID        string
	AdminResponse string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Owner *User
}
