// Package ticketfilter narrows an already-fetched ticket list by free-text
// search, status, and priority. Listing always returns the full set; the
// three filters are applied in memory, mirroring how the dashboard views
// consume them.
package ticketfilter

import (
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// All disables a status or priority filter.
const All = "all"

// Params are the three independent filter dimensions. Zero values (or
// "all") leave a dimension unconstrained; active filters combine with
// logical AND.
type Params struct {
	Search   string
	Status   string
	Priority string
}

// Active reports whether any dimension constrains the result.
func (p Params) Active() bool {
	return strings.TrimSpace(p.Search) != "" ||
		(p.Status != "" && p.Status != All) ||
		(p.Priority != "" && p.Priority != All)
}

// Apply returns the subset of tickets satisfying all active filters. The
// input order is preserved; the input slice is not modified.
func Apply(tickets []domain.Ticket, params Params) []domain.Ticket {
	if !params.Active() {
		return tickets
	}
	result := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if Match(ticket, params) {
			result = append(result, ticket)
		}
	}
	return result
}

// Match reports whether a single ticket satisfies all active filters.
func Match(ticket domain.Ticket, params Params) bool {
	if params.Status != "" && params.Status != All && string(ticket.Status) != params.Status {
		return false
	}
	if params.Priority != "" && params.Priority != All && string(ticket.Priority) != params.Priority {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(params.Search))
	if search == "" {
		return true
	}
	return matchesSearch(ticket, search)
}

// matchesSearch checks the free-text term case-insensitively against the
// ticket's title and description and the owner's name, NIP, and division.
func matchesSearch(ticket domain.Ticket, search string) bool {
	fields := []string{ticket.Title, ticket.Description}
	if ticket.Owner != nil {
		fields = append(fields, ticket.Owner.Name, ticket.Owner.NIP, ticket.Owner.Division)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
