package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/repository/memory"
	"github.com/spec-kit/helpdesk-service/internal/ticketfilter"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newTicketService(t *testing.T) (*TicketService, domain.User) {
	t.Helper()
	users := memory.NewUserRepository()
	owner := domain.User{
		NIP:      "234567",
		Name:     "Teknisi Studio",
		Division: "Teknik Studio",
		Role:     domain.RoleUser,
	}
	if err := users.Create(context.Background(), &owner); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewTicketService(memory.NewTicketRepository(users), nil), owner
}

// bareTicketRepository behaves like the hosted backend's insert: it fills
// the generated identifier and timestamps but attaches no owner join.
type bareTicketRepository struct {
	created []domain.Ticket
}

func (r *bareTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = "t1"
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.created = append(r.created, *ticket)
	return nil
}

func (r *bareTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

func (r *bareTicketRepository) List(_ context.Context, _ repository.ListFilter) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *bareTicketRepository) Update(_ context.Context, id string, _ repository.TicketUpdate) (*domain.Ticket, error) {
	return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// The create contract attaches the owner's identity even when the backend
// leaves the join to the caller.
func TestCreateAttachesOwnerWithoutBackendJoin(t *testing.T) {
	owner := domain.User{
		ID:           "u1",
		NIP:          "234567",
		Name:         "Teknisi Studio",
		Division:     "Teknik Studio",
		Role:         domain.RoleUser,
		PasswordHash: "not-for-responses",
	}
	svc := NewTicketService(&bareTicketRepository{}, nil)

	ticket, err := svc.Create(context.Background(), owner, CreateInput{
		Title:       "PC tidak menyala",
		Description: "Komputer di ruang produksi mati total.",
		Category:    "Hardware",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Owner == nil {
		t.Fatal("created ticket missing the owner join")
	}
	if ticket.Owner.NIP != "234567" || ticket.Owner.Name != "Teknisi Studio" || ticket.Owner.Division != "Teknik Studio" {
		t.Fatalf("owner identity: %+v", ticket.Owner)
	}
	if ticket.Owner.PasswordHash != "" {
		t.Fatal("owner join leaked credential material")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, owner := newTicketService(t)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty title", CreateInput{Description: "d", Category: "c"}},
		{"empty description", CreateInput{Title: "t", Category: "c"}},
		{"empty category", CreateInput{Title: "t", Description: "d"}},
		{"whitespace only", CreateInput{Title: "  ", Description: "d", Category: "c"}},
		{"unknown priority", CreateInput{Title: "t", Description: "d", Category: "c", Priority: "critical"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), owner, tt.input)
			if !apperrors.IsCode(err, "VALIDATION_FAILED") {
				t.Fatalf("want VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestCreateForcesOpenStatus(t *testing.T) {
	svc, owner := newTicketService(t)

	ticket, err := svc.Create(context.Background(), owner, CreateInput{
		Title:       "PC tidak menyala",
		Description: "Komputer di ruang produksi mati total.",
		Category:    "Hardware",
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %q, want open", ticket.Status)
	}
	if ticket.Owner == nil || ticket.Owner.NIP != "234567" {
		t.Fatalf("owner not attached: %+v", ticket.Owner)
	}
}

func TestCreateDefaultsPriorityToMedium(t *testing.T) {
	svc, owner := newTicketService(t)

	ticket, err := svc.Create(context.Background(), owner, CreateInput{
		Title:       "Headphone rusak",
		Description: "Kabel putus sebelah.",
		Category:    "Peralatan Studio",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Fatalf("priority = %q, want medium", ticket.Priority)
	}
}

// A created ticket appears exactly once in the owner's list with matching
// field values and a generated identifier.
func TestCreateListRoundTrip(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateInput{
		Title:       "PC tidak menyala",
		Description: "Komputer di ruang produksi mati total.",
		Category:    "Hardware",
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := svc.ListForUser(ctx, owner.ID, ticketfilter.Params{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}

	matches := 0
	for _, ticket := range listed {
		if ticket.ID == created.ID {
			matches++
			if ticket.Title != "PC tidak menyala" || ticket.Category != "Hardware" ||
				ticket.Priority != domain.TicketPriorityHigh || ticket.Status != domain.TicketStatusOpen {
				t.Fatalf("listed ticket differs from created: %+v", ticket)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("created ticket appears %d times in list", matches)
	}
}

func TestListScopesByRole(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, owner, CreateInput{Title: "t1", Description: "d", Category: "c"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	own, err := svc.ListForUser(ctx, owner.ID, ticketfilter.Params{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	foreign, err := svc.ListForUser(ctx, "someone-else", ticketfilter.Params{})
	if err != nil {
		t.Fatalf("ListForUser foreign: %v", err)
	}
	all, err := svc.ListAll(ctx, ticketfilter.Params{})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(own) != 1 || len(foreign) != 0 || len(all) != 1 {
		t.Fatalf("scoping wrong: own=%d foreign=%d all=%d", len(own), len(foreign), len(all))
	}
}

func TestGetForUserHidesForeignTickets(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateInput{Title: "t", Description: "d", Category: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetForUser(ctx, owner.ID, created.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := svc.GetForUser(ctx, "someone-else", created.ID); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("foreign read: want NOT_FOUND, got %v", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()
	admin := domain.User{ID: "admin_1", Role: domain.RoleAdmin}

	created, err := svc.Create(ctx, owner, CreateInput{Title: "t", Description: "d", Category: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, admin, created.ID, UpdateInput{}); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("empty update: want VALIDATION_FAILED, got %v", err)
	}

	bogus := domain.TicketStatus("archived")
	if _, err := svc.Update(ctx, admin, created.ID, UpdateInput{Status: &bogus}); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("unknown status: want VALIDATION_FAILED, got %v", err)
	}

	status := domain.TicketStatusResolved
	if _, err := svc.Update(ctx, admin, "no-such-id", UpdateInput{Status: &status}); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("missing ticket: want NOT_FOUND, got %v", err)
	}
}

// The spec scenario: a user reports "PC tidak menyala", the admin resolves
// it with a response, and the user's view shows both changes.
func TestAdminResolveScenario(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()
	admin := domain.User{ID: "admin_1", Role: domain.RoleAdmin}

	created, err := svc.Create(ctx, owner, CreateInput{
		Title:       "PC tidak menyala",
		Description: "Komputer di ruang produksi mati total.",
		Category:    "Hardware",
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := created.UpdatedAt
	time.Sleep(2 * time.Millisecond)

	status := domain.TicketStatusResolved
	response := "Sudah diganti unit baru"
	updated, err := svc.Update(ctx, admin, created.ID, UpdateInput{Status: &status, AdminResponse: &response})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.TicketStatusResolved || updated.AdminResponse != "Sudah diganti unit baru" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.UpdatedAt.After(before) {
		t.Fatal("updated_at not refreshed")
	}

	seen, err := svc.GetForUser(ctx, owner.ID, created.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if seen.Status != domain.TicketStatusResolved || seen.AdminResponse != "Sudah diganti unit baru" {
		t.Fatalf("user view missing update: %+v", seen)
	}
}

func TestUpdateStatusOnlyKeepsResponse(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()
	admin := domain.User{ID: "admin_1", Role: domain.RoleAdmin}

	created, err := svc.Create(ctx, owner, CreateInput{Title: "t", Description: "d", Category: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	response := "Sedang dicek."
	if _, err := svc.Update(ctx, admin, created.ID, UpdateInput{AdminResponse: &response}); err != nil {
		t.Fatalf("set response: %v", err)
	}

	status := domain.TicketStatusClosed
	updated, err := svc.Update(ctx, admin, created.ID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("status-only update: %v", err)
	}
	if updated.AdminResponse != "Sedang dicek." {
		t.Fatalf("prior response lost: %q", updated.AdminResponse)
	}
}

func TestStats(t *testing.T) {
	svc, owner := newTicketService(t)
	ctx := context.Background()
	admin := domain.User{ID: "admin_1", Role: domain.RoleAdmin}

	ids := make([]string, 0, 3)
	for _, title := range []string{"a", "b", "c"} {
		ticket, err := svc.Create(ctx, owner, CreateInput{Title: title, Description: "d", Category: "c"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, ticket.ID)
	}
	inProgress := domain.TicketStatusInProgress
	if _, err := svc.Update(ctx, admin, ids[0], UpdateInput{Status: &inProgress}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	resolved := domain.TicketStatusResolved
	if _, err := svc.Update(ctx, admin, ids[1], UpdateInput{Status: &resolved}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Open != 1 || stats.InProgress != 1 || stats.Resolved != 1 || stats.Closed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
