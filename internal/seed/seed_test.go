package seed

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/repository/memory"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func seededStores(t *testing.T) (*memory.UserRepository, *memory.TicketRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	tickets := memory.NewTicketRepository(users)
	if err := DemoData(context.Background(), users, tickets, 4, zap.NewNop()); err != nil {
		t.Fatalf("DemoData: %v", err)
	}
	return users, tickets
}

func TestDemoDataUsers(t *testing.T) {
	users, _ := seededStores(t)
	ctx := context.Background()

	admin, err := users.GetByNIP(ctx, "123456")
	if err != nil {
		t.Fatalf("admin fixture: %v", err)
	}
	if admin.Role != domain.RoleAdmin || admin.Name != "Admin Utama" || admin.Division != "IT" {
		t.Fatalf("admin fixture: %+v", admin)
	}

	user, err := users.GetByNIP(ctx, "234567")
	if err != nil {
		t.Fatalf("user fixture: %v", err)
	}
	if user.Role != domain.RoleUser || user.Name != "Teknisi Studio" || user.Division != "Teknik Studio" {
		t.Fatalf("user fixture: %+v", user)
	}

	// Fixture passwords are hashed, never stored in the clear, and must
	// verify against the documented demo credentials.
	for _, tt := range []struct {
		fixture  *domain.User
		password string
	}{
		{admin, "admin123"},
		{user, "test123"},
	} {
		if tt.fixture.PasswordHash == tt.password {
			t.Fatalf("fixture %s stores its password in the clear", tt.fixture.NIP)
		}
		if err := auth.ComparePassword(tt.fixture.PasswordHash, tt.password); err != nil {
			t.Fatalf("fixture %s password does not verify: %v", tt.fixture.NIP, err)
		}
	}
}

func TestDemoDataTickets(t *testing.T) {
	users, tickets := seededStores(t)
	ctx := context.Background()

	reporter, err := users.GetByNIP(ctx, "234567")
	if err != nil {
		t.Fatalf("reporter fixture: %v", err)
	}

	all, err := tickets.List(ctx, repository.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d seeded tickets, want 2", len(all))
	}

	byTitle := make(map[string]domain.Ticket, len(all))
	for _, ticket := range all {
		if ticket.UserID != reporter.ID {
			t.Fatalf("ticket %q not owned by the demo reporter: %+v", ticket.Title, ticket)
		}
		if ticket.Owner == nil || ticket.Owner.NIP != "234567" {
			t.Fatalf("ticket %q missing owner join: %+v", ticket.Title, ticket.Owner)
		}
		byTitle[ticket.Title] = ticket
	}

	open, ok := byTitle["Mikrophone Studio 3 Bermasalah"]
	if !ok {
		t.Fatal("open fixture ticket missing")
	}
	if open.Status != domain.TicketStatusOpen || open.Priority != domain.TicketPriorityHigh || open.AdminResponse != "" {
		t.Fatalf("open fixture: %+v", open)
	}

	inProgress, ok := byTitle["Komputer Editing Lambat"]
	if !ok {
		t.Fatal("in-progress fixture ticket missing")
	}
	if inProgress.Status != domain.TicketStatusInProgress || inProgress.Priority != domain.TicketPriorityMedium {
		t.Fatalf("in-progress fixture: %+v", inProgress)
	}
	if inProgress.AdminResponse != "Sedang dalam pengecekan hardware, kemungkinan perlu upgrade RAM." {
		t.Fatalf("in-progress fixture response: %q", inProgress.AdminResponse)
	}
}

func TestDemoDataFailsOnOccupiedStore(t *testing.T) {
	users := memory.NewUserRepository()
	tickets := memory.NewTicketRepository(users)

	existing := &domain.User{NIP: "123456", Name: "Sudah Ada", Division: "Umum", Role: domain.RoleUser}
	if err := users.Create(context.Background(), existing); err != nil {
		t.Fatalf("pre-existing user: %v", err)
	}

	err := DemoData(context.Background(), users, tickets, 4, zap.NewNop())
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("want CONFLICT on occupied store, got %v", err)
	}
}
