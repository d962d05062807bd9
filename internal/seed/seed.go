// Package seed loads demo fixtures into the in-memory backend so the
// service is usable out of the box without a database.
package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository/memory"
)

// DemoData inserts the demo users and tickets. Called only for the memory
// backend; a hosted database is seeded through its own tooling.
func DemoData(ctx context.Context, users *memory.UserRepository, tickets *memory.TicketRepository, bcryptCost int, logger *zap.Logger) error {
	adminHash, err := auth.HashPassword("admin123", bcryptCost)
	if err != nil {
		return err
	}
	userHash, err := auth.HashPassword("test123", bcryptCost)
	if err != nil {
		return err
	}

	demoUsers := []*domain.User{
		{
			NIP:          "123456",
			Name:         "Admin Utama",
			Division:     "IT",
			Email:        "admin@rri.co.id",
			Phone:        "08123456789",
			Role:         domain.RoleAdmin,
			PasswordHash: adminHash,
		},
		{
			NIP:          "234567",
			Name:         "Teknisi Studio",
			Division:     "Teknik Studio",
			Email:        "teknisi@rri.co.id",
			Phone:        "08234567890",
			Role:         domain.RoleUser,
			PasswordHash: userHash,
		},
	}
	for _, user := range demoUsers {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}

	reporter := demoUsers[1]
	demoTickets := []*domain.Ticket{
		{
			Title:       "Mikrophone Studio 3 Bermasalah",
			Description: "Mikrophone di studio 3 menghasilkan suara mendengung dan tidak jernih saat digunakan untuk siaran.",
			Category:    "Peralatan Studio",
			Priority:    domain.TicketPriorityHigh,
			Status:      domain.TicketStatusOpen,
			UserID:      reporter.ID,
		},
		{
			Title:         "Komputer Editing Lambat",
			Description:   "PC untuk editing audio di ruang produksi sangat lambat, menghambat proses editing program.",
			Category:      "Komputer & Software",
			Priority:      domain.TicketPriorityMedium,
			Status:        domain.TicketStatusInProgress,
			UserID:        reporter.ID,
			AdminResponse: "Sedang dalam pengecekan hardware, kemungkinan perlu upgrade RAM.",
		},
	}
	for _, ticket := range demoTickets {
		if err := tickets.Create(ctx, ticket); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded",
		zap.Int("users", len(demoUsers)),
		zap.Int("tickets", len(demoTickets)))
	return nil
}
