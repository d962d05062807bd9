// Package memory implements the fallback stores used when no Postgres DSN
// is configured: process-wide maps guarded by mutexes, seeded with demo
// fixtures. Contents do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserRepository is the in-memory credential store.
type UserRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	byNIP map[string]string
}

// NewUserRepository returns an empty in-memory credential store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:  make(map[string]domain.User),
		byNIP: make(map[string]string),
	}
}

// Create inserts the user, generating an ID and creation timestamp. Returns
// a conflict error when the NIP is already registered; the store is left
// unchanged in that case.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNIP[user.NIP]; exists {
		return apperrors.NewConflict("nip already registered", map[string]any{"nip": user.NIP})
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.byID[user.ID] = *user
	r.byNIP[user.NIP] = user.ID
	return nil
}

// GetByID looks a user up by identifier.
func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return &user, nil
}

// GetByNIP looks a user up by employee number.
func (r *UserRepository) GetByNIP(_ context.Context, nip string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNIP[nip]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	user := r.byID[id]
	return &user, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
