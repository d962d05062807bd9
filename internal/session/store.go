// Package session holds the authenticated-identity store. The snapshot is
// written once at login, read by every protected request, and deleted at
// logout; there is no refresh or extension path.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrNotFound is returned when no session exists for the given ID, whether
// it never existed, expired, or was revoked by logout.
var ErrNotFound = errors.New("session not found")

// Store persists session snapshots keyed by token ID.
type Store interface {
	Put(ctx context.Context, id string, sess domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
