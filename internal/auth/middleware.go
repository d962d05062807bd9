package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/policy"
	"github.com/spec-kit/helpdesk-service/internal/session"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const sessionKey = "auth_session"

// Middleware resolves bearer tokens to sessions and applies the access
// gate for protected routes.
type Middleware struct {
	tokens   *TokenManager
	sessions session.Store
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions session.Store) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions}
}

// Require returns a handler that admits only callers the policy gate
// allows for the given role. A zero role admits any authenticated caller.
func (m *Middleware) Require(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := m.resolveSession(c)
		decision := policy.Decide(sess, role)
		switch decision.Outcome {
		case policy.Allow:
			c.Locals(sessionKey, sess)
			return c.Next()
		case policy.RedirectHome:
			return apperrors.NewForbidden("role mismatch", map[string]any{"redirect": decision.Redirect})
		default:
			return apperrors.NewDomainError("AUTH_FAILED", "authentication required", fiber.StatusUnauthorized,
				map[string]any{"redirect": decision.Redirect})
		}
	}
}

// resolveSession extracts the bearer token, validates it, and loads the
// stored snapshot. Any failure yields a nil session; the policy gate turns
// that into a login redirect.
func (m *Middleware) resolveSession(c *fiber.Ctx) *domain.Session {
	header := c.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}
	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil
	}
	sess, err := m.sessions.Get(c.Context(), claims.ID)
	if err != nil {
		return nil
	}
	c.Locals(sessionIDKey, claims.ID)
	return sess
}

const sessionIDKey = "auth_session_id"

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	sess, ok := c.Locals(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}

// SessionIDFromContext retrieves the session store key for the caller's
// token, used by logout.
func SessionIDFromContext(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(sessionIDKey).(string)
	return id, ok && id != ""
}
