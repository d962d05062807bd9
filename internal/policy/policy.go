// Package policy holds the access-control gate for protected routes as a
// pure function, so role checks live in one tested place instead of being
// duplicated per view.
package policy

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Outcome is the gate's verdict.
type Outcome int

const (
	// Allow grants access.
	Allow Outcome = iota
	// RedirectLogin denies access because no session exists.
	RedirectLogin
	// RedirectHome denies access because the session's role does not match;
	// the caller is sent to their own home view.
	RedirectHome
)

// Decision carries the verdict and, for denials, where to send the caller.
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Home maps a role to its home route.
func Home(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}

// Decide evaluates (session, required role). A zero required role means any
// authenticated caller is allowed. No side effects.
func Decide(session *domain.Session, required domain.Role) Decision {
	if session == nil {
		return Decision{Outcome: RedirectLogin, Redirect: "/login"}
	}
	if required == "" || session.User.Role == required {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: RedirectHome, Redirect: Home(session.User.Role)}
}
