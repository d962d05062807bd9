package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/session"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates registration, the two login paths, and logout.
type AuthService struct {
	cfg        config.AuthConfig
	users      repository.UserRepository
	sessions   session.Store
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Sessions   session.Store
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		cfg:        cfg,
		users:      deps.Users,
		sessions:   deps.Sessions,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name            string
	NIP             string
	Division        string
	Email           string
	Phone           string
	Password        string
	PasswordConfirm string
}

// Register creates a new user with role fixed to "user". It does not
// establish a session; the user logs in separately.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.NIP = strings.TrimSpace(input.NIP)
	input.Division = strings.TrimSpace(input.Division)

	missing := map[string]any{}
	for field, val := range map[string]string{
		"name":     input.Name,
		"nip":      input.NIP,
		"division": input.Division,
		"password": input.Password,
	} {
		if val == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	if input.Password != input.PasswordConfirm {
		return nil, apperrors.NewValidationError("password confirmation does not match", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	user := &domain.User{
		NIP:          input.NIP,
		Name:         input.Name,
		Division:     input.Division,
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         domain.RoleUser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{Role: user.Role, UserID: user.ID},
		Payload: events.UserRegisteredPayload{
			NIP:      user.NIP,
			Name:     user.Name,
			Division: user.Division,
		},
	})

	snapshot := user.Snapshot()
	return &snapshot, nil
}

// LoginResult carries the session user and its bearer token.
type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// Login authenticates an employee by NIP and password and opens a session.
// When a demo bypass password is configured, it is accepted in addition to
// the real one.
func (s *AuthService) Login(ctx context.Context, nip, password string) (*LoginResult, error) {
	if strings.TrimSpace(nip) == "" || password == "" {
		return nil, apperrors.NewValidationError("nip and password required", nil)
	}

	user, err := s.users.GetByNIP(ctx, strings.TrimSpace(nip))
	if err != nil {
		return nil, err
	}

	if auth.ComparePassword(user.PasswordHash, password) != nil && !s.bypassMatches(password) {
		return nil, apperrors.NewAuthError("invalid password")
	}

	return s.openSession(ctx, user.Snapshot())
}

// LoginAdmin authenticates against the configured admin credential pair and
// synthesizes the fixed admin identity. The user store is never consulted.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		return nil, apperrors.NewAuthError("invalid admin credentials")
	}

	admin := domain.User{
		ID:       "admin_1",
		NIP:      "ADMIN001",
		Name:     "Administrator",
		Division: "IT",
		Role:     domain.RoleAdmin,
	}
	return s.openSession(ctx, admin)
}

// Logout deletes the session; the token is unusable afterwards even before
// its expiry.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.NewStoreError(err)
	}
	return nil
}

func (s *AuthService) openSession(ctx context.Context, user domain.User) (*LoginResult, error) {
	token, sessionID, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	sess := domain.Session{User: user, IssuedAt: time.Now().UTC()}
	if err := s.sessions.Put(ctx, sessionID, sess, s.tokens.TTL()); err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) bypassMatches(password string) bool {
	return s.cfg.DemoBypassPassword != "" &&
		subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.DemoBypassPassword)) == 1
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
