package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RegisterRequest payload for new users. PasswordConfirm is checked and
// discarded, never persisted.
type RegisterRequest struct {
	Name            string `json:"name"`
	NIP             string `json:"nip"`
	Division        string `json:"division"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest payload for employee login.
type LoginRequest struct {
	NIP      string `json:"nip"`
	Password string `json:"password"`
}

// AdminLoginRequest payload for the separate admin login path.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public shape of a user record.
type UserResponse struct {
	ID        string      `json:"id"`
	NIP       string      `json:"nip"`
	Name      string      `json:"name"`
	Division  string      `json:"division"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse standard response for login endpoints.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		NIP:       user.NIP,
		Name:      user.Name,
		Division:  user.Division,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
