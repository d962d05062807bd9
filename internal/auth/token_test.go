package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := domain.User{ID: "u1", NIP: "234567", Role: domain.RoleUser}

	token, sessionID, expiresAt, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if sessionID == "" {
		t.Fatal("no session id")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("already expired: %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != domain.RoleUser || claims.ID != sessionID {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, _, err := NewTokenManager("secret-a", time.Hour).GenerateToken(domain.User{ID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, _, err := tm.GenerateToken(domain.User{ID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("password stored in the clear")
	}
	if err := ComparePassword(hash, "secret1"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
