package httpapi

import (
	"testing"
	"time"
)

func newTestAuth(t *testing.T) *AuthManager {
	t.Helper()
	auth, err := NewAuthManager("0123456789abcdef0123456789abcdef", time.Minute, "demo", "demo-password")
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}
	return auth
}

func TestLoginAndParseToken(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login(LoginRequest{Username: "demo", Password: "demo-password"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if actor.Username != "demo" {
		t.Fatalf("expected demo actor, got %q", actor.Username)
	}
}

func TestLoginNormalizesUsername(t *testing.T) {
	auth := newTestAuth(t)
	if _, err := auth.Login(LoginRequest{Username: "  DEMO ", Password: "demo-password"}); err != nil {
		t.Fatalf("case-insensitive login failed: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.Login(LoginRequest{Username: "demo", Password: "wrong"}); err == nil {
		t.Fatalf("wrong password must fail")
	}
	if _, err := auth.Login(LoginRequest{Username: "ghost", Password: "demo-password"}); err == nil {
		t.Fatalf("unknown user must fail")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatalf("garbage token must fail")
	}

	other, err := NewAuthManager("ffffffffffffffffffffffffffffffff", time.Minute, "demo", "demo-password")
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}
	resp, err := other.Login(LoginRequest{Username: "demo", Password: "demo-password"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := auth.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("token signed with another secret must fail")
	}
}

func TestNewAuthManagerValidation(t *testing.T) {
	if _, err := NewAuthManager("", time.Minute, "demo", "pw"); err == nil {
		t.Fatalf("empty secret must fail")
	}
	if _, err := NewAuthManager("secret", time.Minute, "", "pw"); err == nil {
		t.Fatalf("empty username must fail")
	}
	if _, err := NewAuthManager("secret", time.Minute, "demo", ""); err == nil {
		t.Fatalf("empty password must fail")
	}
}
