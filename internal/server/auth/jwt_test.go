package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateAccessKey(RoleAnon, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessKey error: %v", err)
	}

	role, err := ParseAccessKey(tok, secret)
	if err != nil {
		t.Fatalf("ParseAccessKey error: %v", err)
	}
	if role != RoleAnon {
		t.Fatalf("role mismatch: got %q want %q", role, RoleAnon)
	}
}

func TestGenerate_NoExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := GenerateAccessKey(RoleService, secret, 0)
	if err != nil {
		t.Fatalf("GenerateAccessKey error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) { return secret, nil }); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no expiry, got %v", claims.ExpiresAt)
	}
}

func TestParseAccessKey_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateAccessKey(RoleAnon, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAccessKey error: %v", err)
	}

	_, err = ParseAccessKey(tok, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseAccessKey_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateAccessKey(RoleAnon, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessKey error: %v", err)
	}

	_, err = ParseAccessKey(tok, []byte("wrong-secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseAccessKey_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseAccessKey("not-a-jwt", []byte("s")); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseAccessKey_MissingRole(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := GenerateAccessKey("", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessKey error: %v", err)
	}
	if _, err := ParseAccessKey(tok, secret); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
