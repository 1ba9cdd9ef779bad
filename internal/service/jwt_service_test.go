package service

import (
	"errors"
	"testing"
	"time"
)

func TestJWT_GenerateAndParseRoundtrip(t *testing.T) {
	svc := NewJWTService("secreto-de-test", 15*time.Minute)

	token, err := svc.GenerateAccessToken("user-1", "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secreto-a", time.Minute)
	verifier := NewJWTService("secreto-b", time.Minute)

	token, err := issuer.GenerateAccessToken("user-1", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for a foreign secret, got %v", err)
	}
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secreto-de-test", time.Minute)
	svc.accessTTL = -time.Minute

	token, err := svc.GenerateAccessToken("user-1", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("secreto-de-test", time.Minute)
	for _, raw := range []string{"", "   ", "no.es.jwt"} {
		if _, err := svc.ParseAccessToken(raw); !errors.Is(err, ErrJWTInvalid) {
			t.Fatalf("expected ErrJWTInvalid for %q, got %v", raw, err)
		}
	}
}
