package util

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "expense-manager", 42, TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, token, TokenAccess)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.TokenType != TokenAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenAccess)
	}
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	token, err := GenerateToken(testSecret, "expense-manager", 42, TokenRefresh, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// a refresh token must never pass as an access token
	if _, err := ParseToken(testSecret, token, TokenAccess); err == nil {
		t.Error("expected error for wrong token type, got nil")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "expense-manager", 42, TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken("other-secret", token, TokenAccess); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "expense-manager", 42, TokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(testSecret, token, TokenAccess); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}
