package services

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	s := NewAuthService("secret", time.Hour)

	hash, err := s.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := s.CheckPasswordHash("correct horse battery staple", hash); err != nil {
		t.Fatalf("CheckPasswordHash rejected correct password: %v", err)
	}
	if err := s.CheckPasswordHash("wrong", hash); err == nil {
		t.Fatal("CheckPasswordHash accepted wrong password")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	s := NewAuthService("secret", time.Hour)

	first, err := s.HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := s.HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical, salting is broken")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	s := NewAuthService("super-secret", time.Hour)

	token, err := s.GenerateToken("user@example.com", "user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "user@example.com")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	s := NewAuthService("super-secret", -1*time.Second)

	token, err := s.GenerateToken("user@example.com", "user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := s.ValidateToken(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewAuthService("right-secret", time.Hour)
	verifier := NewAuthService("wrong-secret", time.Hour)

	token, err := issuer.GenerateToken("user@example.com", "user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret, got nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	s := NewAuthService("secret", time.Hour)

	if _, err := s.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}
