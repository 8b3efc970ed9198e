package auth

import (
	"testing"
	"time"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("motdepasse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "motdepasse" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPasswordHash("motdepasse", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("autre", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateJWTClaims(t *testing.T) {
	token, err := GenerateJWT("secret", 7, "teacher", "t@example.com", "Marie", "Curie")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT("secret", token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}

	if claims.ID != 7 {
		t.Errorf("id = %d, want 7", claims.ID)
	}
	if claims.Role != "teacher" {
		t.Errorf("role = %q, want teacher", claims.Role)
	}
	if claims.Email != "t@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.FirstName != "Marie" || claims.LastName != "Curie" {
		t.Errorf("name = %q %q", claims.FirstName, claims.LastName)
	}
	if claims.RegisteredClaims.ID == "" {
		t.Error("missing jti claim")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < TokenTTL-time.Minute || ttl > TokenTTL {
		t.Errorf("token ttl = %v, want about %v", ttl, TokenTTL)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", 1, "student", "s@example.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT("autre-secret", token); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}
