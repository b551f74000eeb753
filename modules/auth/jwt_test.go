package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 7 * 24 * time.Hour,
		Issuer:        "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidateToken(t *testing.T) {
	config := testJWTConfig()
	manager := NewJWTManager(config)

	token, err := manager.GenerateToken("user-123", "maria@example.com", "Maria")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Email != "maria@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "maria@example.com")
	}
	if claims.Name != "Maria" {
		t.Errorf("claims.Name = %v, want %v", claims.Name, "Maria")
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
}

func TestJWTManager_ValidForSevenDays(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken("user-1", "a@example.com", "A")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	manager.now = func() time.Time { return issued.Add(7*24*time.Hour - time.Minute) }
	if _, err := manager.ValidateToken(token); err != nil {
		t.Errorf("token should still be valid just before seven days, got %v", err)
	}

	manager.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken after seven days, got %v", err)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err != ErrInvalidToken {
				t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	config1 := testJWTConfig()
	config2 := testJWTConfig()
	config2.SecretKey = "another-secret"

	token, err := NewJWTManager(config1).GenerateToken("user-123", "test@example.com", "Test")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := NewJWTManager(config2).ValidateToken(token); err == nil {
		t.Error("ValidateToken() should fail with different secret key")
	}
}

func TestJWTManager_RejectsUnsignedToken(t *testing.T) {
	claims := JWTClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := NewJWTManager(testJWTConfig()).ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}
