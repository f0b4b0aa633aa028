package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT bearer token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// GenerateToken generates a bearer token embedding the account ID and role.
// The token is valid for the configured fixed window (1 day by default).
func (tg *TokenGenerator) GenerateToken(accountID int, role int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"role":       role,
		"exp":        now.Add(tg.tokenExpiry).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a bearer token and returns the accountID and role.
// Expired or tampered tokens are rejected.
func (tg *TokenGenerator) ValidateToken(tokenString string) (int, int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return 0, 0, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, fmt.Errorf("invalid token claims")
	}

	// Extract accountID (JWT claims decode numbers as float64)
	accountID, ok := claims["account_id"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("account_id not found in token")
	}

	// Extract role (JWT claims decode numbers as float64)
	role, ok := claims["role"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("role not found in token")
	}

	return int(accountID), int(role), nil
}
