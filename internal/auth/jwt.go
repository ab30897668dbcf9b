package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const MinSecretLength = 32

type Claims struct {
	ExplorerID string `json:"explorer_id"`
	Name       string `json:"name"`
	Provider   string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies explorer session tokens with HS256
type TokenManager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, expiration time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("JWT secret must be at least %d characters long", MinSecretLength)
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("token expiration must be positive")
	}

	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

func (m *TokenManager) Generate(explorerID, name, provider string) (string, error) {
	now := m.now()

	claims := Claims{
		ExplorerID: explorerID,
		Name:       name,
		Provider:   provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   explorerID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ExplorerID == "" {
		return nil, fmt.Errorf("token has no explorer")
	}

	return claims, nil
}
