package checkout

import (
	"fmt"
	"time"

	"parkpass/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionTokenClaims scope a checkout session to the client that opened it
type SessionTokenClaims struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager mints and parses checkout session tokens. The token carries no
// user identity; it only proves the caller created the session it names.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Session.TokenSecret),
		ttl:    cfg.Session.TokenTTL,
	}
}

// Issue signs a token for a freshly created session
func (tm *TokenManager) Issue(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionTokenClaims{
		SessionID: sessionID.String(),
		Type:      "checkout",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the session ID it scopes
func (tm *TokenManager) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(*SessionTokenClaims)
	if !ok || claims.Type != "checkout" {
		return uuid.Nil, fmt.Errorf("invalid session token claims")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id in token")
	}
	return sessionID, nil
}
