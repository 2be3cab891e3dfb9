package media

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenMinter creates signed room-access tokens in the media server's
// video-grant format.
type TokenMinter struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
}

func NewTokenMinter(apiKey, apiSecret string, ttl time.Duration) *TokenMinter {
	return &TokenMinter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       ttl,
	}
}

// Mint signs a join token for the given identity and room.
func (m *TokenMinter) Mint(identity, room string) (string, time.Time, error) {
	if m.apiKey == "" || m.apiSecret == "" {
		return "", time.Time{}, fmt.Errorf("media credentials are not configured")
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"iss": m.apiKey,
		"sub": identity,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"video": map[string]interface{}{
			"room":         room,
			"roomJoin":     true,
			"canPublish":   true,
			"canSubscribe": true,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.apiSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign room token: %w", err)
	}

	return signed, expiresAt, nil
}
