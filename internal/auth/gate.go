package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Gate checks bearer tokens against the single admin secret. The secret is
// either kept in plain text or, when a bcrypt hash is configured, only as the hash.
type Gate struct {
	secret []byte
	hash   []byte
}

func NewGate(secret, hash string) (*Gate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		return &Gate{hash: []byte(hash)}, nil
	}
	if secret == "" {
		return nil, fmt.Errorf("admin secret is empty")
	}
	return &Gate{secret: []byte(secret)}, nil
}

func (g *Gate) Authorize(token string) bool {
	if token == "" {
		return false
	}
	if g.hash != nil {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(token), g.secret) == 1
}

// BearerToken extracts <token> from "Bearer <token>".
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
