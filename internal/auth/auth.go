// Package auth issues and verifies the signed session tokens that identify
// the acting user behind a HUD connection.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Auth signs session tokens with an HMAC key persisted in the data dir, so
// sessions survive a server restart.
type Auth struct {
	key    []byte
	issuer string
}

// New loads the signing key from dataDir, generating one on first run.
func New(dataDir string) (*Auth, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	keyPath := filepath.Join(dataDir, "session.key")
	key, err := os.ReadFile(keyPath)
	if err != nil || len(key) < 32 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			return nil, fmt.Errorf("write session key: %w", err)
		}
	}
	return &Auth{key: key, issuer: "tokenhud"}, nil
}

// IssueToken signs a session token for the user.
func (a *Auth) IssueToken(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": username,
		"iss":  a.issuer,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.key)
}

// ParseToken verifies a session token and returns the user ID and name.
func (a *Auth) ParseToken(token string) (userID, username string, err error) {
	if token == "" {
		return "", "", errors.New("missing token")
	}
	t, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("bad claims")
	}
	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return "", "", errors.New("bad claims")
	}
	return sub, name, nil
}
