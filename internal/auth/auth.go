// Package auth implements the shared-secret admin session scheme.
//
// A single admin password is hashed into a cookie value; holding a cookie
// whose value equals the hash of the configured password means "is an admin".
// There is no per-user identity.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

const (
	// CookieName is the HTTP cookie carrying the admin session token.
	CookieName = "church-admin-token"

	// CookieMaxAge is the session lifetime in seconds (24 hours).
	CookieMaxAge = 24 * 60 * 60

	// salt is a fixed constant mixed into the password digest. Changing it
	// invalidates every issued session cookie.
	salt = "church-salt-2024"
)

// ErrNotConfigured is returned when no admin password is configured
// server-side. This is a deployment error, not a user error.
var ErrNotConfigured = errors.New("admin password is not configured")

// Verifier checks submitted passwords and session tokens against the
// configured admin password.
type Verifier struct {
	adminPassword string
}

// NewVerifier creates a Verifier for the given admin password.
// An empty password yields a Verifier that rejects everything with
// ErrNotConfigured.
func NewVerifier(adminPassword string) *Verifier {
	return &Verifier{adminPassword: adminPassword}
}

// HashPassword returns the hex-encoded SHA-256 digest of password + salt.
// Deterministic; the same value is both stored in the cookie and recomputed
// on every verification.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// SessionToken returns the cookie value issued after a successful login.
func (v *Verifier) SessionToken() (string, error) {
	if v.adminPassword == "" {
		return "", ErrNotConfigured
	}
	return HashPassword(v.adminPassword), nil
}

// CheckPassword reports whether the submitted password matches the
// configured admin password, using a constant-time comparison.
func (v *Verifier) CheckPassword(password string) (bool, error) {
	if v.adminPassword == "" {
		return false, ErrNotConfigured
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(v.adminPassword)) == 1, nil
}

// VerifyToken reports whether token is a valid admin session token.
// With no password configured every token is invalid.
func (v *Verifier) VerifyToken(token string) bool {
	if v.adminPassword == "" || token == "" {
		return false
	}
	expected := HashPassword(v.adminPassword)
	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}
