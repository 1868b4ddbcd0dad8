package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

const (
	// CSRFSessionKey stores the token inside the session.
	CSRFSessionKey = "csrf_token"
	// CSRFFormField is the hidden form field carrying the token.
	CSRFFormField = "csrf_token"
	// CSRFHeader carries the token for script initiated requests.
	CSRFHeader = "X-CSRF-Token"
)

var (
	// ErrCSRFTokenMissing occurs when either side of the comparison is empty.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when the submitted token differs.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// CSRFGuard issues and verifies per-session tokens.
type CSRFGuard struct {
	secret []byte
}

// NewCSRFGuard returns a guard keyed by secret.
func NewCSRFGuard(secret string) *CSRFGuard {
	return &CSRFGuard{secret: []byte(secret)}
}

// Token returns the session token, creating it on first use.
func (g *CSRFGuard) Token(sess *Session) string {
	if sess == nil {
		return ""
	}
	if token := sess.Get(CSRFSessionKey); token != "" {
		return token
	}
	mac := hmac.New(sha256.New, g.secret)
	_, _ = mac.Write([]byte(sess.ID))
	token := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	sess.Set(CSRFSessionKey, token)
	return token
}

// Verify compares a submitted token with the session token.
func (g *CSRFGuard) Verify(sess *Session, token string) error {
	if sess == nil || token == "" {
		return ErrCSRFTokenMissing
	}
	expected := sess.Get(CSRFSessionKey)
	if expected == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}
