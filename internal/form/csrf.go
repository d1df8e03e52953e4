// internal/form/csrf.go
//
// Contact form: stateless CSRF tokens.
//
// Context
//   The rendered form embeds a hidden `csrf_token` input.  The server
//   verifies it on POST to ensure the request came from a form it rendered
//   for the same browser session.  The token is stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro+session) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – binds nonce and time to the session id.
//
//   Verification recomputes the HMAC in constant time and checks the age.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size // nonce + ts + sig

	minKeyBytes = 32

	// DefaultTokenAge is used when NewCSRF receives a zero maxAge.
	DefaultTokenAge = 2 * time.Hour
)

// CSRF issues and verifies tokens with one key.
type CSRF struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCSRF returns a CSRF bound to key.  A key shorter than 32 bytes is
// replaced with a random one, which resets on restart and is logged.
func NewCSRF(key []byte, maxAge time.Duration) (*CSRF, error) {
	if len(key) < minKeyBytes {
		key = make([]byte, minKeyBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		zap.S().Warnw("csrf key not configured, using ephemeral key")
	}
	if maxAge <= 0 {
		maxAge = DefaultTokenAge
	}
	return &CSRF{key: key, maxAge: maxAge, now: time.Now}, nil
}

// DecodeKey turns a configured base64url key into bytes.  An empty string
// yields nil, which NewCSRF treats as unset.  A key that is set but does
// not decode to at least 32 bytes is an error.
func DecodeKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("csrf key: not base64url: %w", err)
	}
	if len(b) < minKeyBytes {
		return nil, fmt.Errorf("csrf key: %d bytes decoded, need at least %d", len(b), minKeyBytes)
	}
	return b, nil
}

// Generate creates a token for session.  Call once per render.
func (c *CSRF) Generate(session string) (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts, session)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok was issued for session and is still fresh.
func (c *CSRF) Verify(tok, session string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := c.now()
	if now.Sub(issued) > c.maxAge || issued.Sub(now) > time.Minute {
		// Expired, or from the future beyond clock skew.
		return false
	}

	return hmac.Equal(sig, c.sign(nonce, tsBytes, session))
}

func (c *CSRF) sign(nonce, ts []byte, session string) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ts)
	mac.Write([]byte(session))
	return mac.Sum(nil)
}
