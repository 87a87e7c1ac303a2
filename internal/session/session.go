// Package session holds the logged-in librarian identity decoded from a
// bearer token.
//
// The token payload is decoded WITHOUT signature verification: the server
// is the authority and this layer only reads the claims it already issued.
// Expiry is checked once, when the session is restored from storage, not
// continuously.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"biblio-cli/internal/errs"
)

// Claims is the identity payload carried inside the token.
type Claims struct {
	ID     string `json:"id"`
	Correo string `json:"correo"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the token payload without verifying the signature.
// A token whose exp is at or before now is reported as errs.ErrNoSession.
// A token without exp is accepted.
func DecodeClaims(token string, now time.Time) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now) {
		return Claims{}, errs.ErrNoSession
	}
	return claims, nil
}

// Manager is the session holder: current identity, sign-in/out, and the
// ready flag for whether restoration from storage has completed.
type Manager struct {
	store Store
	log   *zap.Logger

	token string
	user  *Claims
	ready bool
}

func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

// Restore loads the persisted token, if any, and decodes it. An expired
// or undecodable token is removed from storage and treated silently as
// "no session". Restore always leaves the manager ready.
func (m *Manager) Restore(now time.Time) {
	defer func() { m.ready = true }()

	token, err := m.store.Load()
	if err != nil {
		m.log.Warn("session restore: read token", zap.Error(err))
		return
	}
	if token == "" {
		return
	}
	claims, err := DecodeClaims(token, now)
	if err != nil {
		m.log.Info("session restore: discarding stored token", zap.Error(err))
		_ = m.store.Clear()
		return
	}
	m.token = token
	m.user = &claims
}

// Ready reports whether restoration from storage has completed.
func (m *Manager) Ready() bool { return m.ready }

// CurrentUser returns the logged-in identity, if any.
func (m *Manager) CurrentUser() (Claims, bool) {
	if m.user == nil {
		return Claims{}, false
	}
	return *m.user, true
}

// Token returns the raw bearer token, or "" when signed out.
func (m *Manager) Token() string { return m.token }

// SignIn persists the token and decodes the identity synchronously. It
// does not verify server-side validity. The token is persisted before
// decoding.
func (m *Manager) SignIn(token string, now time.Time) error {
	if err := m.store.Save(token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	claims, err := DecodeClaims(token, now)
	if err != nil {
		return err
	}
	m.token = token
	m.user = &claims
	return nil
}

// SignOut deletes the persisted token and clears the identity.
func (m *Manager) SignOut() error {
	m.token = ""
	m.user = nil
	return m.store.Clear()
}
