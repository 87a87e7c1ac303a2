package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio-cli/internal/errs"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:     "u-1",
		Correo: "ana@biblioteca.mx",
		Nombre: "Ana",
		Estado: "activo",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestDecodeClaims(t *testing.T) {
	claims, err := DecodeClaims(mintToken(t, testNow.Add(time.Hour)), testNow)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.ID)
	assert.Equal(t, "ana@biblioteca.mx", claims.Correo)

	_, err = DecodeClaims(mintToken(t, testNow.Add(-time.Hour)), testNow)
	assert.ErrorIs(t, err, errs.ErrNoSession)

	// exp equal to now counts as expired
	_, err = DecodeClaims(mintToken(t, testNow), testNow)
	assert.ErrorIs(t, err, errs.ErrNoSession)

	_, err = DecodeClaims("not-a-token", testNow)
	assert.Error(t, err)
}

func TestManager_RestoreValid(t *testing.T) {
	store := &MemStore{Token: mintToken(t, testNow.Add(time.Hour))}
	m := NewManager(store, nil)
	assert.False(t, m.Ready())

	m.Restore(testNow)

	assert.True(t, m.Ready())
	u, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ana", u.Nombre)
	assert.NotEmpty(t, m.Token())
}

func TestManager_RestoreExpiredRemovesToken(t *testing.T) {
	store := &MemStore{Token: mintToken(t, testNow.Add(-time.Minute))}
	m := NewManager(store, nil)

	m.Restore(testNow)

	assert.True(t, m.Ready())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, store.Token, "expired token must be removed from storage")
}

func TestManager_RestoreGarbageRemovesToken(t *testing.T) {
	store := &MemStore{Token: "%%%"}
	m := NewManager(store, nil)

	m.Restore(testNow)

	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, store.Token)
}

func TestManager_RestoreEmptyStore(t *testing.T) {
	m := NewManager(&MemStore{}, nil)
	m.Restore(testNow)
	assert.True(t, m.Ready())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestManager_SignInSignOut(t *testing.T) {
	store := &MemStore{}
	m := NewManager(store, nil)
	m.Restore(testNow)

	tok := mintToken(t, testNow.Add(time.Hour))
	require.NoError(t, m.SignIn(tok, testNow))
	assert.Equal(t, tok, store.Token)
	u, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u-1", u.ID)

	require.NoError(t, m.SignOut())
	assert.Empty(t, store.Token)
	_, ok = m.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, m.Token())
}

func TestManager_SignInBadTokenStaysPersisted(t *testing.T) {
	// SignIn persists before decoding; a bad token ends up stored but
	// yields no identity.
	store := &MemStore{}
	m := NewManager(store, nil)

	err := m.SignIn("broken", testNow)
	assert.Error(t, err)
	assert.Equal(t, "broken", store.Token)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "token")
	s := NewFileStore(path)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Save("abc.def.ghi"))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	// clearing twice is fine
	require.NoError(t, s.Clear())
}
