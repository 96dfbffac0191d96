package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/types"
)

func mintToken(t *testing.T, uid string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

type stubReauth struct {
	resp  *types.AuthResponse
	err   error
	calls int
	uid   string
	token string
}

func (s *stubReauth) Reauthenticate(_ context.Context, uid, reauthJWT string) (*types.AuthResponse, error) {
	s.calls++
	s.uid = uid
	s.token = reauthJWT
	return s.resp, s.err
}

func userDetailJSON(t *testing.T, uid string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(types.UserDetail{UID: uid, UserName: "Ada", Email: "ada@example.com", AuthType: "up"})
	require.NoError(t, err)
	return data
}

func TestEstablishStoresTokenUnderBothKeys(t *testing.T) {
	s := New(NewMemoryStorage())
	token := mintToken(t, "ada", time.Hour)
	require.NoError(t, s.Establish(token, &types.UserDetail{UID: "ada"}, nil))

	auth, reauth, ok := s.Tokens()
	require.True(t, ok)
	assert.Equal(t, token, auth)
	assert.Equal(t, token, reauth)
	assert.Equal(t, "ada", s.UID())
}

func TestRestoreWithNoTokensIsLoggedOut(t *testing.T) {
	s := New(NewMemoryStorage())
	r := &stubReauth{}

	ok, err := s.Restore(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, r.calls)
}

func TestRestoreWithExpiredTokenClearsWithoutCalling(t *testing.T) {
	s := New(NewMemoryStorage())
	require.NoError(t, s.Establish(mintToken(t, "ada", -time.Minute), nil, nil))
	r := &stubReauth{}

	ok, err := s.Restore(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, r.calls)

	_, _, held := s.Tokens()
	assert.False(t, held)
	assert.Empty(t, s.UID())
}

func TestReauthenticateReplacesBothStoredTokens(t *testing.T) {
	s := New(NewMemoryStorage())
	old := mintToken(t, "ada", time.Hour)
	require.NoError(t, s.Establish(old, nil, nil))

	fresh := mintToken(t, "ada", 2*time.Hour)
	r := &stubReauth{resp: &types.AuthResponse{
		Status:     true,
		JWT:        fresh,
		Detail:     userDetailJSON(t, "ada"),
		UserStatus: &types.UserStatus{ItemCount: 5, ResumeState: types.LevelFair},
	}}

	ok, err := s.Restore(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "ada", r.uid)
	assert.Equal(t, old, r.token)

	auth, reauth, held := s.Tokens()
	require.True(t, held)
	assert.Equal(t, fresh, auth)
	assert.Equal(t, fresh, reauth)

	require.NotNil(t, s.User())
	assert.Equal(t, "Ada", s.User().UserName)
	require.NotNil(t, s.Status())
	assert.Equal(t, 5, s.Status().ItemCount)
}

func TestReauthenticateWithoutNewTokenLeavesStorageUntouched(t *testing.T) {
	s := New(NewMemoryStorage())
	old := mintToken(t, "ada", time.Hour)
	require.NoError(t, s.Establish(old, nil, nil))

	r := &stubReauth{resp: &types.AuthResponse{
		Status: true,
		Detail: userDetailJSON(t, "ada"),
	}}

	ok, err := s.Reauthenticate(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, ok)

	auth, reauth, held := s.Tokens()
	require.True(t, held)
	assert.Equal(t, old, auth)
	assert.Equal(t, old, reauth)
}

func TestReauthenticateEchoedTokenIsNoOp(t *testing.T) {
	s := New(NewMemoryStorage())
	old := mintToken(t, "ada", time.Hour)
	require.NoError(t, s.Establish(old, nil, nil))

	r := &stubReauth{resp: &types.AuthResponse{Status: true, JWT: old}}

	ok, err := s.Reauthenticate(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, ok)

	auth, _, held := s.Tokens()
	require.True(t, held)
	assert.Equal(t, old, auth)
}

func TestReauthenticateRejectionLogsOut(t *testing.T) {
	s := New(NewMemoryStorage())
	require.NoError(t, s.Establish(mintToken(t, "ada", time.Hour), &types.UserDetail{UID: "ada"}, nil))

	r := &stubReauth{resp: &types.AuthResponse{Status: false}}

	ok, err := s.Reauthenticate(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, held := s.Tokens()
	assert.False(t, held)
	assert.Empty(t, s.UID())
	assert.Nil(t, s.User())
}

func TestReauthenticateTransportErrorLogsOut(t *testing.T) {
	s := New(NewMemoryStorage())
	require.NoError(t, s.Establish(mintToken(t, "ada", time.Hour), nil, nil))

	r := &stubReauth{err: errors.New("connection refused")}

	ok, err := s.Reauthenticate(context.Background(), r)
	require.Error(t, err)
	assert.False(t, ok)

	_, _, held := s.Tokens()
	assert.False(t, held)
}

func TestHandleUnauthorizedClearsEverything(t *testing.T) {
	s := New(NewMemoryStorage())
	require.NoError(t, s.Establish(mintToken(t, "ada", time.Hour),
		&types.UserDetail{UID: "ada"},
		&types.UserStatus{ItemCount: 3}))

	s.HandleUnauthorized()

	_, _, held := s.Tokens()
	assert.False(t, held)
	assert.Empty(t, s.UID())
	assert.Nil(t, s.User())
	assert.Nil(t, s.Status())
}

func TestTokensRequireBothKeys(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Set(KeyAuthToken, "only-one"))
	s := New(store)

	_, _, held := s.Tokens()
	assert.False(t, held)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	t.Run("round trip", func(t *testing.T) {
		store := NewFileStorage(path)
		require.NoError(t, store.Set(KeyAuthToken, "abc"))
		require.NoError(t, store.Set(KeyReauthToken, "def"))

		reopened := NewFileStorage(path)
		v, ok := reopened.Get(KeyAuthToken)
		require.True(t, ok)
		assert.Equal(t, "abc", v)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewFileStorage(path)
		require.NoError(t, store.Delete(KeyAuthToken))
		_, ok := store.Get(KeyAuthToken)
		assert.False(t, ok)
		v, ok := store.Get(KeyReauthToken)
		require.True(t, ok)
		assert.Equal(t, "def", v)
	})

	t.Run("corrupt file reads as empty", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
		store := NewFileStorage(bad)
		_, ok := store.Get(KeyAuthToken)
		assert.False(t, ok)
		require.NoError(t, store.Set(KeyAuthToken, "x"))
		v, ok := store.Get(KeyAuthToken)
		require.True(t, ok)
		assert.Equal(t, "x", v)
	})
}
