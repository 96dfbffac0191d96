// Package session owns the client-side token lifecycle: which tokens are
// held, when they are trusted, and when they are thrown away. The policy is
// deliberately blunt: any doubt about either token logs the user out.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resumix/resumix/internal/types"
)

// Reauthenticator exchanges a stored reauth token for a fresh identity.
// The HTTP client implements it.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context, uid, reauthJWT string) (*types.AuthResponse, error)
}

// ErrLoggedOut is returned when an operation needs an authenticated
// session and none is held.
var ErrLoggedOut = errors.New("not logged in")

// Session holds the authenticated user's tokens and advisory status.
// Tokens live in Storage so they survive restarts; everything else is
// in-memory and rebuilt from reauthentication responses.
type Session struct {
	mu      sync.RWMutex
	storage Storage

	uid    string
	user   *types.UserDetail
	status *types.UserStatus

	now func() time.Time
}

func New(storage Storage) *Session {
	return &Session{storage: storage, now: time.Now}
}

// Tokens returns the stored token pair. ok is false unless both are
// present.
func (s *Session) Tokens() (auth, reauth string, ok bool) {
	auth, okA := s.storage.Get(KeyAuthToken)
	reauth, okR := s.storage.Get(KeyReauthToken)
	if !okA || !okR || auth == "" || reauth == "" {
		return "", "", false
	}
	return auth, reauth, true
}

// UID returns the current user id, or "" when logged out.
func (s *Session) UID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uid
}

// User returns the cached user detail from the last auth response.
func (s *Session) User() *types.UserDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Status returns the advisory user status from the last auth response.
func (s *Session) Status() *types.UserStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Establish records a fresh login: the single issued token is stored
// under both keys.
func (s *Session) Establish(token string, user *types.UserDetail, status *types.UserStatus) error {
	if err := s.storage.Set(KeyAuthToken, token); err != nil {
		return err
	}
	if err := s.storage.Set(KeyReauthToken, token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != nil {
		s.uid = user.UID
	} else {
		s.uid = uidFromToken(token)
	}
	s.user = user
	s.status = status
	return nil
}

// Clear drops both tokens and the in-memory identity. It is the shared
// exit path for logout, reauth failure, and 401 responses.
func (s *Session) Clear() {
	_ = s.storage.Delete(KeyAuthToken)
	_ = s.storage.Delete(KeyReauthToken)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uid = ""
	s.user = nil
	s.status = nil
}

// HandleUnauthorized is the hook wired into the HTTP client: any
// 401-equivalent response ends the session.
func (s *Session) HandleUnauthorized() {
	s.Clear()
}

// Restore attempts to resume a previous session at startup. It returns
// true only when both tokens are present, the primary token's exp claim is
// still in the future, and the backend accepts the reauth token. Any other
// outcome clears the stored tokens.
func (s *Session) Restore(ctx context.Context, r Reauthenticator) (bool, error) {
	auth, _, ok := s.Tokens()
	if !ok {
		return false, nil
	}
	if !s.tokenLive(auth) {
		s.Clear()
		return false, nil
	}
	return s.Reauthenticate(ctx, r)
}

// Reauthenticate exchanges the stored reauth token for a refreshed
// identity and, when the backend is inside its renewal window, a new
// token. A returned token replaces both stored values; an absent token
// leaves the stored values untouched. Failure logs the session out.
func (s *Session) Reauthenticate(ctx context.Context, r Reauthenticator) (bool, error) {
	_, reauth, ok := s.Tokens()
	if !ok {
		return false, nil
	}
	uid := uidFromToken(reauth)
	if uid == "" {
		s.Clear()
		return false, nil
	}

	resp, err := r.Reauthenticate(ctx, uid, reauth)
	if err != nil {
		s.Clear()
		return false, fmt.Errorf("reauthentication failed: %w", err)
	}
	if !resp.Status {
		s.Clear()
		return false, nil
	}

	if resp.JWT != "" && resp.JWT != reauth {
		if err := s.storage.Set(KeyAuthToken, resp.JWT); err != nil {
			return false, err
		}
		if err := s.storage.Set(KeyReauthToken, resp.JWT); err != nil {
			return false, err
		}
	}

	var user *types.UserDetail
	if len(resp.Detail) > 0 {
		var d types.UserDetail
		if err := json.Unmarshal(resp.Detail, &d); err == nil && d.UID != "" {
			user = &d
		}
	}

	s.mu.Lock()
	s.uid = uid
	if user != nil {
		s.user = user
	}
	s.status = resp.UserStatus
	s.mu.Unlock()
	return true, nil
}

// tokenLive checks the exp claim without verifying the signature. The
// signature only means something to the backend; the client just avoids
// presenting a token it already knows is dead.
func (s *Session) tokenLive(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(s.now())
}

func uidFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	uid, _ := claims["uid"].(string)
	return uid
}
