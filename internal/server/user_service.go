package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/idtoken"

	"github.com/resumix/resumix/internal/config"
	"github.com/resumix/resumix/internal/db"
	"github.com/resumix/resumix/internal/types"
)

// Stored auth_type discriminators. The wire uses "eupn" for the signup
// request shape; the account itself records "eup".
const (
	storedAuthPassword = "eup"
	storedAuthOAuth    = "go"
)

// Store is the persistence surface the user service needs; *db.DB
// implements it.
type Store interface {
	CreateUser(ctx context.Context, u *db.User) error
	GetUserByUID(ctx context.Context, uid string) (*db.User, error)
	SaveResumeInfo(ctx context.Context, uid string, resumeInfo json.RawMessage) error
	SaveUserInfo(ctx context.Context, uid string, userInfo json.RawMessage) error
}

// userProfile is the free-form profile blob stored in the userinfo column.
type userProfile struct {
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
}

func profileJSON(verified bool, name, email string) json.RawMessage {
	raw, _ := json.Marshal(userProfile{EmailVerified: verified, Name: name, Email: email})
	return raw
}

// OAuthIdentity is a verified external identity. Subject becomes the uid.
type OAuthIdentity struct {
	Subject string
	Email   string
	Name    string
}

// OAuthVerifier validates a third-party id token.
type OAuthVerifier interface {
	Verify(ctx context.Context, token string) (*OAuthIdentity, error)
}

// GoogleVerifier validates Google id tokens. Audience, when set, must
// match the token's aud claim.
type GoogleVerifier struct {
	Audience string
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*OAuthIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, g.Audience)
	if err != nil {
		return nil, &ErrInvalidToken{Reason: fmt.Sprintf("google id token rejected: %v", err)}
	}
	name, _ := payload.Claims["name"].(string)
	email, _ := payload.Claims["email"].(string)
	return &OAuthIdentity{Subject: payload.Subject, Email: email, Name: name}, nil
}

// UserService implements the account flows behind POST /user.
type UserService struct {
	store     Store
	passwords *config.PasswordConfig
	verifier  OAuthVerifier
}

// NewUserService creates a user service.
func NewUserService(store Store, passwords *config.PasswordConfig, verifier OAuthVerifier) *UserService {
	return &UserService{store: store, passwords: passwords, verifier: verifier}
}

// Signup creates a password account. The returned user carries no stored
// document yet.
func (s *UserService) Signup(ctx context.Context, req *types.SignupRequest) (*db.User, error) {
	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &db.User{
		UID:          req.UID,
		UserName:     req.UserName,
		PasswordHash: hash,
		Email:        req.Email,
		AuthType:     storedAuthPassword,
		UserInfo:     profileJSON(false, req.UserName, req.Email),
		ResumeInfo:   json.RawMessage(`{}`),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, &ErrUniqueViolation{}
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a password account.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*db.User, error) {
	user, err := s.store.GetUserByUID(ctx, req.UID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ErrUserNotFound{UID: req.UID}
		}
		return nil, err
	}
	if user.AuthType != storedAuthPassword {
		return nil, &ErrAuthTypeMismatch{UID: req.UID, AuthType: user.AuthType}
	}
	if !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrPasswordIncorrect{}
	}
	return user, nil
}

// OAuthLogin validates the id token and logs in, creating the account on
// first use. The token subject becomes the uid.
func (s *UserService) OAuthLogin(ctx context.Context, req *types.OAuthRequest) (*db.User, bool, error) {
	identity, err := s.verifier.Verify(ctx, req.JWTToken)
	if err != nil {
		return nil, false, err
	}

	user, err := s.store.GetUserByUID(ctx, identity.Subject)
	if err == nil {
		if user.AuthType != storedAuthOAuth {
			return nil, false, &ErrAuthTypeMismatch{UID: identity.Subject, AuthType: user.AuthType}
		}
		// Google remains authoritative for the profile; pick up renames
		// and email changes on re-login.
		if profile := profileJSON(true, identity.Name, identity.Email); !bytes.Equal(profile, user.UserInfo) {
			if err := s.store.SaveUserInfo(ctx, user.UID, profile); err != nil {
				log.Printf("failed to refresh profile for %s: %v", user.UID, err)
			} else {
				user.UserInfo = profile
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, err
	}

	user = &db.User{
		UID:        identity.Subject,
		UserName:   identity.Name,
		Email:      identity.Email,
		AuthType:   storedAuthOAuth,
		UserInfo:   profileJSON(true, identity.Name, identity.Email),
		ResumeInfo: json.RawMessage(`{}`),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, false, &ErrUniqueViolation{}
		}
		return nil, false, err
	}
	return user, true, nil
}

// GetUser fetches an account by uid.
func (s *UserService) GetUser(ctx context.Context, uid string) (*db.User, error) {
	user, err := s.store.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ErrUserNotFound{UID: uid}
		}
		return nil, err
	}
	return user, nil
}

// SaveResume persists a validated, clamped document blob.
func (s *UserService) SaveResume(ctx context.Context, uid string, resumeInfo json.RawMessage) error {
	if err := s.store.SaveResumeInfo(ctx, uid, resumeInfo); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrUserNotFound{UID: uid}
		}
		return err
	}
	return nil
}

// userDetail reduces an account row to the wire shape; the password hash
// never leaves the server.
func userDetail(u *db.User) *types.UserDetail {
	return &types.UserDetail{
		UID:        u.UID,
		UserName:   u.UserName,
		Email:      u.Email,
		AuthType:   u.AuthType,
		ResumeInfo: u.ResumeInfo,
	}
}
