package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// User is one account row. PasswordHash never leaves this package in a
// serialized form.
type User struct {
	UID          string          `json:"uid"`
	UserName     string          `json:"user_name"`
	PasswordHash string          `json:"-"`
	Email        string          `json:"email"`
	AuthType     string          `json:"auth_type"`
	UserInfo     json.RawMessage `json:"userinfo,omitempty"`
	ResumeInfo   json.RawMessage `json:"resumeinfo,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateUser inserts a new account. A duplicate uid or email returns
// ErrUniqueViolation.
func (db *DB) CreateUser(ctx context.Context, u *User) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (uid, user_name, pwd_hash, email, auth_type, userinfo, resumeinfo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.UID, u.UserName, u.PasswordHash, u.Email, u.AuthType, u.UserInfo, u.ResumeInfo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("failed to create user %s: %w", u.UID, err)
	}
	return nil
}

// GetUserByUID fetches one account. A missing uid returns ErrNotFound.
func (db *DB) GetUserByUID(ctx context.Context, uid string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT uid, user_name, pwd_hash, email, auth_type, userinfo, resumeinfo, created_at, updated_at
		 FROM users WHERE uid = $1`,
		uid,
	).Scan(&u.UID, &u.UserName, &u.PasswordHash, &u.Email, &u.AuthType,
		&u.UserInfo, &u.ResumeInfo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	return &u, nil
}

// SaveResumeInfo replaces the stored document for a user.
func (db *DB) SaveResumeInfo(ctx context.Context, uid string, resumeInfo json.RawMessage) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET resumeinfo = $1, updated_at = NOW() WHERE uid = $2`,
		resumeInfo, uid,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume for %s: %w", uid, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveUserInfo replaces the free-form profile blob for a user.
func (db *DB) SaveUserInfo(ctx context.Context, uid string, userInfo json.RawMessage) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET userinfo = $1, updated_at = NOW() WHERE uid = $2`,
		userInfo, uid,
	)
	if err != nil {
		return fmt.Errorf("failed to save userinfo for %s: %w", uid, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
