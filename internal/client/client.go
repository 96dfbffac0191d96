// Package client implements the HTTP side of the sync contract: auth
// flows, document load/save, and tailored-resume generation. Every remote
// failure comes back as an error value the caller turns into a message
// with UserMessage; nothing is retried automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/session"
	"github.com/resumix/resumix/internal/types"
)

// DefaultTimeout bounds every request the client issues.
const DefaultTimeout = 30 * time.Second

// Options configures the client.
type Options struct {
	Timeout time.Duration
	// OutputDir is where generated PDFs are written. Defaults to the
	// working directory.
	OutputDir string
}

// Client talks to the backend on behalf of one session. It owns the
// unsaved-changes flag: mutations mark it, a completed save clears it.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	outDir  string

	mu    sync.Mutex
	dirty bool
}

func New(baseURL string, sess *session.Session, opts *Options) *Client {
	timeout := DefaultTimeout
	outDir := "."
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if opts.OutputDir != "" {
			outDir = opts.OutputDir
		}
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		session: sess,
		outDir:  outDir,
	}
}

// Session exposes the session this client authenticates with.
func (c *Client) Session() *session.Session { return c.session }

// MarkDirty records that the local document has edits not yet saved.
func (c *Client) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// Dirty reports whether unsaved edits exist.
func (c *Client) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Signup registers a password account and establishes the session.
func (c *Client) Signup(ctx context.Context, uid, password, email, userName string) (*types.AuthResponse, error) {
	req := types.SignupRequest{
		Type:     types.AuthTypeSignup,
		UID:      uid,
		Password: password,
		Email:    email,
		UserName: userName,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}
	return c.authFlow(ctx, req)
}

// Login authenticates with uid and password and establishes the session.
func (c *Client) Login(ctx context.Context, uid, password string) (*types.AuthResponse, error) {
	req := types.LoginRequest{Type: types.AuthTypeLogin, UID: uid, Password: password}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}
	return c.authFlow(ctx, req)
}

// LoginOAuth authenticates with a Google id token, creating the account
// on first use.
func (c *Client) LoginOAuth(ctx context.Context, idToken string) (*types.AuthResponse, error) {
	req := types.OAuthRequest{Type: types.AuthTypeOAuth, JWTToken: idToken}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid oauth request: %w", err)
	}
	return c.authFlow(ctx, req)
}

func (c *Client) authFlow(ctx context.Context, body any) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.postJSON(ctx, "/user", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return &resp, &APIError{StatusCode: http.StatusOK, Detail: detailStatus(resp.Detail)}
	}
	if resp.JWT != "" && c.session != nil {
		user := decodeUserDetail(resp.Detail)
		if err := c.session.Establish(resp.JWT, user, resp.UserStatus); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
	}
	return &resp, nil
}

// Reauthenticate exchanges a reauth token for a refreshed identity. It
// satisfies session.Reauthenticator; token storage decisions stay with
// the session.
func (c *Client) Reauthenticate(ctx context.Context, uid, reauthJWT string) (*types.AuthResponse, error) {
	q := url.Values{}
	q.Set("type", types.AuthTypeReauth)
	q.Set("uid", uid)
	q.Set("reauth_jwt", reauthJWT)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reauth request: %w", err)
	}
	var resp types.AuthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadDocument returns the last persisted document from the session's
// cached profile. ok is false when nothing valid is stored; the caller
// falls back to the returned default.
func (c *Client) LoadDocument() (types.Document, bool) {
	user := c.session.User()
	if user == nil {
		return document.Default(), false
	}
	return document.ValidateOrDefault(user.ResumeInfo)
}

// SaveDocument persists a document snapshot. The document value passed in
// is the snapshot: mutation operations never alias old values, so edits
// made while the save is in flight are not reflected in it. A completed
// save clears the unsaved-changes flag even when such newer edits exist;
// the next explicit save picks them up.
func (c *Client) SaveDocument(ctx context.Context, doc types.Document) error {
	_, reauth, ok := c.session.Tokens()
	if !ok {
		return session.ErrLoggedOut
	}
	body := types.SaveResumeRequest{
		UID:        c.session.UID(),
		ReauthJWT:  reauth,
		ResumeInfo: doc,
	}
	var resp types.StatusResponse
	if err := c.postJSON(ctx, "/resume", body, &resp); err != nil {
		return err
	}
	if !resp.Status {
		return &APIError{StatusCode: http.StatusOK, Detail: detailStatus(resp.Detail)}
	}
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
	return nil
}

// GenerateTailoredResume runs the backend optimize pipeline for a job
// description and writes the returned PDF to <resumeName>.pdf in the
// output directory, returning the written path. The advisory generate
// status guards the call: a user the backend last reported as having no
// content is blocked before any network round-trip.
func (c *Client) GenerateTailoredResume(ctx context.Context, jobDescription, resumeName string, noCache bool) (string, error) {
	if status := c.session.Status(); status != nil && status.GenerateStatus == types.LevelMissing {
		return "", ErrNotReady
	}
	_, reauth, ok := c.session.Tokens()
	if !ok {
		return "", session.ErrLoggedOut
	}
	if resumeName == "" {
		resumeName = "resume"
	}
	body := types.OptimizeRequest{
		UID:            c.session.UID(),
		ReauthJWT:      reauth,
		JobDescription: jobDescription,
		ResumeName:     resumeName,
		NoCache:        noCache,
	}
	if err := body.Validate(); err != nil {
		return "", fmt.Errorf("invalid optimize request: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/resume/optimize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachBearer(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.HandleUnauthorized()
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF response: %w", err)
	}
	path := filepath.Join(c.outDir, resumeName+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// postJSON sends a JSON body and decodes a JSON reply, routing 401s
// through the session's unauthorized hook.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.attachBearer(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			c.session.HandleUnauthorized()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) attachBearer(req *http.Request) {
	if c.session == nil || req.Header.Get("Authorization") != "" {
		return
	}
	if auth, _, ok := c.session.Tokens(); ok {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Detail = detailStatus(envelope.Detail)
	}
	return apiErr
}

// detailStatus extracts the {"status": "..."} tag carried in failure
// details. A detail of a different shape yields "".
func detailStatus(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var tag struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return ""
	}
	return tag.Status
}

func decodeUserDetail(raw json.RawMessage) *types.UserDetail {
	if len(raw) == 0 {
		return nil
	}
	var d types.UserDetail
	if err := json.Unmarshal(raw, &d); err != nil || d.UID == "" {
		return nil
	}
	return &d
}
