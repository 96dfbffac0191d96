package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/resumix/resumix/internal/server/middleware"
	"github.com/resumix/resumix/internal/types"
)

// authResponse writes the /user envelope.
func (s *Server) authResponse(w http.ResponseWriter, status int, resp types.AuthResponse) {
	s.jsonResponse(w, status, resp)
}

// authError writes a failed /user envelope with the detail status tag the
// client maps to a user-facing message.
func (s *Server) authError(w http.ResponseWriter, err error) {
	detail, _ := json.Marshal(map[string]string{"status": DetailStatus(err)})
	s.authResponse(w, HTTPStatus(err), types.AuthResponse{Status: false, Detail: detail})
}

// handleUserAuth dispatches POST /user on the "type" field: signup
// ("eupn"), password login ("up"), or OAuth login ("go").
func (s *Server) handleUserAuth(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		s.authError(w, &ErrValidation{Message: "malformed request body"})
		return
	}

	switch authType(body) {
	case types.AuthTypeSignup:
		s.handleSignup(w, r, body)
	case types.AuthTypeLogin:
		s.handleLogin(w, r, body)
	case types.AuthTypeOAuth:
		s.handleOAuth(w, r, body)
	default:
		s.authError(w, &ErrValidation{Message: "invalid auth type"})
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	var req types.SignupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.authError(w, &ErrValidation{Message: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.authError(w, &ErrValidation{Message: "missing or invalid signup fields"})
		return
	}

	user, err := s.userService.Signup(r.Context(), &req)
	if err != nil {
		s.authError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.UID)
	if err != nil {
		s.authError(w, fmt.Errorf("token generation failed: %w", err))
		return
	}

	detail, _ := json.Marshal(map[string]string{"status": "user created"})
	s.authResponse(w, http.StatusCreated, types.AuthResponse{
		Status:     true,
		JWT:        token,
		Detail:     detail,
		UserStatus: statusForStored(nil),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	var req types.LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.authError(w, &ErrValidation{Message: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.authError(w, &ErrValidation{Message: "missing uid or password"})
		return
	}

	user, err := s.userService.Login(r.Context(), &req)
	if err != nil {
		s.authError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.UID)
	if err != nil {
		s.authError(w, fmt.Errorf("token generation failed: %w", err))
		return
	}

	detail, _ := json.Marshal(userDetail(user))
	s.authResponse(w, http.StatusOK, types.AuthResponse{
		Status:     true,
		JWT:        token,
		Detail:     detail,
		UserStatus: statusForStored(user.ResumeInfo),
	})
}

func (s *Server) handleOAuth(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	var req types.OAuthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.authError(w, &ErrValidation{Message: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.authError(w, &ErrValidation{Message: "jwt_token is required"})
		return
	}

	user, created, err := s.userService.OAuthLogin(r.Context(), &req)
	if err != nil {
		s.authError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.UID)
	if err != nil {
		s.authError(w, fmt.Errorf("token generation failed: %w", err))
		return
	}

	status := http.StatusOK
	var detail json.RawMessage
	if created {
		status = http.StatusCreated
		detail, _ = json.Marshal(map[string]string{"status": "user created"})
	} else {
		detail, _ = json.Marshal(userDetail(user))
	}
	s.authResponse(w, status, types.AuthResponse{
		Status:     true,
		JWT:        token,
		Detail:     detail,
		UserStatus: statusForStored(user.ResumeInfo),
	})
}

// handleReauth serves GET /user?type=re&uid=...&reauth_jwt=...
// The reply always carries the user row and advisory status; a fresh
// token is minted only when the presented one is inside the renewal
// window, otherwise the presented token is echoed back.
func (s *Server) handleReauth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("type") != types.AuthTypeReauth {
		s.authError(w, &ErrValidation{Message: "invalid auth type"})
		return
	}
	req := types.ReauthRequest{UID: q.Get("uid"), ReauthJWT: q.Get("reauth_jwt")}
	if err := req.Validate(); err != nil {
		s.authError(w, &ErrInvalidToken{Reason: "uid and reauth_jwt required"})
		return
	}

	claims, err := s.jwtService.ValidateToken(req.ReauthJWT)
	if err != nil {
		s.authError(w, err)
		return
	}
	if claims.UID != req.UID {
		s.authError(w, &ErrInvalidToken{Reason: "uid mismatch"})
		return
	}

	user, err := s.userService.GetUser(r.Context(), req.UID)
	if err != nil {
		s.authError(w, err)
		return
	}

	token := req.ReauthJWT
	if s.jwtService.WithinRenewalWindow(claims) {
		token, err = s.jwtService.GenerateToken(req.UID)
		if err != nil {
			s.authError(w, fmt.Errorf("token generation failed: %w", err))
			return
		}
	}

	detail, _ := json.Marshal(userDetail(user))
	s.authResponse(w, http.StatusOK, types.AuthResponse{
		Status:     true,
		JWT:        token,
		Detail:     detail,
		UserStatus: statusForStored(user.ResumeInfo),
	})
}

// handleMe serves GET /user/me for bearer-authenticated callers.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	uid, err := middleware.UID(r)
	if err != nil {
		s.authError(w, &ErrInvalidToken{Reason: "missing identity"})
		return
	}
	user, err := s.userService.GetUser(r.Context(), uid)
	if err != nil {
		s.authError(w, err)
		return
	}
	detail, _ := json.Marshal(userDetail(user))
	s.authResponse(w, http.StatusOK, types.AuthResponse{
		Status:     true,
		Detail:     detail,
		UserStatus: statusForStored(user.ResumeInfo),
	})
}

// decodeBody reads the request body once so the type dispatch and the
// typed decode share it.
func decodeBody(r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func authType(body json.RawMessage) string {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		log.Printf("auth type probe failed: %v", err)
		return ""
	}
	return probe.Type
}
