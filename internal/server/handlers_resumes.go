package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/types"
)

// statusError writes a failed /resume envelope.
func (s *Server) statusError(w http.ResponseWriter, err error) {
	detail, _ := json.Marshal(map[string]string{"status": DetailStatus(err)})
	s.jsonResponse(w, HTTPStatus(err), types.StatusResponse{Status: false, Detail: detail})
}

// verifyReauth checks the uid/reauth_jwt pair carried in a resume request
// body.
func (s *Server) verifyReauth(uid, reauthJWT string) error {
	claims, err := s.jwtService.ValidateToken(reauthJWT)
	if err != nil {
		return err
	}
	if claims.UID != uid {
		return &ErrInvalidToken{Reason: "uid mismatch"}
	}
	return nil
}

// handleSaveResume serves POST /resume: validate the document, clamp its
// parameters to the server ranges, persist.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	var req types.SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.statusError(w, &ErrValidation{Message: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.statusError(w, &ErrValidation{Message: "uid and reauth_jwt required"})
		return
	}
	if err := s.verifyReauth(req.UID, req.ReauthJWT); err != nil {
		s.statusError(w, err)
		return
	}

	raw, err := json.Marshal(req.ResumeInfo)
	if err != nil {
		s.statusError(w, &ErrValidation{Message: "malformed resume document"})
		return
	}
	doc, ok := document.ValidateOrDefault(raw)
	if !ok {
		s.statusError(w, &ErrValidation{Message: "resume structure invalid"})
		return
	}
	if doc.ItemCount() == 0 {
		s.statusError(w, &ErrValidation{Message: "resume must contain at least one item"})
		return
	}

	doc = document.ClampParams(doc)
	stored, err := json.Marshal(doc)
	if err != nil {
		s.statusError(w, fmt.Errorf("failed to encode document: %w", err))
		return
	}
	if err := s.userService.SaveResume(r.Context(), req.UID, stored); err != nil {
		s.statusError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.StatusResponse{Status: true})
}

// handleOptimize serves POST /resume/optimize: run the tailoring pipeline
// over the stored document and reply with the generated PDF.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.statusError(w, &ErrValidation{Message: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.statusError(w, &ErrValidation{Message: "uid, reauth_jwt and job_description required"})
		return
	}
	if err := s.verifyReauth(req.UID, req.ReauthJWT); err != nil {
		s.statusError(w, err)
		return
	}

	user, err := s.userService.GetUser(r.Context(), req.UID)
	if err != nil {
		s.statusError(w, err)
		return
	}
	doc, ok := document.ValidateOrDefault(user.ResumeInfo)
	if !ok || doc.ItemCount() == 0 {
		s.statusError(w, &ErrValidation{Message: "no resume content to optimize"})
		return
	}

	pdf, err := s.optimizer.GeneratePDF(r.Context(), doc, req.JobDescription, req.NoCache)
	if err != nil {
		s.statusError(w, fmt.Errorf("optimize failed: %w", err))
		return
	}

	name := req.ResumeName
	if name == "" {
		name = "resume"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
