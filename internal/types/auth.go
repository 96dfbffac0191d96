package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Auth request type discriminators carried in the "type" field of /user
// requests. The letters follow the credential fields each flow requires:
// e-mail, uid, pwd, name.
const (
	AuthTypeSignup = "eupn" // email + uid + pwd + user_name signup
	AuthTypeLogin  = "up"   // uid + pwd login
	AuthTypeOAuth  = "go"   // Google OAuth id token
	AuthTypeReauth = "re"   // uid + reauth_jwt refresh
)

// SignupRequest creates a password-authenticated account (type "eupn").
type SignupRequest struct {
	Type     string `json:"type" validate:"required,eq=eupn"`
	UID      string `json:"uid" validate:"required,min=1"`
	Password string `json:"pwd" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
	UserName string `json:"user_name" validate:"required,min=1"`
}

// LoginRequest authenticates with uid and password (type "up").
type LoginRequest struct {
	Type     string `json:"type" validate:"required,eq=up"`
	UID      string `json:"uid" validate:"required"`
	Password string `json:"pwd" validate:"required"`
}

// OAuthRequest logs in or signs up with a Google id token (type "go").
type OAuthRequest struct {
	Type     string `json:"type" validate:"required,eq=go"`
	JWTToken string `json:"jwt_token" validate:"required"`
}

// ReauthRequest exchanges a reauth token for a fresh session (type "re").
// Unlike the other auth flows it travels as query parameters on GET /user.
type ReauthRequest struct {
	UID       string `validate:"required"`
	ReauthJWT string `validate:"required"`
}

// AuthResponse is the envelope every /user flow replies with. Detail is a
// free-form object: a `{status: string}` tag on failure, the user row
// (including resumeinfo) on success.
type AuthResponse struct {
	Status     bool            `json:"status"`
	JWT        string          `json:"jwt,omitempty"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	UserStatus *UserStatus     `json:"user_status,omitempty"`
}

// UserDetail is the success-case shape of AuthResponse.Detail.
type UserDetail struct {
	UID        string          `json:"uid"`
	UserName   string          `json:"user_name"`
	Email      string          `json:"email"`
	AuthType   string          `json:"auth_type"`
	ResumeInfo json.RawMessage `json:"resumeinfo,omitempty"`
}

// SaveResumeRequest persists a document (POST /resume).
type SaveResumeRequest struct {
	UID        string   `json:"uid" validate:"required"`
	ReauthJWT  string   `json:"reauth_jwt" validate:"required"`
	ResumeInfo Document `json:"resumeinfo"`
}

// OptimizeRequest asks for a tailored PDF (POST /resume/optimize).
type OptimizeRequest struct {
	UID            string `json:"uid" validate:"required"`
	ReauthJWT      string `json:"reauth_jwt" validate:"required"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
	ResumeName     string `json:"resume_name"`
	NoCache        bool   `json:"no_cache"`
}

// StatusResponse is the plain status envelope for /resume.
type StatusResponse struct {
	Status bool            `json:"status"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OAuthRequest using the validator.
func (r *OAuthRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReauthRequest using the validator.
func (r *ReauthRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OptimizeRequest using the validator.
func (r *OptimizeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
