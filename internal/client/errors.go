package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes callers branch on.
var (
	// ErrNoResponse wraps transport failures where no HTTP response
	// arrived at all.
	ErrNoResponse = errors.New("no response from server")

	// ErrUnauthorized is returned after a 401; the session has already
	// been cleared by the time the caller sees it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotReady blocks resume generation before any network call when
	// the last known user status reported generation unavailable.
	ErrNotReady = errors.New("resume not ready for generation")
)

// APIError is a backend-reported failure: the HTTP status plus the detail
// status string from the response envelope.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Detail)
}

// Backend detail strings with fixed user-facing translations.
var detailMessages = map[string]string{
	"user not found":                "No account exists with that user ID.",
	"password incorrect":            "The password you entered is incorrect.",
	"uid or email unique violation": "That user ID or email is already registered.",
	"auth type mismatch":            "This account uses a different sign-in method.",
}

// UserMessage turns any client error into the string shown to the user.
// Known backend details map to fixed messages; unknown details pass
// through with an "Error: " prefix; transport failures become a generic
// try-again message. Nothing here triggers a retry.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNoResponse):
		return "The server could not be reached. Please try again later."
	case errors.Is(err, ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrNotReady):
		return "Add some resume content before generating a tailored resume."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg, ok := detailMessages[apiErr.Detail]; ok {
			return msg
		}
		if apiErr.Detail != "" {
			return "Error: " + apiErr.Detail
		}
		return fmt.Sprintf("Error: the server replied with status %d.", apiErr.StatusCode)
	}
	return "Error: " + err.Error()
}
