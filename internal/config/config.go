// Package config loads runtime configuration from the environment for both
// the HTTP server and the CLI client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ServerConfig holds everything the HTTP server needs at startup.
type ServerConfig struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKey enables LLM-backed requirement extraction when set;
	// empty falls back to the lexical heuristic.
	GeminiAPIKey string

	// ChromePath overrides the browser binary used for PDF rendering.
	ChromePath string
}

// NewServerConfig reads the server configuration from environment
// variables. PORT defaults to 8080; DATABASE_URL is required.
func NewServerConfig() (*ServerConfig, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", portStr)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	return &ServerConfig{
		Port:         port,
		DatabaseURL:  dbURL,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}, nil
}

// ClientConfig holds what the CLI client needs: where the server is and
// where session state and generated PDFs live.
type ClientConfig struct {
	ServerURL   string
	SessionFile string
	OutputDir   string
}

// NewClientConfig reads the client configuration from environment
// variables, with usable defaults for local development.
func NewClientConfig() (*ClientConfig, error) {
	serverURL := os.Getenv("RESUMIX_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	sessionFile := os.Getenv("RESUMIX_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		sessionFile = filepath.Join(home, ".resumix", "session.json")
	}

	outputDir := os.Getenv("RESUMIX_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "."
	}

	return &ClientConfig{
		ServerURL:   serverURL,
		SessionFile: sessionFile,
		OutputDir:   outputDir,
	}, nil
}
