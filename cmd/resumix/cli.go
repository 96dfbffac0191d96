package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/resumix/resumix/internal/client"
	"github.com/resumix/resumix/internal/config"
	"github.com/resumix/resumix/internal/observability"
	"github.com/resumix/resumix/internal/session"
)

// newClient builds an HTTP client bound to the file-backed session.
func newClient() (*client.Client, error) {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return nil, err
	}
	sess := session.New(session.NewFileStorage(cfg.SessionFile))
	return client.New(cfg.ServerURL, sess, &client.Options{OutputDir: cfg.OutputDir}), nil
}

// restoreSession resumes the stored session, refreshing the token when the
// backend is inside its renewal window. Commands that need authentication
// call this first.
func restoreSession(ctx context.Context, c *client.Client) error {
	ok, err := c.Session().Restore(ctx, c)
	if err != nil {
		return fmt.Errorf("session restore failed: %s", client.UserMessage(err))
	}
	if !ok {
		return errors.New("not logged in; run `resumix login` first")
	}
	return nil
}

func printer() *observability.Printer {
	return observability.NewPrinter(os.Stdout)
}
