package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the dashboard readiness summary",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	if err := restoreSession(cmd.Context(), c); err != nil {
		return err
	}

	status := c.Session().Status()
	if status == nil {
		return errors.New("no status reported by the server")
	}
	printer().PrintUserStatus(status)
	return nil
}
