package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resumix/resumix/internal/client"
	"github.com/resumix/resumix/internal/document"
)

var saveCmd = &cobra.Command{
	Use:   "save <resume.json>",
	Short: "Upload a resume document to the server",
	Long: `Validate a resume document file and persist it for the logged-in user.
Weights and biases outside the allowed ranges are clamped by the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	doc, ok := document.ValidateOrDefault(raw)
	if !ok {
		return fmt.Errorf("%s is not a valid resume document", args[0])
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	if err := restoreSession(cmd.Context(), c); err != nil {
		return err
	}

	if err := c.SaveDocument(cmd.Context(), doc); err != nil {
		return fmt.Errorf("save failed: %s", client.UserMessage(err))
	}
	fmt.Printf("Saved %d items.\n", doc.ItemCount())
	return nil
}
