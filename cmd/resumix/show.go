package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumix/resumix/internal/projection"
)

var showMode string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored resume document",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMode, "mode", "view", "Presentation mode: view, edit, parameters-only, view-source")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	if err := restoreSession(cmd.Context(), c); err != nil {
		return err
	}

	doc, ok := c.LoadDocument()
	if !ok {
		fmt.Println("No resume stored yet; showing the empty default.")
	}
	printer().PrintDocument(projection.Project(doc, projection.ParseMode(showMode)))
	return nil
}
