package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resumix/resumix/internal/client"
)

var (
	generateFile    string
	generateName    string
	generateNoCache bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [job description or URL]",
	Short: "Generate a tailored one-page resume PDF",
	Long: `Generate a PDF resume tailored to a job posting. The argument is either
the posting text itself or a URL the server fetches; --file reads the
text from a file instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFile, "file", "", "Read the job description from a file")
	generateCmd.Flags().StringVar(&generateName, "name", "resume", "Output PDF name (without extension)")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "Ignore cached line scores and fetched postings")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	jobDescription := strings.TrimSpace(strings.Join(args, " "))
	if generateFile != "" {
		raw, err := os.ReadFile(generateFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", generateFile, err)
		}
		jobDescription = strings.TrimSpace(string(raw))
	}
	if jobDescription == "" {
		return errors.New("provide a job description, URL, or --file")
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	if err := restoreSession(cmd.Context(), c); err != nil {
		return err
	}

	path, err := c.GenerateTailoredResume(cmd.Context(), jobDescription, generateName, generateNoCache)
	if err != nil {
		return fmt.Errorf("generation failed: %s", client.UserMessage(err))
	}
	fmt.Printf("Wrote %s.\n", path)
	return nil
}
