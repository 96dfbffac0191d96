package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumix/resumix/internal/client"
)

var (
	signupPassword string
	signupEmail    string
	signupName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup <uid>",
	Short: "Create a password account and log in",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (min 8 characters)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	resp, err := c.Signup(cmd.Context(), args[0], signupPassword, signupEmail, signupName)
	if err != nil {
		return fmt.Errorf("signup failed: %s", client.UserMessage(err))
	}

	fmt.Printf("Account %s created.\n", args[0])
	if resp.UserStatus != nil {
		printer().PrintUserStatus(resp.UserStatus)
	}
	return nil
}
