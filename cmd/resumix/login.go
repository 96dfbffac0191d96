package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumix/resumix/internal/client"
	"github.com/resumix/resumix/internal/types"
)

var (
	loginPassword    string
	loginGoogleToken string
)

var loginCmd = &cobra.Command{
	Use:   "login [uid]",
	Short: "Log in with a password or a Google id token",
	Long: `Log in with uid and --password, or with --google <id-token> to use a
Google account. The Google flow creates the account on first use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().StringVar(&loginGoogleToken, "google", "", "Google id token")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	var resp *types.AuthResponse
	switch {
	case loginGoogleToken != "":
		resp, err = c.LoginOAuth(cmd.Context(), loginGoogleToken)
	case len(args) == 1 && loginPassword != "":
		resp, err = c.Login(cmd.Context(), args[0], loginPassword)
	default:
		return errors.New("provide <uid> with --password, or --google <id-token>")
	}
	if err != nil {
		return fmt.Errorf("login failed: %s", client.UserMessage(err))
	}

	fmt.Printf("Logged in as %s.\n", c.Session().UID())
	if resp.UserStatus != nil {
		printer().PrintUserStatus(resp.UserStatus)
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session tokens",
	RunE: func(_ *cobra.Command, _ []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		c.Session().Clear()
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
