package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var passwordFlag string

func init() {
	loginCmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "password (defaults to ORBIT_PASSWORD)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := passwordFlag
		if password == "" {
			password = os.Getenv("ORBIT_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("no password given (use --password or ORBIT_PASSWORD)")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		response, err := client.Login(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		slog.Info("logged in", "user", response.User.Email, "company", response.User.Company)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the session and clear local tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		client.Logout(cmd.Context())
		slog.Info("logged out")
		return nil
	},
}
