package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medisuite/clinica/internal/model"
)

var errNotAuthenticated = errors.New("not logged in")

// requireAuth gates the data commands the way the pages sit behind the
// login screen.
func requireAuth(app *App) error {
	if !app.Session.IsAuthenticated() {
		return errNotAuthenticated
	}
	return nil
}

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.Login(cmd.Context(), email, password) {
				return errors.New("login failed")
			}
			user := app.Session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Session.CurrentUser()
			if user == nil {
				return errNotAuthenticated
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	req := &model.RegisterRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.Register(cmd.Context(), req) {
				return errors.New("registration failed (email in use or invalid input)")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "given name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "family name")
	cmd.Flags().StringVar(&req.Role, "role", model.RoleReceptionist, "role (admin|doctor|nurse|receptionist)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")

	return cmd
}

func newForgotPasswordCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.ForgotPassword(cmd.Context(), args[0]) {
				return fmt.Errorf("no account for %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reset instructions sent")
			return nil
		},
	}
}
