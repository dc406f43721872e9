package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if password == "" {
				password, err = readLine(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			user, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var username string
	var email string
	var password string
	var confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Confirmation mismatch never reaches the network.
			if confirm != "" && confirm != password {
				return writeErr(cmd, errors.New("Passwords do not match"))
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			confirmed := confirm
			if confirmed == "" {
				confirmed = password
			}
			user, err := c.Register(cmd.Context(), username, email, password, confirmed)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"status": "logged out"}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Authenticated() {
				return writeErr(cmd, errLoggedOut)
			}
			user, err := c.Me(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}
}

func readLine(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
