package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/services"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
)

var errNotLoggedIn = errors.New("not logged in: pass --user (and --password) or run login in an interactive session")

// TerminalPassword prompts on stdin without echo when stdin is a terminal
func TerminalPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password required: stdin is not a terminal, pass --password")
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// addAuthFlags registers the credentials used by one-shot commands
func addAuthFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "Email, phone or name to log in with")
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted on a terminal)")
}

// password returns the --password flag, prompting when it was not given
func (app *AppContext) password(cmd *cobra.Command, prompt string) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw != "" || cmd.Flags().Changed("password") {
		return pw, nil
	}
	if app.PromptPassword == nil {
		return "", fmt.Errorf("password required: pass --password")
	}
	return app.PromptPassword(prompt)
}

// account resolves the acting user: --user wins, then the interactive session
func (app *AppContext) account(cmd *cobra.Command) (model.Account, error) {
	user, _ := cmd.Flags().GetString("user")
	user = strings.TrimSpace(user)

	if user == "" {
		if app.Session == nil {
			return model.Account{}, errNotLoggedIn
		}
		acct, err := services.RefreshAccount(app.Ctx, app.Database, *app.Session)
		if err != nil {
			return model.Account{}, err
		}
		app.Session = &acct
		return acct, nil
	}

	pw, err := app.password(cmd, "Password: ")
	if err != nil {
		return model.Account{}, err
	}
	return services.Login(app.Ctx, app.Database, app.Logger, user, pw)
}

// SignupCmd creates the signup command
func SignupCmd(app *AppContext) *cobra.Command {
	var role, name, email, phone, volunteerType string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a volunteer or manager account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := app.password(cmd, "Choose a password: ")
			if err != nil {
				return err
			}

			acct, err := services.Signup(app.Ctx, app.Database, app.Logger, model.Role(role), workflow.SignupInput{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Password: pw,
				Type:     model.VolunteerType(volunteerType),
			})
			if err != nil {
				return err
			}

			app.Session = &acct
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Account created for %s (%s)\n\n", acct.DisplayName(), acct.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(model.RoleVolunteer), "Account role: volunteer or manager")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&volunteerType, "type", "", "Volunteer type: student or normal")
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted on a terminal)")

	return cmd
}

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email, phone or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			if strings.TrimSpace(user) == "" {
				return fmt.Errorf("--user is required")
			}

			acct, err := app.account(cmd)
			if err != nil {
				return err
			}
			app.Session = &acct

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Welcome, %s (%s)\n", acct.DisplayName(), acct.Role)

			if acct.Role == model.RoleManager {
				pending, err := services.PendingCount(app.Ctx, app.Database, acct)
				if err != nil {
					app.Logger.Warn("Failed to count pending applications", zap.Error(err))
				} else if pending > 0 {
					fmt.Fprintf(out, "  %d pending application(s) waiting for review\n", pending)
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// WhoamiCmd creates the whoami command
func WhoamiCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}
			printAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			app.Logger.Info("Logged out", zap.String("email", app.Session.Email()))
			app.Session = nil
			fmt.Fprintln(cmd.OutOrStdout(), "👋 Logged out.")
			return nil
		},
	}
}
