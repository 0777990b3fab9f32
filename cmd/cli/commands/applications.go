package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/services"
)

// ApplyCmd creates the apply command
func ApplyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <event_id>",
		Short: "Apply to volunteer at an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			application, err := services.Apply(app.Ctx, app.Database, app.Logger, acct, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Applied to %q. Status: %s\n\n", application.Title, statusLabel(application.Status))
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// ListApplicationsCmd creates the listApplications command
func ListApplicationsCmd(app *AppContext) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "listApplications",
		Short: "List applications (managers: to your events, volunteers: your own)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			apps, err := services.ListApplications(app.Ctx, app.Database, app.Logger, acct, model.Status(status), search)
			if err != nil {
				return err
			}

			printApplications(cmd.OutOrStdout(), apps, acct.Role == model.RoleManager)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only applications with this status: pending, accepted or rejected")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text to find in title or applicant")
	addAuthFlags(cmd)
	return cmd
}

// UpdateStatusCmd creates the updateStatus command
func UpdateStatusCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateStatus <event_id> <applicant_email> <accepted|rejected>",
		Short: "Accept or reject a pending application to your event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			application, err := services.UpdateStatus(app.Ctx, app.Database, app.Logger, app.Notifier, acct, id, args[1], model.Status(args[2]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ %s's application for %q is now %s\n\n", application.Applicant, application.Title, statusLabel(application.Status))
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the events you were accepted to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			apps, err := services.History(app.Ctx, app.Database, app.Logger, acct)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(apps) == 0 {
				fmt.Fprintln(out, "\nNo volunteering history yet.")
				return nil
			}
			fmt.Fprintf(out, "\nVolunteering history (%d):\n\n", len(apps))
			for _, a := range apps {
				fmt.Fprintf(out, "  ✓ %-30s organised by %s\n", a.Title, a.Organizer)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}
