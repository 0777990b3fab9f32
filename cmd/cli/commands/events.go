package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/services"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
)

// addEventFlags registers the editable event fields on flags
func addEventFlags(flags *pflag.FlagSet, in *workflow.EventInput) {
	flags.StringVar(&in.Title, "title", "", "Event title")
	flags.StringVar(&in.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	flags.StringVar(&in.EndDate, "end", "", "End date (YYYY-MM-DD, inclusive)")
	flags.IntVar(&in.Volunteers, "volunteers", 0, "Number of volunteers needed")
	flags.StringVar(&in.Description, "description", "", "Event description")
	flags.StringSliceVar(&in.Tags, "tags", nil, fmt.Sprintf("Up to %d tags, comma separated", workflow.MaxEventTags))
}

func parseEventID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("event id must be a number, got: %s", s)
	}
	return id, nil
}

// CreateEventCmd creates the createEvent command
func CreateEventCmd(app *AppContext) *cobra.Command {
	var in workflow.EventInput

	cmd := &cobra.Command{
		Use:   "createEvent",
		Short: "Create an event (managers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			event, err := services.CreateEvent(app.Ctx, app.Database, app.Logger, acct, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Event created successfully!\n\n")
			printEvent(cmd.OutOrStdout(), event)
			return nil
		},
	}

	addEventFlags(cmd.Flags(), &in)
	addAuthFlags(cmd)
	return cmd
}

// CreateEventSeriesCmd creates the createEventSeries command
func CreateEventSeriesCmd(app *AppContext) *cobra.Command {
	var in workflow.EventInput
	var rule string

	cmd := &cobra.Command{
		Use:   "createEventSeries",
		Short: "Create one event per occurrence of a recurrence rule (managers only)",
		Long: `Create a series of events. The first occurrence uses --start and --end;
every later occurrence keeps the same duration.

Example:
  createEventSeries --title "Park Litter Pick" --start 2025-03-01 --end 2025-03-01 \
    --volunteers 8 --description "Monthly pick" --rrule "FREQ=MONTHLY;COUNT=6"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			events, err := services.CreateEventSeries(app.Ctx, app.Database, app.Logger, acct, in, rule)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Created %d events:\n\n", len(events))
			for _, e := range events {
				fmt.Fprintf(out, "  %d. %s  %s\n", e.ID, dateRange(e), e.Title)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	addEventFlags(cmd.Flags(), &in)
	cmd.Flags().StringVar(&rule, "rrule", "", "RFC 5545 recurrence rule, e.g. FREQ=WEEKLY;COUNT=4")
	addAuthFlags(cmd)
	return cmd
}

// UpdateEventCmd creates the updateEvent command
func UpdateEventCmd(app *AppContext) *cobra.Command {
	var in workflow.EventInput

	cmd := &cobra.Command{
		Use:   "updateEvent <event_id>",
		Short: "Edit an event you created; unset flags keep their current values",
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

			merged, err := app.mergeEventInput(cmd, id, in)
			if err != nil {
				return err
			}

			event, err := services.UpdateEvent(app.Ctx, app.Database, app.Logger, acct, id, merged)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Event updated.\n\n")
			printEvent(cmd.OutOrStdout(), event)
			return nil
		},
	}

	addEventFlags(cmd.Flags(), &in)
	addAuthFlags(cmd)
	return cmd
}

// mergeEventInput starts from the stored event and applies only the flags that were set
func (app *AppContext) mergeEventInput(cmd *cobra.Command, id int64, in workflow.EventInput) (workflow.EventInput, error) {
	events, err := app.Database.GetEvents(app.Ctx)
	if err != nil {
		return workflow.EventInput{}, fmt.Errorf("failed to fetch events: %w", err)
	}
	current, ok := workflow.FindEvent(events, id)
	if !ok {
		return in, nil
	}

	merged := workflow.EventInput{
		Title:       current.Title,
		StartDate:   current.StartDate,
		EndDate:     current.EndDate,
		Volunteers:  current.Volunteers,
		Description: current.Description,
		Tags:        current.Tags,
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		merged.Title = in.Title
	}
	if flags.Changed("start") {
		merged.StartDate = in.StartDate
	}
	if flags.Changed("end") {
		merged.EndDate = in.EndDate
	}
	if flags.Changed("volunteers") {
		merged.Volunteers = in.Volunteers
	}
	if flags.Changed("description") {
		merged.Description = in.Description
	}
	if flags.Changed("tags") {
		merged.Tags = in.Tags
	}
	return merged, nil
}

// EndRecruitingCmd creates the endRecruiting command
func EndRecruitingCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endRecruiting <event_id>",
		Short: "Stop accepting applications for an event",
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

			event, err := services.EndRecruiting(app.Ctx, app.Database, app.Logger, acct, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Recruiting ended for %q.\n\n", event.Title)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// DeleteEventCmd creates the deleteEvent command
func DeleteEventCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deleteEvent <event_id>",
		Short: "Delete an event and all of its applications",
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

			removed, err := services.DeleteEvent(app.Ctx, app.Database, app.Logger, acct, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Event %d deleted (%d application(s) removed).\n\n", id, removed)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// ListEventsCmd creates the listEvents command
func ListEventsCmd(app *AppContext) *cobra.Command {
	var search, need, tag string

	cmd := &cobra.Command{
		Use:   "listEvents",
		Short: "List events (managers: your events, volunteers: open events)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}
			n, err := workflow.ParseNeed(need)
			if err != nil {
				return err
			}

			app.Logger.Debug("listEvents command", zap.String("search", search), zap.String("need", need), zap.String("tag", tag))

			events, err := services.ListEvents(app.Ctx, app.Database, app.Logger, acct, workflow.EventFilter{
				Search: search,
				Need:   n,
				Tag:    tag,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "\nNo events found.")
				return nil
			}
			fmt.Fprintf(out, "\nFound %d events:\n\n", len(events))
			for _, e := range events {
				printEvent(out, e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text to find in title or description")
	cmd.Flags().StringVar(&need, "need", "", "Capacity filter: all, high or low")
	cmd.Flags().StringVar(&tag, "tag", "", "Only events carrying this tag")
	addAuthFlags(cmd)
	return cmd
}
