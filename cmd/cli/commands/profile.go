package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/services"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
)

// ShowProfileCmd creates the showProfile command
func ShowProfileCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showProfile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			profile, err := services.GetProfile(app.Ctx, app.Database, app.Logger, acct)
			if err != nil {
				return err
			}

			printProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}
	addAuthFlags(cmd)
	return cmd
}

// SaveProfileCmd creates the saveProfile command
func SaveProfileCmd(app *AppContext) *cobra.Command {
	var in workflow.ProfileInput
	var volunteerType, description string

	cmd := &cobra.Command{
		Use:   "saveProfile",
		Short: "Edit your profile; unset flags keep their current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			current, err := services.GetProfile(app.Ctx, app.Database, app.Logger, acct)
			if err != nil {
				return err
			}

			merged, desc := mergeProfileInput(cmd, current, in, model.VolunteerType(volunteerType), description)

			profile, err := services.SaveProfile(app.Ctx, app.Database, app.Logger, acct, merged, desc)
			if err != nil {
				return err
			}
			if app.Session != nil {
				app.Session = &profile.Account
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Profile saved.\n")
			printProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.FirstName, "first", "", "First name")
	flags.StringVar(&in.LastName, "last", "", "Last name")
	flags.StringVar(&in.Phone, "phone", "", "Phone number")
	flags.StringVar(&in.Address, "address", "", "Address")
	flags.StringSliceVar(&in.Tags, "tags", nil, "Skills, comma separated")
	flags.StringVar(&volunteerType, "type", "", "Volunteer type: student or normal")
	flags.StringVar(&description, "description", "", "About you")
	addAuthFlags(cmd)
	return cmd
}

// mergeProfileInput overlays the flags that were set onto the stored profile
func mergeProfileInput(cmd *cobra.Command, current model.Profile, in workflow.ProfileInput, volunteerType model.VolunteerType, description string) (workflow.ProfileInput, string) {
	u := current.Account.User()
	merged := workflow.ProfileInput{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		Tags:      u.TagList(),
	}
	if merged.FirstName == "" && merged.LastName == "" {
		merged.FirstName = u.Name
	}
	if current.Account.Volunteer != nil {
		merged.Type = current.Account.Volunteer.Type
	}
	desc := current.Description

	flags := cmd.Flags()
	if flags.Changed("first") {
		merged.FirstName = in.FirstName
	}
	if flags.Changed("last") {
		merged.LastName = in.LastName
	}
	if flags.Changed("phone") {
		merged.Phone = in.Phone
	}
	if flags.Changed("address") {
		merged.Address = in.Address
	}
	if flags.Changed("tags") {
		merged.Tags = in.Tags
	}
	if flags.Changed("type") {
		merged.Type = volunteerType
	}
	if flags.Changed("description") {
		desc = description
	}
	return merged, desc
}

// SetPictureCmd creates the setPicture command
func SetPictureCmd(app *AppContext) *cobra.Command {
	var mime string

	cmd := &cobra.Command{
		Use:   "setPicture <image_file>",
		Short: "Upload a profile picture from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := app.account(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			url, err := services.SetProfilePicture(app.Ctx, app.Database, app.Logger, acct, data, mime)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Profile picture saved (%s).\n\n", pictureSummary(url))
			return nil
		},
	}

	cmd.Flags().StringVar(&mime, "mime", "", "Image MIME type (detected from content when omitted)")
	addAuthFlags(cmd)
	return cmd
}
