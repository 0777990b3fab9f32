package commands

import "github.com/spf13/cobra"

// Register adds every command to root
func Register(root *cobra.Command, app *AppContext) {
	root.AddCommand(
		SignupCmd(app),
		LoginCmd(app),
		WhoamiCmd(app),
		LogoutCmd(app),
		CreateEventCmd(app),
		CreateEventSeriesCmd(app),
		UpdateEventCmd(app),
		EndRecruitingCmd(app),
		DeleteEventCmd(app),
		ListEventsCmd(app),
		ApplyCmd(app),
		ListApplicationsCmd(app),
		UpdateStatusCmd(app),
		HistoryCmd(app),
		ShowProfileCmd(app),
		SaveProfileCmd(app),
		SetPictureCmd(app),
		InteractiveCmd(app),
	)
}
