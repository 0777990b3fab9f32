package gmailclient

import (
	"context"
	"fmt"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// NotifyStatusChange emails the applicant that their application was decided
func (c *Client) NotifyStatusChange(ctx context.Context, app model.Application) error {
	subject, body := statusChangeMessage(app)
	if err := c.SendEmail(ctx, app.Applicant, subject, body); err != nil {
		return fmt.Errorf("failed to notify %s: %w", app.Applicant, err)
	}
	return nil
}

func statusChangeMessage(app model.Application) (string, string) {
	switch app.Status {
	case model.StatusAccepted:
		return fmt.Sprintf("You're in: %s", app.Title),
			fmt.Sprintf("Good news! Your application for %q has been accepted.\n\nThe organizer (%s) will be in touch with the details.\n", app.Title, app.Organizer)
	case model.StatusRejected:
		return fmt.Sprintf("Update on %s", app.Title),
			fmt.Sprintf("Thank you for applying to %q. Unfortunately your application was not accepted this time.\n\nPlease keep an eye on the board for other events.\n", app.Title)
	default:
		return fmt.Sprintf("Application update: %s", app.Title),
			fmt.Sprintf("Your application for %q is now %s.\n", app.Title, app.Status)
	}
}
