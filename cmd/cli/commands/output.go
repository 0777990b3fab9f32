package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

func dateRange(e model.Event) string {
	if e.StartDate == e.EndDate {
		return e.StartDate
	}
	return e.StartDate + " → " + e.EndDate
}

// needLabel mirrors the high/low capacity split used by the need filter
func needLabel(volunteers int) string {
	if volunteers > workflow.CapacityThreshold {
		return "high need"
	}
	return "small team"
}

func printEvent(w io.Writer, e model.Event) {
	state := colorGreen + "recruiting" + colorReset
	if !e.IsRecruiting() {
		state = colorDim + "closed" + colorReset
	}

	fmt.Fprintf(w, "  #%d %s [%s]\n", e.ID, e.Title, state)
	fmt.Fprintf(w, "     %s · %d volunteers (%s) · by %s\n", dateRange(e), e.Volunteers, needLabel(e.Volunteers), e.CreatedBy)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "     Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Description != "" {
		fmt.Fprintf(w, "     %s\n", e.Description)
	}
	fmt.Fprintln(w)
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusAccepted:
		return colorGreen + string(s) + colorReset
	case model.StatusRejected:
		return colorRed + string(s) + colorReset
	case model.StatusPending:
		return colorYellow + string(s) + colorReset
	}
	return string(s)
}

func printApplications(w io.Writer, apps []model.Application, forManager bool) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "\nNo applications found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d applications:\n\n", len(apps))
	for _, a := range apps {
		who := a.Organizer
		if forManager {
			who = a.Applicant
			if a.VolunteerType != "" {
				who += " (" + string(a.VolunteerType) + ")"
			}
		}
		applied := a.DateApplied
		if len(applied) >= len("2006-01-02") {
			applied = applied[:len("2006-01-02")]
		}
		fmt.Fprintf(w, "  #%-4d %-28s %-36s %s  %s\n", a.EventID, a.Title, who, applied, statusLabel(a.Status))
	}
	fmt.Fprintln(w)
}

func printAccount(w io.Writer, acct model.Account) {
	u := acct.User()
	fmt.Fprintf(w, "\n%s <%s>\n", acct.DisplayName(), u.Email)
	fmt.Fprintf(w, "  Role:  %s\n", acct.Role)
	if acct.Volunteer != nil && acct.Volunteer.Type != "" {
		fmt.Fprintf(w, "  Type:  %s\n", acct.Volunteer.Type)
	}
	if u.Phone != "" {
		fmt.Fprintf(w, "  Phone: %s\n", u.Phone)
	}
	fmt.Fprintln(w)
}

func printProfile(w io.Writer, p model.Profile) {
	u := p.Account.User()
	printAccount(w, p.Account)
	if u.Address != "" {
		fmt.Fprintf(w, "  Address: %s\n", u.Address)
	}
	if tags := u.TagList(); len(tags) > 0 {
		fmt.Fprintf(w, "  Skills:  %s\n", strings.Join(tags, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "  About:   %s\n", p.Description)
	}
	fmt.Fprintf(w, "  Picture: %s\n\n", pictureSummary(p.Picture))
}

// pictureSummary describes a data URL without printing its payload
func pictureSummary(url string) string {
	if url == "" {
		return "none"
	}
	header, payload, ok := strings.Cut(url, ",")
	if !ok {
		return "set"
	}
	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	return fmt.Sprintf("%s, %d bytes encoded", mime, len(payload))
}
