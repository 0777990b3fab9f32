package model

import "strings"

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleManager   Role = "manager"
)

func (r Role) IsValid() bool {
	return r == RoleVolunteer || r == RoleManager
}

type VolunteerType string

const (
	VolunteerTypeStudent VolunteerType = "student"
	VolunteerTypeNormal  VolunteerType = "normal"
)

func (t VolunteerType) IsValid() bool {
	return t == VolunteerTypeStudent || t == VolunteerTypeNormal
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// Tags is the fixed vocabulary used for event tags and profile interests
var Tags = []string{
	"Teaching", "Distributing", "Arrangement", "Manual Labor",
	"Mentoring", "Administration", "Fundraising", "Transportation",
	"Skill Sharing", "Logistics", "Cleanup", "Public Outreach",
}

// IsKnownTag reports whether tag is part of the vocabulary (exact match)
func IsKnownTag(tag string) bool {
	for _, t := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// User holds the fields shared by volunteers and managers.
// Email is the identity key within a role's collection and never changes.
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Tags         string `json:"tags"` // comma-joined
	Role         Role   `json:"role,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`

	// LegacyPassword is the plaintext password written by the browser
	// version of the app. It is replaced by PasswordHash on first login.
	LegacyPassword string `json:"password,omitempty"`
}

// TagList splits the comma-joined Tags field
func (u User) TagList() []string {
	return SplitTags(u.Tags)
}

// Volunteer represents a volunteer account
type Volunteer struct {
	User
	Type VolunteerType `json:"type,omitempty"`
}

// Manager represents an event manager account
type Manager struct {
	User
}

// Account is a logged-in user: exactly one of Volunteer or Manager is set,
// matching Role.
type Account struct {
	Role      Role
	Volunteer *Volunteer
	Manager   *Manager
}

// VolunteerAccount wraps a volunteer record as an Account
func VolunteerAccount(v Volunteer) Account {
	v.Role = RoleVolunteer
	return Account{Role: RoleVolunteer, Volunteer: &v}
}

// ManagerAccount wraps a manager record as an Account
func ManagerAccount(m Manager) Account {
	m.Role = RoleManager
	return Account{Role: RoleManager, Manager: &m}
}

// User returns the shared base record
func (a Account) User() User {
	switch {
	case a.Volunteer != nil:
		return a.Volunteer.User
	case a.Manager != nil:
		return a.Manager.User
	}
	return User{}
}

func (a Account) Email() string {
	return a.User().Email
}

// DisplayName returns the name, falling back to the local part of the email
func (a Account) DisplayName() string {
	u := a.User()
	if u.Name != "" {
		return u.Name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// Event represents a volunteering event owned by a manager
type Event struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	StartDate   string   `json:"startDate"` // Date format
	EndDate     string   `json:"endDate"`   // Date format, inclusive
	Volunteers  int      `json:"volunteers"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"createdBy"`
	Tags        []string `json:"tags,omitempty"`

	// Recruiting is nil for records written without the flag; those are open.
	Recruiting *bool `json:"recruiting,omitempty"`
}

// IsRecruiting reports whether the event accepts new applications
func (e Event) IsRecruiting() bool {
	return e.Recruiting == nil || *e.Recruiting
}

// HasTag reports whether the event carries tag
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Application represents a volunteer's application to an event.
// Title, VolunteerType and Organizer are copied at apply time.
type Application struct {
	ID            string        `json:"id,omitempty"`
	EventID       int64         `json:"eventId"`
	Title         string        `json:"title"`
	Status        Status        `json:"status"`
	VolunteerType VolunteerType `json:"volunteerType,omitempty"`
	Applicant     string        `json:"applicant"`
	Organizer     string        `json:"organizer"`
	DateApplied   string        `json:"dateApplied,omitempty"` // RFC 3339
}

// Profile is a user record together with its side-stored fields
type Profile struct {
	Account     Account
	Description string
	Picture     string // data URL, empty if none
}

// SplitTags splits a comma-joined tag string, dropping blanks
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}
