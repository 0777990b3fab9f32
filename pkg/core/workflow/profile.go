package workflow

import (
	"encoding/base64"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// ProfileInput holds the mutable profile fields. Every field overwrites the
// stored value; email cannot change. Type is ignored for managers.
type ProfileInput struct {
	FirstName string              `json:"firstName" validate:"required"`
	LastName  string              `json:"lastName"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Type      model.VolunteerType `json:"type" validate:"omitempty,oneof=student normal"`
	Tags      []string            `json:"tags"`
}

func (in *ProfileInput) clean() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	var tags []string
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	in.Tags = tags
}

// validateProfileTags allows vocabulary tags plus any tag the record already
// carries (seeded records hold free-form tags).
func validateProfileTags(tags []string, current model.User) error {
	existing := current.TagList()
	var fields []FieldError
	for _, t := range tags {
		if !model.IsKnownTag(t) && !slices.Contains(existing, t) {
			fields = append(fields, FieldError{Field: "tags", Message: `unknown tag "` + t + `"`})
		}
	}
	if len(fields) > 0 {
		return invalid(ErrInvalidInput, fields...)
	}
	return nil
}

func applyProfile(u model.User, in ProfileInput) model.User {
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Name = strings.TrimSpace(in.FirstName + " " + in.LastName)
	u.Phone = in.Phone
	u.Address = in.Address
	u.Tags = model.JoinTags(in.Tags)
	return u
}

// SaveVolunteerProfile overwrites the profile fields of the volunteer with email
func SaveVolunteerProfile(volunteers []model.Volunteer, email string, in ProfileInput) ([]model.Volunteer, model.Volunteer, error) {
	in.clean()
	if err := validateStruct(in); err != nil {
		return nil, model.Volunteer{}, err
	}

	idx := slices.IndexFunc(volunteers, func(v model.Volunteer) bool { return v.Email == email })
	if idx < 0 {
		return nil, model.Volunteer{}, notFound(ErrUserNotFound)
	}
	if err := validateProfileTags(in.Tags, volunteers[idx].User); err != nil {
		return nil, model.Volunteer{}, err
	}

	v := volunteers[idx]
	v.User = applyProfile(v.User, in)
	if in.Type != "" {
		v.Type = in.Type
	}

	out := slices.Clone(volunteers)
	out[idx] = v
	return out, v, nil
}

// SaveManagerProfile overwrites the profile fields of the manager with email
func SaveManagerProfile(managers []model.Manager, email string, in ProfileInput) ([]model.Manager, model.Manager, error) {
	in.clean()
	in.Type = ""
	if err := validateStruct(in); err != nil {
		return nil, model.Manager{}, err
	}

	idx := slices.IndexFunc(managers, func(m model.Manager) bool { return m.Email == email })
	if idx < 0 {
		return nil, model.Manager{}, notFound(ErrUserNotFound)
	}
	if err := validateProfileTags(in.Tags, managers[idx].User); err != nil {
		return nil, model.Manager{}, err
	}

	m := managers[idx]
	m.User = applyProfile(m.User, in)

	out := slices.Clone(managers)
	out[idx] = m
	return out, m, nil
}

// SetSideEntry returns a copy of side with email mapped to value.
// Used for the description and picture maps.
func SetSideEntry(side map[string]string, email, value string) map[string]string {
	out := make(map[string]string, len(side)+1)
	maps.Copy(out, side)
	out[email] = value
	return out
}

// EncodePicture builds a data URL from raw image bytes. An empty mime type
// is sniffed from the content.
func EncodePicture(data []byte, mime string) (string, error) {
	if len(data) == 0 {
		return "", invalid(ErrMissingFields, FieldError{Field: "picture", Message: "this field is required"})
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", invalid(ErrInvalidInput, FieldError{Field: "picture", Message: "must be an image, got " + mime})
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
