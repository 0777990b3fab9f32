package workflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// PasswordCost is the bcrypt cost used for new hashes (mockable)
var PasswordCost = bcrypt.DefaultCost

// SignupInput contains the information needed to create an account.
// Type only applies to volunteers.
type SignupInput struct {
	Name     string              `json:"name" validate:"required"`
	Email    string              `json:"email" validate:"required,email"`
	Phone    string              `json:"phone"`
	Password string              `json:"password" validate:"required"`
	Type     model.VolunteerType `json:"type" validate:"omitempty,oneof=student normal"`
}

func (in *SignupInput) clean() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Password = strings.TrimSpace(in.Password)
}

// LoginResult is the outcome of a successful credential check.
// Upgraded is set when a legacy plaintext password was replaced by a hash,
// in which case the caller must persist the returned record.
type LoginResult struct {
	Account  model.Account
	Upgraded bool
}

// Authenticate finds the account matching identifier (email, phone or name)
// and password. Volunteers take precedence over managers; within a collection
// the first record matching both identifier and password wins.
func Authenticate(volunteers []model.Volunteer, managers []model.Manager, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	password = strings.TrimSpace(password)
	if identifier == "" || password == "" {
		return LoginResult{}, notFound(ErrNoMatch)
	}

	for _, v := range volunteers {
		if !matchesIdentifier(v.User, identifier) {
			continue
		}
		ok, upgraded, err := checkPassword(&v.User, password)
		if err != nil {
			return LoginResult{}, err
		}
		if ok {
			return LoginResult{Account: model.VolunteerAccount(v), Upgraded: upgraded}, nil
		}
	}

	for _, m := range managers {
		if !matchesIdentifier(m.User, identifier) {
			continue
		}
		ok, upgraded, err := checkPassword(&m.User, password)
		if err != nil {
			return LoginResult{}, err
		}
		if ok {
			return LoginResult{Account: model.ManagerAccount(m), Upgraded: upgraded}, nil
		}
	}

	return LoginResult{}, notFound(ErrNoMatch)
}

func matchesIdentifier(u model.User, identifier string) bool {
	return u.Email == identifier ||
		(u.Phone != "" && u.Phone == identifier) ||
		(u.Name != "" && u.Name == identifier)
}

// checkPassword verifies pwd against u. A record that only has a legacy
// plaintext password is upgraded in place on success.
func checkPassword(u *model.User, pwd string) (ok bool, upgraded bool, err error) {
	if u.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		if err != nil {
			return false, false, fmt.Errorf("failed to compare password hash: %w", err)
		}
		return true, false, nil
	}

	// entered passwords are trimmed, so trim the stored plaintext the same way
	legacy := strings.TrimSpace(u.LegacyPassword)
	if legacy == "" || legacy != pwd {
		return false, false, nil
	}
	if err := setPassword(u, pwd); err != nil {
		return false, false, err
	}
	return true, true, nil
}

func setPassword(u *model.User, pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), PasswordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.LegacyPassword = ""
	return nil
}

// splitName splits a full name on whitespace into first name and the rest
func splitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func newUser(in SignupInput, role model.Role) (model.User, error) {
	first, last := splitName(in.Name)
	u := model.User{
		Email:     in.Email,
		Name:      in.Name,
		FirstName: first,
		LastName:  last,
		Phone:     in.Phone,
		Address:   "",
		Tags:      "",
		Role:      role,
	}
	if err := setPassword(&u, in.Password); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// SignupVolunteer appends a new volunteer to a copy of volunteers.
// It fails with ErrEmailTaken if a volunteer already uses the email.
func SignupVolunteer(volunteers []model.Volunteer, in SignupInput) ([]model.Volunteer, model.Volunteer, error) {
	in.clean()
	if err := validateStruct(in); err != nil {
		return nil, model.Volunteer{}, err
	}
	for _, v := range volunteers {
		if v.Email == in.Email {
			return nil, model.Volunteer{}, conflict(ErrEmailTaken)
		}
	}

	u, err := newUser(in, model.RoleVolunteer)
	if err != nil {
		return nil, model.Volunteer{}, err
	}
	vt := in.Type
	if vt == "" {
		vt = model.VolunteerTypeStudent
	}
	v := model.Volunteer{User: u, Type: vt}

	return append(slices.Clone(volunteers), v), v, nil
}

// SignupManager appends a new manager to a copy of managers.
// It fails with ErrEmailTaken if a manager already uses the email.
func SignupManager(managers []model.Manager, in SignupInput) ([]model.Manager, model.Manager, error) {
	in.clean()
	in.Type = ""
	if err := validateStruct(in); err != nil {
		return nil, model.Manager{}, err
	}
	for _, m := range managers {
		if m.Email == in.Email {
			return nil, model.Manager{}, conflict(ErrEmailTaken)
		}
	}

	u, err := newUser(in, model.RoleManager)
	if err != nil {
		return nil, model.Manager{}, err
	}
	m := model.Manager{User: u}

	return append(slices.Clone(managers), m), m, nil
}

// ReplaceVolunteer returns a copy of volunteers with the record matching v's email replaced
func ReplaceVolunteer(volunteers []model.Volunteer, v model.Volunteer) []model.Volunteer {
	out := slices.Clone(volunteers)
	for i := range out {
		if out[i].Email == v.Email {
			out[i] = v
		}
	}
	return out
}

// ReplaceManager returns a copy of managers with the record matching m's email replaced
func ReplaceManager(managers []model.Manager, m model.Manager) []model.Manager {
	out := slices.Clone(managers)
	for i := range out {
		if out[i].Email == m.Email {
			out[i] = m
		}
	}
	return out
}
