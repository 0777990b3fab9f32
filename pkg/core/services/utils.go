package services

import (
	"time"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
)

// NowFunc returns the current time in the configured time zone (mockable)
var NowFunc = time.Now

// requireManager returns the manager record of acct, or a ForbiddenError
func requireManager(acct model.Account) (model.Manager, error) {
	if acct.Role != model.RoleManager || acct.Manager == nil {
		return model.Manager{}, &workflow.ForbiddenError{Err: workflow.ErrManagerOnly}
	}
	return *acct.Manager, nil
}

// requireVolunteer returns the volunteer record of acct, or a ForbiddenError
func requireVolunteer(acct model.Account) (model.Volunteer, error) {
	if acct.Role != model.RoleVolunteer || acct.Volunteer == nil {
		return model.Volunteer{}, &workflow.ForbiddenError{Err: workflow.ErrVolunteerOnly}
	}
	return *acct.Volunteer, nil
}
