package profile

import (
	"fmt"

	"github.com/creatorpulse/admin-api/internal/models"
)

// Lifecycle statuses derived for a profile
const (
	StatusActive   = "active"
	StatusTrial    = "trial"
	StatusInactive = "inactive"
	StatusDormant  = "dormant"
	StatusPending  = "pending"
	StatusBanned   = "banned"
)

// Coarse lifecycle stages stored on accounts
const (
	StageWaitlisted  = "waitlisted"
	StageEarlyAccess = "early_access"
	StageLaunched    = "launched"
	StageActive      = "active"
)

var activeTierStages = map[string]bool{
	StageLaunched:    true,
	StageEarlyAccess: true,
	StageActive:      true,
}

// statusRule is one predicate/outcome pair in the classification table.
type statusRule struct {
	name    string
	matches func(a *models.Account) bool
	outcome func(a *models.Account, days int) (string, string)
}

// statusRules is evaluated top to bottom; the first matching rule wins.
// The order is load-bearing: a ban always wins, an explicit active-tier
// stage beats the waitlist, the waitlist beats the early-access flag, and
// the early-access flag beats plain onboarded+verified. Accounts matching
// several of the later conditions get the earliest rule only.
var statusRules = []statusRule{
	{
		name:    "banned",
		matches: func(a *models.Account) bool { return a.IsBanned },
		outcome: func(*models.Account, int) (string, string) {
			return StatusBanned, "Account banned"
		},
	},
	{
		name:    "active-tier stage",
		matches: func(a *models.Account) bool { return activeTierStages[a.Stage] },
		outcome: func(_ *models.Account, days int) (string, string) {
			return bucketByRecency(days, StatusActive)
		},
	},
	{
		name:    "waitlisted",
		matches: func(a *models.Account) bool { return a.Stage == StageWaitlisted },
		outcome: func(a *models.Account, days int) (string, string) {
			if a.IsOnboarded && a.IsEmailVerified {
				return bucketByRecency(days, StatusActive)
			}
			return StatusPending, "Pending onboarding"
		},
	},
	{
		name:    "early-access flag",
		matches: func(a *models.Account) bool { return a.IsEarlyAccess },
		outcome: func(_ *models.Account, days int) (string, string) {
			return bucketByRecency(days, StatusTrial)
		},
	},
	{
		name:    "onboarded and verified",
		matches: func(a *models.Account) bool { return a.IsOnboarded && a.IsEmailVerified },
		outcome: func(_ *models.Account, days int) (string, string) {
			return bucketByRecency(days, StatusActive)
		},
	},
	{
		name:    "default",
		matches: func(*models.Account) bool { return true },
		outcome: func(*models.Account, int) (string, string) {
			return StatusInactive, "Inactive user"
		},
	},
}

// Classify derives the lifecycle status and a human-readable reason for an
// account. Pure: the result depends only on the arguments.
func Classify(account *models.Account, daysSinceLastActivity int) (string, string) {
	for _, rule := range statusRules {
		if rule.matches(account) {
			return rule.outcome(account, daysSinceLastActivity)
		}
	}
	// Unreachable: the default rule matches everything.
	return StatusInactive, "Inactive user"
}

// bucketByRecency maps days-since-activity onto a status. freshest is the
// status assigned to the <=30 day bucket (trial for early-access accounts).
func bucketByRecency(days int, freshest string) (string, string) {
	switch {
	case days <= 30:
		if freshest == StatusTrial {
			return StatusTrial, "Early access trial, active within last 30 days"
		}
		return StatusActive, "Active within last 30 days"
	case days <= 60:
		return StatusInactive, "Inactive for 30+ days"
	case days <= 90:
		return StatusDormant, "Dormant for 60+ days"
	default:
		return StatusInactive, fmt.Sprintf("Inactive for %d days", days)
	}
}
