package profile

import (
	"time"

	"github.com/creatorpulse/admin-api/internal/models"
)

// Engagement score weights. These numbers are product-owned; changing them
// changes reporting for support and ops, so keep them in sync with the
// dashboard documentation.
const (
	weightPerConnection = 15
	creditsDivisor      = 50
	weightPerReferral   = 10
	weightVerified      = 20
	weightPaidPlan      = 25
	weightRecentUpdate  = 15
	weightNewAccount    = 10
	weightEarlyAccess   = 15

	scoreMax = 100
)

var paidPlans = map[string]bool{
	"starter": true,
	"pro":     true,
	"agency":  true,
}

// Score computes the bounded composite engagement score for an account.
// activeConnections is the number of active social connections resolved
// for the account's workspace set.
func Score(account *models.Account, activeConnections int, now time.Time) int {
	score := activeConnections * weightPerConnection
	score += account.Credits / creditsDivisor
	score += account.TotalReferrals * weightPerReferral
	if account.IsEmailVerified {
		score += weightVerified
	}
	if paidPlans[account.Plan] {
		score += weightPaidPlan
	}
	if now.Sub(account.UpdatedAt) <= 7*24*time.Hour {
		score += weightRecentUpdate
	}
	if now.Sub(account.CreatedAt) <= 30*24*time.Hour {
		score += weightNewAccount
	}
	if account.IsEarlyAccess {
		score += weightEarlyAccess
	}

	if score < 0 {
		score = 0
	}
	if score > scoreMax {
		score = scoreMax
	}
	return score
}
