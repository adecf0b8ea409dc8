package profile

import (
	"time"

	"github.com/creatorpulse/admin-api/internal/models"
)

// Assemble merges the per-account enrichment outputs into one profile.
// Every optional input has an explicit default so nothing undefined leaks
// into the output: empty strings, zeros, empty maps, or null for true
// absence (a user who never logged in keeps lastActivityAt null).
func Assemble(account *models.Account, intake *models.IntakeRecord,
	workspaces []models.Workspace, primary models.Workspace,
	rollup *models.SocialMediaSummary,
	status, statusReason string, daysSinceLastActivity, engagementScore int,
	now time.Time) *models.Profile {

	views := make([]models.WorkspaceView, 0, len(workspaces))
	for _, workspace := range workspaces {
		views = append(views, workspaceView(workspace))
	}
	primaryView := workspaceView(primary)

	if rollup == nil {
		rollup = EmptyRollup(len(views))
	}

	displayName := account.DisplayName
	if displayName == "" {
		displayName = account.Username
	}
	plan := account.Plan
	if plan == "" {
		plan = "free"
	}

	prof := &models.Profile{
		ID:          account.ID.Hex(),
		Email:       account.Email,
		Username:    account.Username,
		DisplayName: displayName,

		Plan:            plan,
		Stage:           account.Stage,
		IsOnboarded:     account.IsOnboarded,
		IsEmailVerified: account.IsEmailVerified,
		IsBanned:        account.IsBanned,
		IsEarlyAccess:   account.IsEarlyAccess,

		Credits:          account.Credits,
		LoginCount:       account.LoginCount,
		DailyLoginStreak: account.DailyLoginStreak,
		TotalReferrals:   account.TotalReferrals,
		ReferralEarnings: account.ReferralEarnings,

		Preferences: account.Preferences.Resolve(),

		Workspace:  &primaryView,
		Workspaces: views,

		SocialMedia: rollup,

		Status:                status,
		StatusReason:          statusReason,
		DaysSinceLastActivity: daysSinceLastActivity,
		EngagementScore:       engagementScore,

		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
		LastActivityAt: account.LastActivityAt,

		JoinedAt:       account.CreatedAt.Format("Jan 2, 2006"),
		LastActive:     lastActiveLabel(account.LastActivityAt),
		UsageFrequency: usageFrequency(account.LastActivityAt, daysSinceLastActivity),
	}

	if intake != nil {
		prof.Intake = &models.IntakeView{
			BusinessType: intake.BusinessType,
			TeamSize:     intake.TeamSize,
			CurrentTools: intake.CurrentTools,
			PrimaryGoal:  intake.PrimaryGoal,
			ContentTypes: intake.ContentTypes,
			Urgency:      intake.Urgency,
		}
	}

	return prof
}

// DaysSinceLastActivity computes the non-negative day count since the
// account's last activity, falling back to the creation time for users
// who never logged in.
func DaysSinceLastActivity(account *models.Account, now time.Time) int {
	last := account.CreatedAt
	if account.LastActivityAt != nil {
		last = *account.LastActivityAt
	}
	days := int(now.Sub(last).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

func workspaceView(workspace models.Workspace) models.WorkspaceView {
	return models.WorkspaceView{
		ID:            workspace.ID.Hex(),
		Name:          workspace.Name,
		Theme:         workspace.Theme,
		AIPersonality: workspace.AIPersonality,
		Credits:       workspace.Credits,
		IsDefault:     workspace.IsDefault,
		CreatedAt:     workspace.CreatedAt,
	}
}

func lastActiveLabel(lastActivityAt *time.Time) string {
	if lastActivityAt == nil {
		return "Never"
	}
	return lastActivityAt.Format("Jan 2, 2006")
}

// usageFrequency is display sugar bucketed from recency, not business
// logic; the classifier owns the real recency rules.
func usageFrequency(lastActivityAt *time.Time, days int) string {
	if lastActivityAt == nil {
		return "never"
	}
	switch {
	case days <= 1:
		return "daily"
	case days <= 7:
		return "weekly"
	case days <= 30:
		return "monthly"
	default:
		return "rarely"
	}
}
