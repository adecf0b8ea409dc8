package models

import (
	"time"
)

// Profile is the derived 360-degree view of one account. It is never
// persisted; every read recomputes it from the underlying collections.
type Profile struct {
	// Identity
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`

	// Lifecycle and subscription
	Plan            string `json:"plan"`
	Stage           string `json:"stage"`
	IsOnboarded     bool   `json:"isOnboarded"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsBanned        bool   `json:"isBanned"`
	IsEarlyAccess   bool   `json:"isEarlyAccess"`

	// Credits and referrals
	Credits          int     `json:"credits"`
	LoginCount       int     `json:"loginCount"`
	DailyLoginStreak int     `json:"dailyLoginStreak"`
	TotalReferrals   int     `json:"totalReferrals"`
	ReferralEarnings float64 `json:"referralEarnings"`

	Preferences ResolvedPreferences `json:"preferences"`

	// Workspaces. Workspace is the designated primary; Workspaces is the
	// full resolved set and always has at least one entry.
	Workspace  *WorkspaceView  `json:"workspace"`
	Workspaces []WorkspaceView `json:"workspaces"`

	SocialMedia *SocialMediaSummary `json:"socialMedia"`

	// Derived status
	Status                string `json:"status"`
	StatusReason          string `json:"statusReason"`
	DaysSinceLastActivity int    `json:"daysSinceLastActivity"`
	EngagementScore       int    `json:"engagementScore"`

	// Intake questionnaire, when an intake record matched by email
	Intake *IntakeView `json:"intake"`

	// Timestamps. LastActivityAt is null when the user never logged in.
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastActivityAt *time.Time `json:"lastActivityAt"`

	// Display sugar
	JoinedAt       string `json:"joinedAt"`
	LastActive     string `json:"lastActive"`
	UsageFrequency string `json:"usageFrequency"`
}

// WorkspaceView is the workspace shape embedded in a profile.
type WorkspaceView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Theme         string    `json:"theme"`
	AIPersonality string    `json:"aiPersonality"`
	Credits       int       `json:"credits"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SocialAccountView is one connected account as rendered in a profile.
type SocialAccountView struct {
	Handle      string    `json:"handle"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	Posts       int       `json:"posts"`
	Verified    bool      `json:"verified"`
	ConnectedAt time.Time `json:"connectedAt"`
	Workspace   string    `json:"workspace"`
	WorkspaceID string    `json:"workspaceId"`
}

// SocialMediaSummary is the grouped rollup of a profile's connections.
// Platforms keeps the legacy one-account-per-platform view; AllPlatforms
// carries every active connection.
type SocialMediaSummary struct {
	Platforms        map[string]SocialAccountView   `json:"platforms"`
	AllPlatforms     map[string][]SocialAccountView `json:"allPlatforms"`
	TotalConnections int                            `json:"totalConnections"`
	TotalWorkspaces  int                            `json:"totalWorkspaces"`
	Summary          string                         `json:"summary"`
}

// IntakeView is the intake questionnaire shape embedded in a profile.
type IntakeView struct {
	BusinessType string   `json:"businessType"`
	TeamSize     string   `json:"teamSize"`
	CurrentTools []string `json:"currentTools"`
	PrimaryGoal  string   `json:"primaryGoal"`
	ContentTypes []string `json:"contentTypes"`
	Urgency      string   `json:"urgency"`
}

// ProfilePage is one page of derived profiles plus pagination metadata.
type ProfilePage struct {
	Users      []*Profile `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
