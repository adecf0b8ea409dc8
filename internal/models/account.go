package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account represents a platform user record
type Account struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Username    string             `bson:"username" json:"username"`
	DisplayName string             `bson:"display_name,omitempty" json:"display_name,omitempty"`

	// Subscription and lifecycle
	Plan            string `bson:"plan,omitempty" json:"plan"`
	Credits         int    `bson:"credits" json:"credits"`
	Stage           string `bson:"stage,omitempty" json:"stage"` // waitlisted | early_access | launched | active
	IsOnboarded     bool   `bson:"is_onboarded" json:"is_onboarded"`
	IsEmailVerified bool   `bson:"is_email_verified" json:"is_email_verified"`
	IsBanned        bool   `bson:"is_banned,omitempty" json:"is_banned"`
	IsEarlyAccess   bool   `bson:"is_early_access,omitempty" json:"is_early_access"`

	// Engagement counters
	LoginCount       int     `bson:"login_count" json:"login_count"`
	DailyLoginStreak int     `bson:"daily_login_streak" json:"daily_login_streak"`
	TotalReferrals   int     `bson:"total_referrals" json:"total_referrals"`
	ReferralEarnings float64 `bson:"referral_earnings" json:"referral_earnings"`

	// Preferences
	Preferences *Preferences `bson:"preferences,omitempty" json:"preferences,omitempty"`

	// Workspace reference. Legacy records stored either the ObjectID or its
	// hex string; normalize through RefFromValue before any lookup.
	WorkspaceRef interface{} `bson:"workspace_id,omitempty" json:"workspace_id,omitempty"`

	// Pre-workspace Instagram connection, kept for older accounts
	InstagramHandle string `bson:"instagram_handle,omitempty" json:"instagram_handle,omitempty"`

	// Activity tracking
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
	LastActivityAt *time.Time `bson:"last_activity_at,omitempty" json:"last_activity_at,omitempty"`
}

// CollectionName specifies the collection name for Account
func (Account) CollectionName() string {
	return "users"
}

// WorkspaceReference returns the account's workspace reference in
// normalized form, false when the account carries none.
func (a *Account) WorkspaceReference() (Ref, bool) {
	return RefFromValue(a.WorkspaceRef)
}
