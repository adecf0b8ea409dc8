package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supported platform tags
const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformFacebook  = "facebook"
)

// KnownPlatform reports whether the tag is one of the supported platforms.
func KnownPlatform(platform string) bool {
	switch platform {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube,
		PlatformTwitter, PlatformLinkedIn, PlatformFacebook:
		return true
	}
	return false
}

// SocialAccount is one connected third-party platform handle, scoped to a
// workspace. Disconnecting flips IsActive rather than deleting the record.
type SocialAccount struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Platform string             `bson:"platform" json:"platform"`
	Handle   string             `bson:"handle" json:"handle"`

	// Audience stats
	Followers int `bson:"followers" json:"followers"`
	Following int `bson:"following" json:"following"`
	Posts     int `bson:"posts" json:"posts"`

	IsVerified bool `bson:"is_verified" json:"is_verified"`
	IsActive   bool `bson:"is_active" json:"is_active"`

	// Owning workspace. Stored as either an ObjectID or its hex string
	// depending on which writer created the record.
	WorkspaceRef interface{} `bson:"workspace_id" json:"workspace_id"`

	ConnectedAt time.Time `bson:"connected_at" json:"connected_at"`
}

// CollectionName specifies the collection name for SocialAccount
func (SocialAccount) CollectionName() string {
	return "social_accounts"
}

// WorkspaceReference returns the record's owning-workspace reference in
// normalized form, false when the record carries none.
func (s *SocialAccount) WorkspaceReference() (Ref, bool) {
	return RefFromValue(s.WorkspaceRef)
}
