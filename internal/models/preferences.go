package models

// Preferences holds per-account settings. Every field is optional in the
// store; read through Resolve so defaults are applied in exactly one place.
type Preferences struct {
	Theme              *string `bson:"theme,omitempty" json:"theme,omitempty"`
	Language           *string `bson:"language,omitempty" json:"language,omitempty"`
	Timezone           *string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	EmailNotifications *bool   `bson:"email_notifications,omitempty" json:"email_notifications,omitempty"`
	WeeklyDigest       *bool   `bson:"weekly_digest,omitempty" json:"weekly_digest,omitempty"`
}

// ResolvedPreferences is the fully-defaulted view handed to callers.
type ResolvedPreferences struct {
	Theme              string `json:"theme"`
	Language           string `json:"language"`
	Timezone           string `json:"timezone"`
	EmailNotifications bool   `json:"emailNotifications"`
	WeeklyDigest       bool   `json:"weeklyDigest"`
}

// Resolve applies defaults for every unset field. Safe on a nil receiver.
func (p *Preferences) Resolve() ResolvedPreferences {
	resolved := ResolvedPreferences{
		Theme:              "system",
		Language:           "en",
		Timezone:           "UTC",
		EmailNotifications: true,
		WeeklyDigest:       false,
	}
	if p == nil {
		return resolved
	}
	if p.Theme != nil && *p.Theme != "" {
		resolved.Theme = *p.Theme
	}
	if p.Language != nil && *p.Language != "" {
		resolved.Language = *p.Language
	}
	if p.Timezone != nil && *p.Timezone != "" {
		resolved.Timezone = *p.Timezone
	}
	if p.EmailNotifications != nil {
		resolved.EmailNotifications = *p.EmailNotifications
	}
	if p.WeeklyDigest != nil {
		resolved.WeeklyDigest = *p.WeeklyDigest
	}
	return resolved
}
