package models

import (
	"time"
)

// Workspace is a named container owning a set of social-platform
// connections and a credit balance. Accounts may have zero, one, or many.
type Workspace struct {
	// The _id itself is loosely typed: legacy writers created workspaces
	// keyed by opaque strings rather than ObjectIDs.
	ID            Ref    `bson:"_id,omitempty" json:"id"`
	Name          string `bson:"name" json:"name"`
	Theme         string `bson:"theme,omitempty" json:"theme,omitempty"`
	AIPersonality string `bson:"ai_personality,omitempty" json:"ai_personality,omitempty"`
	Credits       int    `bson:"credits" json:"credits"`

	// Ownership and membership. Reference fields are loosely typed in the
	// store; normalize through RefFromValue.
	OwnerRef    interface{}   `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	Members     []interface{} `bson:"members,omitempty" json:"members,omitempty"`
	TeamMembers []TeamMember  `bson:"team_members,omitempty" json:"team_members,omitempty"`

	IsDefault  bool      `bson:"is_default,omitempty" json:"is_default"`
	MaxMembers int       `bson:"max_members,omitempty" json:"max_members"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember is one entry in a workspace's team-member list.
type TeamMember struct {
	UserRef interface{} `bson:"user_id" json:"user_id"`
	Role    string      `bson:"role,omitempty" json:"role,omitempty"`
}

// CollectionName specifies the collection name for Workspace
func (Workspace) CollectionName() string {
	return "workspaces"
}
