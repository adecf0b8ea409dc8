package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntakeRecord holds the pre-signup questionnaire for an email address.
// It is keyed by email, not account id: the record may predate the account
// and never links up if the emails don't match exactly.
type IntakeRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	BusinessType string             `bson:"business_type,omitempty" json:"business_type,omitempty"`
	TeamSize     string             `bson:"team_size,omitempty" json:"team_size,omitempty"`
	CurrentTools []string           `bson:"current_tools,omitempty" json:"current_tools,omitempty"`
	PrimaryGoal  string             `bson:"primary_goal,omitempty" json:"primary_goal,omitempty"`
	ContentTypes []string           `bson:"content_types,omitempty" json:"content_types,omitempty"`
	Urgency      string             `bson:"urgency,omitempty" json:"urgency,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// CollectionName specifies the collection name for IntakeRecord
func (IntakeRecord) CollectionName() string {
	return "onboarding_responses"
}
