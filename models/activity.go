package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity records a notable user action for the admin feed.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Action    string             `bson:"action" json:"action"` // e.g. booking_created, booking_paid
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
