package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the denormalized calendar entry created alongside a Booking.
// BookingID links it back to its booking so deletion never has to guess
// by matching title/date/time fields.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID primitive.ObjectID `bson:"booking_id" json:"booking_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string             `bson:"time" json:"time"` // HH:MM
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
