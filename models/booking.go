package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. A booking starts as StatusPending and moves to
// StatusPartial / StatusPaid as payments land (see payments package).
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusPartial = "partial"
	StatusPaid    = "paid"
	StatusBooked  = "booked"
)

type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	EventTitle  string             `bson:"event_title" json:"event_title"`
	Package     string             `bson:"package,omitempty" json:"package,omitempty"`
	GuestCount  int                `bson:"guest_count" json:"guest_count"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	PaidAmount  float64            `bson:"paid_amount" json:"paid_amount"`
	DueAmount   float64            `bson:"due_amount" json:"due_amount"`
	Status      string             `bson:"status" json:"status"`
	EventDate   string             `bson:"event_date" json:"event_date"` // YYYY-MM-DD
	EventTime   string             `bson:"event_time" json:"event_time"` // HH:MM
	Services    []string           `bson:"services" json:"services"`
	Reviews     []BookingReview    `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// BookingReview is an embedded review left by the booking owner after the event.
type BookingReview struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Rating    int                `bson:"rating" json:"rating"` // 1–5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
