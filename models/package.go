package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Package struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	GuestLimit  int                `bson:"guest_limit,omitempty" json:"guest_limit,omitempty"`
	Services    []string           `bson:"services" json:"services"`
	Images      []string           `bson:"images" json:"images"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`

	// Enriched fields
	IsFavorite bool             `json:"is_favorite,omitempty" bson:"-"`
	Reviews    []ReviewResponse `json:"reviews,omitempty" bson:"-"`
}

// UserPackage is a user's booking of a catalog package, with its own
// payment ledger tracked separately from ad-hoc bookings.
type UserPackage struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	PackageID       primitive.ObjectID `bson:"package_id" json:"package_id"`
	PackageTitle    string             `bson:"package_title" json:"package_title"`
	EventDate       string             `bson:"event_date" json:"event_date"`
	EventTime       string             `bson:"event_time" json:"event_time"`
	GuestCount      int                `bson:"guest_count" json:"guest_count"`
	Price           float64            `bson:"price" json:"price"`
	PaidAmount      float64            `bson:"paid_amount" json:"paid_amount"`
	DueAmount       float64            `bson:"due_amount" json:"due_amount"`
	Status          string             `bson:"status" json:"status"` // booked, partial, paid
	PaymentIntentID string             `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
