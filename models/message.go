package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserMessage is a contact-form thread from a (possibly anonymous) visitor.
type UserMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string             `bson:"body" json:"body"`
	Status    string             `bson:"status" json:"status"` // open, answered
	Replies   []MessageReply     `bson:"replies" json:"replies"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type MessageReply struct {
	StaffID   primitive.ObjectID `bson:"staff_id" json:"staff_id"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// StaffMessage is an internal note between staff and admin accounts.
type StaffMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromID    primitive.ObjectID `bson:"from_id" json:"from_id"`
	FromName  string             `bson:"from_name" json:"from_name"`
	ToRole    string             `bson:"to_role" json:"to_role"` // staff or admin
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string             `bson:"body" json:"body"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
