package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Review ---
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	PackageID primitive.ObjectID `bson:"package_id" json:"package_id"`
	Rating    int                `bson:"rating" json:"rating"` // 1–5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// --- Favorite ---
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	PackageID primitive.ObjectID `bson:"package_id" json:"package_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type ReviewResponse struct {
	ID        primitive.ObjectID `json:"id"`
	UserID    primitive.ObjectID `json:"user_id"`
	UserName  string             `json:"user_name"`
	PackageID primitive.ObjectID `json:"package_id"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt time.Time          `json:"created_at"`
}
