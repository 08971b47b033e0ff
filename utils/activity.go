package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
)

// LogActivity records a user action in the activities collection for the
// admin feed. Best effort: a failed insert is logged, never surfaced.
func LogActivity(cfg *config.Config, userID primitive.ObjectID, action, detail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	activity := models.Activity{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	col := cfg.MongoClient.Database(cfg.DBName).Collection("activities")
	if _, err := col.InsertOne(ctx, activity); err != nil {
		log.Printf("failed to log activity %s for %s: %v", action, userID.Hex(), err)
	}
}
