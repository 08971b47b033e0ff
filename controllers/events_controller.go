package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
	schedule "github.com/phillip/event-planner-go/schedule"
)

// ---------------- LIST ----------------
//
// Calendar entries are created and deleted by the booking handlers;
// this endpoint only reads them for the calendar view.
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := requireOwnerOrAdmin(c, c.Param("userId"))
		if !ok {
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{"user_id": ownerID}
		if rawDate := c.Query("date"); rawDate != "" {
			date, err := schedule.NormalizeDate(rawDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter["date"] = date
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		c.JSON(http.StatusOK, events)
	}
}
