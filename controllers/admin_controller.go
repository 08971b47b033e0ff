package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
)

// ---------------- STATS ----------------
func AdminStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		counts := gin.H{}
		for _, name := range []string{
			"users", "bookings", "events", "packages",
			"user_packages", "services", "reviews", "user_messages",
		} {
			n, err := db.Collection(name).CountDocuments(ctx, bson.M{})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count " + name})
				return
			}
			counts[name] = n
		}

		// revenue collected and outstanding across both ledgers
		revenue := gin.H{}
		for col, totalField := range map[string]string{
			"bookings":      "total_amount",
			"user_packages": "price",
		} {
			cursor, err := db.Collection(col).Aggregate(ctx, bson.A{
				bson.M{"$group": bson.M{
					"_id":   nil,
					"total": bson.M{"$sum": "$" + totalField},
					"paid":  bson.M{"$sum": "$paid_amount"},
					"due":   bson.M{"$sum": "$due_amount"},
				}},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not aggregate " + col})
				return
			}
			var rows []bson.M
			if err := cursor.All(ctx, &rows); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode " + col + " totals"})
				return
			}
			if len(rows) > 0 {
				delete(rows[0], "_id")
				revenue[col] = rows[0]
			} else {
				revenue[col] = gin.H{"total": 0, "paid": 0, "due": 0}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"counts":  counts,
			"revenue": revenue,
		})
	}
}

// ---------------- ACTIVITY FEED ----------------
func ListActivities(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("activities")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if action := c.Query("action"); action != "" {
			filter["action"] = action
		}

		// newest first, capped so the feed stays light
		opts := options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetLimit(200)

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch activities"})
			return
		}

		var activities []models.Activity
		if err := cursor.All(ctx, &activities); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode activities"})
			return
		}

		if len(activities) == 0 {
			c.JSON(http.StatusOK, []models.Activity{})
			return
		}

		c.JSON(http.StatusOK, activities)
	}
}
