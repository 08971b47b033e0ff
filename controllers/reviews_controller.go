package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
)

// ---------------- CREATE ----------------
func CreateReview(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			PackageID string `json:"package_id" binding:"required"`
			Rating    int    `json:"rating" binding:"required"`
			Comment   string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}

		pkgID, err := primitive.ObjectIDFromHex(input.PackageID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pkgCol := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		if err := pkgCol.FindOne(ctx, bson.M{"_id": pkgID}).Err(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "package not found"})
			return
		}

		now := time.Now()
		review := models.Review{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			PackageID: pkgID,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("reviews")
		if _, err := col.InsertOne(ctx, review); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create review"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": review.ID.Hex(), "message": "review created"})
	}
}

// ---------------- LIST BY PACKAGE ----------------
func ListPackageReviews(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkgID, err := primitive.ObjectIDFromHex(c.Param("packageId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.JSON(http.StatusOK, loadPackageReviews(ctx, cfg, pkgID))
	}
}

// loadPackageReviews fetches a package's reviews with the reviewer's
// username resolved for display.
func loadPackageReviews(ctx context.Context, cfg *config.Config, pkgID primitive.ObjectID) []models.ReviewResponse {
	col := cfg.MongoClient.Database(cfg.DBName).Collection("reviews")

	cursor, err := col.Find(ctx, bson.M{"package_id": pkgID})
	if err != nil {
		return []models.ReviewResponse{}
	}

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return []models.ReviewResponse{}
	}

	users := cfg.MongoClient.Database(cfg.DBName).Collection("users")
	names := map[primitive.ObjectID]string{}

	out := make([]models.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		name, ok := names[r.UserID]
		if !ok {
			var u models.User
			if err := users.FindOne(ctx, bson.M{"_id": r.UserID}).Decode(&u); err == nil {
				name = u.Username
			}
			names[r.UserID] = name
		}
		out = append(out, models.ReviewResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			UserName:  name,
			PackageID: r.PackageID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
