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

// ---------------- ADD ----------------
func AddFavorite(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			PackageID string `json:"package_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pkgID, err := primitive.ObjectIDFromHex(input.PackageID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// check the package exists
		pkgCol := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		if err := pkgCol.FindOne(ctx, bson.M{"_id": pkgID}).Err(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "package not found"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("favorites")

		// favoriting twice is a no-op
		if n, _ := col.CountDocuments(ctx, bson.M{"user_id": userID, "package_id": pkgID}); n > 0 {
			c.JSON(http.StatusOK, gin.H{"message": "already favorited"})
			return
		}

		favorite := models.Favorite{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			PackageID: pkgID,
			CreatedAt: time.Now(),
		}
		if _, err := col.InsertOne(ctx, favorite); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add favorite"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": favorite.ID.Hex(), "message": "favorite added"})
	}
}

// ---------------- REMOVE ----------------
func RemoveFavorite(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		pkgID, err := primitive.ObjectIDFromHex(c.Param("packageId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("favorites")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"user_id": userID, "package_id": pkgID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
	}
}

// ---------------- LIST ----------------
//
// Returns the caller's favorited packages, not the raw favorite rows.
func ListFavorites(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("favorites")
		cursor, err := col.Find(ctx, bson.M{"user_id": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch favorites"})
			return
		}

		var favorites []models.Favorite
		if err := cursor.All(ctx, &favorites); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode favorites"})
			return
		}

		if len(favorites) == 0 {
			c.JSON(http.StatusOK, []models.Package{})
			return
		}

		ids := make(bson.A, 0, len(favorites))
		for _, f := range favorites {
			ids = append(ids, f.PackageID)
		}

		pkgCol := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		pkgCursor, err := pkgCol.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch packages"})
			return
		}

		var pkgs []models.Package
		if err := pkgCursor.All(ctx, &pkgs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode packages"})
			return
		}

		for i := range pkgs {
			pkgs[i].IsFavorite = true
		}

		c.JSON(http.StatusOK, pkgs)
	}
}
