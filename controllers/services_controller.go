package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
	utils "github.com/phillip/event-planner-go/utils"
)

// ---------------- CREATE (staff) ----------------
func CreateService(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		// --- Bind form fields ---
		var input struct {
			Title       string  `form:"title" binding:"required"`
			Description string  `form:"description"`
			Price       float64 `form:"price" binding:"required"`
			Category    string  `form:"category"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		imageURLs, err := collectUploads(c, "services")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		now := time.Now()
		service := models.Service{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			Price:       input.Price,
			Category:    input.Category,
			Images:      imageURLs,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("services")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, service); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create service"})
			return
		}

		c.JSON(http.StatusCreated, service)
	}
}

// ---------------- LIST ----------------
func ListServices(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("services")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}
		if q := c.Query("q"); q != "" {
			filter["title"] = bson.M{"$regex": q, "$options": "i"}
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch services"})
			return
		}

		var services []models.Service
		if err := cursor.All(ctx, &services); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode services"})
			return
		}

		if len(services) == 0 {
			c.JSON(http.StatusOK, []models.Service{})
			return
		}

		// --- Pick the most recently updated service ---
		latest := services[0]
		for _, s := range services {
			if s.UpdatedAt.After(latest.UpdatedAt) {
				latest = s
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, services)
	}
}

// ---------------- GET ----------------
func GetService(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var service models.Service
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("services").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&service)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		etag := utils.GenerateETag(service.ID, service.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, service)
	}
}

// ---------------- UPDATE (staff) ----------------
func UpdateService(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var input struct {
			Title       string   `form:"title"`
			Description string   `form:"description"`
			Price       *float64 `form:"price"`
			Category    string   `form:"category"`
			Images      []string `form:"images"` // existing image URLs to keep
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Price != nil {
			if *input.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
				return
			}
			update["price"] = *input.Price
		}
		if input.Category != "" {
			update["category"] = input.Category
		}

		newImageURLs, err := collectUploads(c, "services")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}
		if input.Images != nil || len(newImageURLs) > 0 {
			update["images"] = append(input.Images, newImageURLs...)
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("services")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var updated models.Service
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update service"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "service updated",
			"service": updated,
		})
	}
}

// ---------------- DELETE (staff) ----------------
func DeleteService(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("services")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Service
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		for _, img := range existing.Images {
			utils.DeleteFromCloudinary(img)
		}

		c.JSON(http.StatusOK, gin.H{"message": "service deleted", "id": oid.Hex()})
	}
}
