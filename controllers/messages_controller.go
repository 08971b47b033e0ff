package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
	utils "github.com/phillip/event-planner-go/utils"
)

// ---------------- CREATE (public contact form) ----------------
func CreateUserMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Subject string `json:"subject"`
			Body    string `json:"body" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		msg := models.UserMessage{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Subject:   input.Subject,
			Body:      input.Body,
			Status:    "open",
			Replies:   []models.MessageReply{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create message"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": msg.ID.Hex(), "message": "message received"})
	}
}

// ---------------- LIST (staff) ----------------
func ListUserMessages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
			return
		}

		var messages []models.UserMessage
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode messages"})
			return
		}

		if len(messages) == 0 {
			c.JSON(http.StatusOK, []models.UserMessage{})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// ---------------- REPLY (staff) ----------------
func ReplyUserMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		staffID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
			return
		}

		var input struct {
			Body string `json:"body" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reply := models.MessageReply{
			StaffID:   staffID,
			Body:      input.Body,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var msg models.UserMessage
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&msg); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}

		_, err = col.UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{
				"$push": bson.M{"replies": reply},
				"$set":  bson.M{"status": "answered", "updated_at": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reply"})
			return
		}

		// notify the sender; a failed email never fails the reply
		if err := utils.SendEmail(msg.Email, msg.Name, "Re: "+msg.Subject, input.Body); err != nil {
			log.Printf("reply notification to %s failed: %v", msg.Email, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "reply sent", "id": oid.Hex()})
	}
}

// ---------------- STAFF MESSAGES ----------------
func CreateStaffMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		fromID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			ToRole  string `json:"to_role" binding:"required"`
			Subject string `json:"subject"`
			Body    string `json:"body" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.ToRole != "staff" && input.ToRole != "admin" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to_role must be staff or admin"})
			return
		}

		msg := models.StaffMessage{
			ID:        primitive.NewObjectID(),
			FromID:    fromID,
			FromName:  c.GetString("username"),
			ToRole:    input.ToRole,
			Subject:   input.Subject,
			Body:      input.Body,
			Read:      false,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("staff_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create message"})
			return
		}

		c.JSON(http.StatusCreated, msg)
	}
}

func ListStaffMessages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		col := cfg.MongoClient.Database(cfg.DBName).Collection("staff_messages")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// staff see messages addressed to staff, admins see everything
		filter := bson.M{}
		if role != "admin" {
			filter["to_role"] = role
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
			return
		}

		var messages []models.StaffMessage
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode messages"})
			return
		}

		if len(messages) == 0 {
			c.JSON(http.StatusOK, []models.StaffMessage{})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}
