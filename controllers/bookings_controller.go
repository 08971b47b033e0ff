package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/phillip/event-planner-go/config"
	models "github.com/phillip/event-planner-go/models"
	payments "github.com/phillip/event-planner-go/payments"
	schedule "github.com/phillip/event-planner-go/schedule"
	utils "github.com/phillip/event-planner-go/utils"
)

// statuses that keep a calendar slot occupied
var slotHoldingStatuses = bson.A{
	models.StatusPending,
	models.StatusActive,
	models.StatusPartial,
	models.StatusPaid,
}

// ---------------- CREATE ----------------
func CreateBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Authenticated user ---
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			EventTitle  string   `json:"event_title" binding:"required"`
			Package     string   `json:"package"`
			GuestCount  int      `json:"guest_count"`
			TotalAmount float64  `json:"total_amount" binding:"required"`
			EventDate   string   `json:"event_date" binding:"required"`
			EventTime   string   `json:"event_time"`
			Services    []string `json:"services"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.TotalAmount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_amount must not be negative"})
			return
		}

		slot, err := schedule.NewSlot(input.EventDate, input.EventTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		bookings := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")

		// --- Slot availability check ---
		slotFilter := bson.M{
			"event_date": slot.Date,
			"status":     bson.M{"$in": slotHoldingStatuses},
		}
		if slot.Time != "" {
			// a timed booking collides with the same time or an all-day hold
			slotFilter["event_time"] = bson.M{"$in": bson.A{slot.Time, ""}}
		}
		taken, err := bookings.CountDocuments(ctx, slotFilter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check availability"})
			return
		}
		if taken > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "date and time slot already booked"})
			return
		}

		if input.Services == nil {
			input.Services = []string{}
		}

		// initial ledger state: nothing paid yet
		ledger, err := payments.Apply(input.TotalAmount, 0, 0, models.StatusPending)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		booking := models.Booking{
			ID:          primitive.NewObjectID(),
			UserID:      userID,
			EventTitle:  input.EventTitle,
			Package:     input.Package,
			GuestCount:  input.GuestCount,
			TotalAmount: ledger.Total,
			PaidAmount:  ledger.Paid,
			DueAmount:   ledger.Due,
			Status:      ledger.Status,
			EventDate:   slot.Date,
			EventTime:   slot.Time,
			Services:    input.Services,
			Reviews:     []models.BookingReview{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := bookings.InsertOne(ctx, booking); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
			return
		}

		// --- Paired calendar entry, keyed back to the booking ---
		event := models.Event{
			ID:        primitive.NewObjectID(),
			BookingID: booking.ID,
			UserID:    userID,
			Title:     booking.EventTitle,
			Date:      booking.EventDate,
			Time:      booking.EventTime,
			CreatedAt: now,
		}
		events := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		if _, err := events.InsertOne(ctx, event); err != nil {
			// booking stands on its own; a missing calendar row only degrades the calendar view
			log.Printf("could not create calendar event for booking %s: %v", booking.ID.Hex(), err)
		}

		utils.LogActivity(cfg, userID, "booking_created", booking.EventTitle)

		c.JSON(http.StatusCreated, booking)
	}
}

// ---------------- LIST ----------------
func ListBookings(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := requireOwnerOrAdmin(c, c.Param("userId"))
		if !ok {
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{"user_id": ownerID}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if q := c.Query("q"); q != "" {
			filter["event_title"] = bson.M{"$regex": q, "$options": "i"}
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bookings"})
			return
		}

		var results []models.Booking
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode bookings"})
			return
		}

		if len(results) == 0 {
			c.JSON(http.StatusOK, []models.Booking{})
			return
		}

		// --- Pick the most recently updated booking ---
		latest := results[0]
		for _, b := range results {
			if b.UpdatedAt.After(latest.UpdatedAt) {
				latest = b
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, results)
	}
}

// ---------------- GET ----------------
func GetBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		var booking models.Booking
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("bookings").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&booking)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		if _, ok := requireOwnerOrAdmin(c, booking.UserID.Hex()); !ok {
			return
		}

		etag := utils.GenerateETag(booking.ID, booking.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, booking)
	}
}

// ---------------- PAY ----------------
//
// The whole increment-and-recompute transition runs server-side in one
// pipeline update. The filter requires due_amount >= amount, so two
// racing payments cannot jointly push paid_amount past the total: the
// second one simply matches nothing and gets a 409.
func PayBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		var input struct {
			Amount float64 `json:"amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{
			"_id":        oid,
			"user_id":    userID,
			"due_amount": bson.M{"$gte": input.Amount},
		}

		var updated models.Booking
		err = col.FindOneAndUpdate(ctx, filter,
			payments.UpdatePipeline("total_amount", input.Amount),
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == nil {
			utils.LogActivity(cfg, userID, "booking_paid",
				fmt.Sprintf("%s: %.2f paid, %.2f due", updated.EventTitle, input.Amount, updated.DueAmount))
			c.JSON(http.StatusOK, updated)
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply payment"})
			return
		}

		// Nothing matched: either the booking isn't this user's, or the
		// amount overshoots the due balance.
		var existing models.Booking
		if err := col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": payments.ErrExceedsDue.Error(),
			"due":   existing.DueAmount,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		requesterID := c.GetString("user_id")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Booking
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		if role != "admin" && existing.UserID.Hex() != requesterID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete booking"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		// Calendar entries carry the booking id, so reconciliation is a
		// keyed delete. Even an entry whose denormalized time drifted from
		// the booking is removed.
		events := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		if _, err := events.DeleteMany(ctx, bson.M{"booking_id": oid}); err != nil {
			log.Printf("could not delete calendar events for booking %s: %v", oid.Hex(), err)
		}

		utils.LogActivity(cfg, existing.UserID, "booking_deleted", existing.EventTitle)

		c.JSON(http.StatusOK, gin.H{
			"message": "booking deleted",
			"id":      oid.Hex(),
		})
	}
}

// ---------------- ADD REVIEW ----------------
func AddBookingReview(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		var input struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}

		review := models.BookingReview{
			UserID:    userID,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": oid, "user_id": userID},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set":  bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add review"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "review added", "id": oid.Hex()})
	}
}

// requireOwnerOrAdmin parses ownerHex and aborts with 403 unless the
// caller is that user or an admin.
func requireOwnerOrAdmin(c *gin.Context, ownerHex string) (primitive.ObjectID, bool) {
	ownerID, err := primitive.ObjectIDFromHex(ownerHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return primitive.NilObjectID, false
	}
	if c.GetString("role") != "admin" && c.GetString("user_id") != ownerHex {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return primitive.NilObjectID, false
	}
	return ownerID, true
}
