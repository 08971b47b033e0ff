package controllers

import (
	"context"
	"fmt"
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

// ---------------- CREATE (staff) ----------------
func CreatePackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		// --- Bind form fields ---
		var input struct {
			Title       string   `form:"title" binding:"required"`
			Description string   `form:"description"`
			Price       float64  `form:"price" binding:"required"`
			GuestLimit  int      `form:"guest_limit"`
			Services    []string `form:"services"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		imageURLs, err := collectUploads(c, "packages")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		if input.Services == nil {
			input.Services = []string{}
		}

		now := time.Now()
		pkg := models.Package{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			Price:       input.Price,
			GuestLimit:  input.GuestLimit,
			Services:    input.Services,
			Images:      imageURLs,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, pkg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create package"})
			return
		}

		c.JSON(http.StatusCreated, pkg)
	}
}

// ---------------- LIST ----------------
func ListPackages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if q := c.Query("q"); q != "" {
			filter["title"] = bson.M{"$regex": q, "$options": "i"}
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch packages"})
			return
		}

		var pkgs []models.Package
		if err := cursor.All(ctx, &pkgs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode packages"})
			return
		}

		if len(pkgs) == 0 {
			c.JSON(http.StatusOK, []models.Package{})
			return
		}

		// --- Pick the most recently updated package ---
		latest := pkgs[0]
		for _, p := range pkgs {
			if p.UpdatedAt.After(latest.UpdatedAt) {
				latest = p
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, pkgs)
	}
}

// ---------------- GET ----------------
func GetPackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var pkg models.Package
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("packages").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&pkg)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}

		// Enrich with reviews and, for authenticated callers, favorite state.
		pkg.Reviews = loadPackageReviews(ctx, cfg, oid)
		if uid := c.GetString("user_id"); uid != "" {
			if userID, err := primitive.ObjectIDFromHex(uid); err == nil {
				favs := cfg.MongoClient.Database(cfg.DBName).Collection("favorites")
				n, _ := favs.CountDocuments(ctx, bson.M{"user_id": userID, "package_id": oid})
				pkg.IsFavorite = n > 0
			}
		}

		etag := utils.GenerateETag(pkg.ID, pkg.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, pkg)
	}
}

// ---------------- UPDATE (staff) ----------------
func UpdatePackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		var input struct {
			Title       string   `form:"title"`
			Description string   `form:"description"`
			Price       *float64 `form:"price"`
			GuestLimit  int      `form:"guest_limit"`
			Services    []string `form:"services"`
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
		if input.GuestLimit > 0 {
			update["guest_limit"] = input.GuestLimit
		}
		if input.Services != nil {
			update["services"] = input.Services
		}

		newImageURLs, err := collectUploads(c, "packages")
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

		col := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var updated models.Package
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update package"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "package updated",
			"package": updated,
		})
	}
}

// ---------------- DELETE (staff) ----------------
func DeletePackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("packages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Package
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete package"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}

		for _, img := range existing.Images {
			utils.DeleteFromCloudinary(img)
		}

		c.JSON(http.StatusOK, gin.H{"message": "package deleted", "id": oid.Hex()})
	}
}

// ---------------- BOOK ----------------
func BookPackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			PackageID       string `json:"package_id" binding:"required"`
			EventDate       string `json:"event_date" binding:"required"`
			EventTime       string `json:"event_time"`
			GuestCount      int    `json:"guest_count"`
			PaymentIntentID string `json:"payment_intent_id"`
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

		slot, err := schedule.NewSlot(input.EventDate, input.EventTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// price is copied from the catalog, never taken from the client
		var pkg models.Package
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("packages").
			FindOne(ctx, bson.M{"_id": pkgID}).
			Decode(&pkg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "package not found"})
			return
		}

		if pkg.GuestLimit > 0 && input.GuestCount > pkg.GuestLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("guest count exceeds package limit of %d", pkg.GuestLimit)})
			return
		}

		// initial ledger state: nothing paid yet
		ledger, err := payments.Apply(pkg.Price, 0, 0, models.StatusBooked)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		userPkg := models.UserPackage{
			ID:              primitive.NewObjectID(),
			UserID:          userID,
			PackageID:       pkg.ID,
			PackageTitle:    pkg.Title,
			EventDate:       slot.Date,
			EventTime:       slot.Time,
			GuestCount:      input.GuestCount,
			Price:           ledger.Total,
			PaidAmount:      ledger.Paid,
			DueAmount:       ledger.Due,
			Status:          ledger.Status,
			PaymentIntentID: input.PaymentIntentID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_packages")
		if _, err := col.InsertOne(ctx, userPkg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book package"})
			return
		}

		utils.LogActivity(cfg, userID, "package_booked", pkg.Title)

		c.JSON(http.StatusCreated, userPkg)
	}
}

// ---------------- LIST USER BOOKINGS ----------------
func ListUserPackages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := requireOwnerOrAdmin(c, c.Param("userId"))
		if !ok {
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_packages")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{"user_id": ownerID}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch package bookings"})
			return
		}

		var results []models.UserPackage
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode package bookings"})
			return
		}

		if len(results) == 0 {
			c.JSON(http.StatusOK, []models.UserPackage{})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

// ---------------- PAY ----------------
//
// Same atomic transition as PayBooking, against the package price.
// Owner-gated like the booking variant.
func PayUserPackage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		var input struct {
			Amount          float64 `json:"amount" binding:"required"`
			PaymentIntentID string  `json:"payment_intent_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("user_packages")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{
			"_id":        oid,
			"user_id":    userID,
			"due_amount": bson.M{"$gte": input.Amount},
		}

		pipeline := payments.UpdatePipeline("price", input.Amount)
		if input.PaymentIntentID != "" {
			pipeline = append(pipeline, bson.M{"$set": bson.M{"payment_intent_id": input.PaymentIntentID}})
		}

		var updated models.UserPackage
		err = col.FindOneAndUpdate(ctx, filter, pipeline,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == nil {
			utils.LogActivity(cfg, userID, "package_paid",
				fmt.Sprintf("%s: %.2f paid, %.2f due", updated.PackageTitle, input.Amount, updated.DueAmount))
			c.JSON(http.StatusOK, updated)
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply payment"})
			return
		}

		var existing models.UserPackage
		if err := col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "package booking not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": payments.ErrExceedsDue.Error(),
			"due":   existing.DueAmount,
		})
	}
}

// collectUploads pushes every "new_images"/"images" multipart file to
// Cloudinary and returns their URLs.
func collectUploads(c *gin.Context, folder string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		return nil, err
	}

	var urls []string
	if form != nil {
		files := form.File["new_images"]
		if len(files) == 0 {
			files = form.File["images"]
		}
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				return nil, err
			}
			url, err := utils.UploadToCloudinary(file, folder)
			file.Close()
			if err != nil {
				return nil, err
			}
			urls = append(urls, url)
		}
	}
	return urls, nil
}
