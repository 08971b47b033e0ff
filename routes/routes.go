package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/phillip/event-planner-go/config"
	controllers "github.com/phillip/event-planner-go/controllers"
	middleware "github.com/phillip/event-planner-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	api := r.Group("/api")

	// public
	api.POST("/auth/register", controllers.Register(cfg))
	api.POST("/auth/login", controllers.Login(cfg))
	api.POST("/user-messages", controllers.CreateUserMessage(cfg))

	// public catalog, enriched for signed-in callers
	api.GET("/packages", controllers.ListPackages(cfg))
	api.GET("/packages/:id", middleware.OptionalAuth(cfg), controllers.GetPackage(cfg))
	api.GET("/services", controllers.ListServices(cfg))
	api.GET("/services/:id", controllers.GetService(cfg))
	api.GET("/reviews/:packageId", controllers.ListPackageReviews(cfg))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controllers.GetProfile(cfg))
		users.PATCH("/me", controllers.UpdateProfile(cfg))

		admin := users.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("", controllers.ListUsers(cfg))
			admin.GET("/:id", controllers.GetUser(cfg))
			admin.PATCH("/:id", controllers.UpdateUser(cfg))
			admin.DELETE("/:id", controllers.DeleteUser(cfg))
		}
	}

	bookings := api.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("/book-event", controllers.CreateBooking(cfg))
		bookings.GET("/:userId", controllers.ListBookings(cfg))
		bookings.GET("/detail/:bookingId", controllers.GetBooking(cfg))
		bookings.PATCH("/:bookingId/pay", controllers.PayBooking(cfg))
		bookings.DELETE("/:bookingId", controllers.DeleteBooking(cfg))
		bookings.POST("/:bookingId/reviews", controllers.AddBookingReview(cfg))
	}

	events := api.Group("/events")
	events.Use(auth)
	{
		events.GET("/:userId", controllers.ListEvents(cfg))
	}

	packages := api.Group("/packages")
	packages.Use(auth)
	{
		packages.POST("/book", controllers.BookPackage(cfg))
		packages.GET("/user-bookings/:userId", controllers.ListUserPackages(cfg))
		packages.PATCH("/user-booking/:id/pay", controllers.PayUserPackage(cfg))
	}

	favorites := api.Group("/favorites")
	favorites.Use(auth)
	{
		favorites.POST("", controllers.AddFavorite(cfg))
		favorites.GET("", controllers.ListFavorites(cfg))
		favorites.DELETE("/:packageId", controllers.RemoveFavorite(cfg))
	}

	reviews := api.Group("/reviews")
	reviews.Use(auth)
	{
		reviews.POST("", controllers.CreateReview(cfg))
	}

	// staff catalog management
	staff := api.Group("/staff")
	staff.Use(auth, middleware.RequireRole("staff", "admin"))
	{
		staff.POST("/packages", controllers.CreatePackage(cfg))
		staff.PATCH("/packages/:id", controllers.UpdatePackage(cfg))
		staff.DELETE("/packages/:id", controllers.DeletePackage(cfg))

		staff.POST("/services", controllers.CreateService(cfg))
		staff.PATCH("/services/:id", controllers.UpdateService(cfg))
		staff.DELETE("/services/:id", controllers.DeleteService(cfg))
	}

	messages := api.Group("/user-messages")
	messages.Use(auth, middleware.RequireRole("staff", "admin"))
	{
		messages.GET("", controllers.ListUserMessages(cfg))
		messages.POST("/:id/reply", controllers.ReplyUserMessage(cfg))
	}

	staffMessages := api.Group("/staff-messages")
	staffMessages.Use(auth, middleware.RequireRole("staff", "admin"))
	{
		staffMessages.POST("", controllers.CreateStaffMessage(cfg))
		staffMessages.GET("", controllers.ListStaffMessages(cfg))
	}

	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireRole("admin"))
	{
		admin.GET("/stats", controllers.AdminStats(cfg))
		admin.GET("/activities", controllers.ListActivities(cfg))
	}
}
