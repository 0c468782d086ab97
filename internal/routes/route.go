package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/staynest/api/internal/container"
	"github.com/staynest/api/internal/handlers"
	"github.com/staynest/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "staynest-api",
		})
	})

	// Compressed photos are served straight from permanent storage
	r.Static("/uploads/place-photos", container.MediaStore.PhotoDir())

	place := r.Group("/place")
	{
		// public routes
		place.GET("", handlers.ListPlaces(container.PlaceService))
		place.GET("/public/:id", handlers.GetPlaceByID(container.PlaceService))
	}

	protected := place.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))
	{
		protected.POST("/photo/upload-by-link", handlers.UploadByLink(container.MediaStore))
		protected.POST("/photo/upload-from-device", handlers.UploadFromDevice(container.MediaStore))

		protected.POST("/add", handlers.AddPlace(container.PlaceService))
		protected.PUT("/:id", handlers.UpdatePlace(container.PlaceService))
		protected.POST("/delete/:id", handlers.DeletePlace(container.PlaceService))
		protected.GET("/my-places", handlers.MyPlaces(container.PlaceService))

		protected.GET("/book", handlers.BookPlace(container.BookingService))
		protected.POST("/booking/cancel/:id", handlers.CancelBooking(container.BookingService))
		protected.GET("/my-bookings", handlers.MyBookings(container.BookingService))
	}

	return r
}
