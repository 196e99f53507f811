package routes

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pricing/controllers"
	"hotel-pricing/middleware"
)

// SetupRouter wires the controllers onto a gin engine.
func SetupRouter(
	pc *controllers.PricingController,
	rac *controllers.RoomAllocationController,
	bc *controllers.BookingController,
	origins []string,
	log *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log), gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// Browsers refuse credentials with a wildcard origin.
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		pricing := api.Group("/pricing")
		{
			pricing.POST("/calculate-price", pc.CalculatePrice)
			pricing.GET("/competitors", pc.GetCompetitors)
		}

		rooms := api.Group("/roomallocation")
		{
			rooms.POST("/book-room", rac.BookRoom)
			rooms.POST("/reset", rac.ResetRoomAvailability)
			rooms.GET("/rooms", rac.GetRooms)
		}

		booking := api.Group("/booking")
		{
			booking.POST("/booking-rooms", bc.BookRooms)
		}
	}

	return r
}
