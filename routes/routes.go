package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the HTTP surface. Everything
// under /api except login requires a bearer token.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	asc *controllers.AssignmentController,
	rc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
	sc *controllers.StatsController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(jwtSecret))
		{
			bookings := protected.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.POST("", bc.CreateBooking)
				bookings.POST("/import", bc.ImportBookings)
				bookings.POST("/auto-assign", asc.BulkAssign)
				bookings.POST("/:id/assign-room", asc.AssignRoom)
				bookings.POST("/:id/auto-assign", asc.AutoAssignOne)
				bookings.PATCH("/:id/unassign-room", asc.UnassignRoom)
				bookings.POST("/:id/cancel", bc.CancelBooking)
			}

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", rc.GetRooms)
				rooms.POST("", rc.CreateRoom)
				rooms.PATCH("/:id", rc.UpdateRoom)
				rooms.PUT("/:id", rc.UpdateRoom)
				rooms.DELETE("/:id", rc.DeleteRoom)
			}

			roomTypes := protected.Group("/room-types")
			{
				roomTypes.GET("", rtc.GetRoomTypes)
				roomTypes.POST("", rtc.CreateRoomType)
				roomTypes.DELETE("/:id", rtc.DeleteRoomType)
			}

			stats := protected.Group("/stats")
			{
				stats.GET("/daily", sc.GetDailyStats)
			}
		}
	}

	return r
}
