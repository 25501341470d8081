package routes

import (
	"net/http"
	"time"

	"harborview/handlers"
	"harborview/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterStaffRoutes registers staff authentication endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterAssistantRoutes registers the streaming chat endpoint.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
		api.POST("/chat", hb.ChatStreamHandler)
	}
}

// RegisterBookingRoutes registers direct booking endpoints for the
// back-office UI.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id/status", hb.UpdateBookingStatusHandler)
		api.PATCH("/:id/payment", hb.UpdatePaymentStatusHandler)
		api.PATCH("/:id/stay", hb.UpdateStayStatusHandler)
	}
}

// RegisterInsightRoutes registers knowledge base endpoints.
func RegisterInsightRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/insights")
	{
		api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
		api.GET("", hb.ListInsightsHandler)
		api.POST("", hb.CreateInsightHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Harborview"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterStaffRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterInsightRoutes(r, hb)
}
