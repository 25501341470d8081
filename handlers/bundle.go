package handlers

import (
	staffRepoPkg "harborview/database/repository/staff"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	StaffRepo staffRepoPkg.StaffRepository

	// Auth endpoints
	LoginHandler gin.HandlerFunc

	// Assistant endpoints
	ChatStreamHandler gin.HandlerFunc

	// Booking endpoints
	ListBookingsHandler        gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
	UpdatePaymentStatusHandler gin.HandlerFunc
	UpdateStayStatusHandler    gin.HandlerFunc

	// Insight endpoints
	ListInsightsHandler  gin.HandlerFunc
	CreateInsightHandler gin.HandlerFunc
}
