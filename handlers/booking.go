package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	bookingRepo "harborview/database/repository/booking"
	"harborview/models"
	"harborview/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingHandler exposes direct booking endpoints for the back-office UI,
// alongside the tools the assistant uses.
type BookingHandler struct {
	Repo bookingRepo.BookingRepository
}

func NewBookingHandler(repo bookingRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Repo: repo}
}

// ListBookingsHandler returns recent bookings, or search results when a
// query is given.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var err error
	if query := c.Query("q"); query != "" {
		results, serr := h.Repo.Search(c.Request.Context(), query, c.Query("status"), limit)
		if serr == nil {
			c.JSON(http.StatusOK, gin.H{"bookings": results, "count": len(results)})
			return
		}
		err = serr
	} else {
		results, lerr := h.Repo.ListRecent(c.Request.Context(), limit)
		if lerr == nil {
			c.JSON(http.StatusOK, gin.H{"bookings": results, "count": len(results)})
			return
		}
		err = lerr
	}

	utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
}

// GetBookingHandler returns a single booking by ID or reference.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")

	b, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found: "+id, "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatusHandler sets the booking status axis only.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	h.patchStatus(c, h.Repo.UpdateBookingStatus)
}

// UpdatePaymentStatusHandler sets the payment status axis only.
func (h *BookingHandler) UpdatePaymentStatusHandler(c *gin.Context) {
	h.patchStatus(c, h.Repo.UpdatePaymentStatus)
}

// UpdateStayStatusHandler checks a guest in or out. Accepts the hyphenated
// forms the dashboard sends and stores the canonical values.
func (h *BookingHandler) UpdateStayStatusHandler(c *gin.Context) {
	h.patchStatus(c, func(ctx context.Context, id, status string) error {
		switch status {
		case "checked-in", models.BookingStatusCheckedIn:
			status = models.BookingStatusCheckedIn
		case "checked-out", models.BookingStatusCheckedOut:
			status = models.BookingStatusCheckedOut
		default:
			return errInvalidStayStatus
		}
		return h.Repo.UpdateBookingStatus(ctx, id, status)
	})
}

var errInvalidStayStatus = errors.New("invalid stay status (expected checked-in or checked-out)")

func (h *BookingHandler) patchStatus(c *gin.Context, update func(ctx context.Context, id, status string) error) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	err := update(c.Request.Context(), id, req.Status)
	if errors.Is(err, errInvalidStayStatus) {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found: "+id, "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id, "status": req.Status})
}
