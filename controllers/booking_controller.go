package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{Service: service}
}

// GetBookings returns all bookings; ?unassigned=true filters to bookings
// still waiting for a room.
func (bc *BookingController) GetBookings(c *gin.Context) {
	unassignedOnly := strings.EqualFold(c.Query("unassigned"), "true")
	bookings, err := bc.Service.ListBookings(c.Request.Context(), unassignedOnly)
	if err != nil {
		log.Printf("❌ Failed to list bookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	booking, err := bc.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := bc.Service.CancelBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"cancelled": id})
}

// ImportBookings ingests an upstream bookings payload in any of its loose
// shapes. ?source= tags where the records came from.
func (bc *BookingController) ImportBookings(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "empty payload")
		return
	}

	report, err := bc.Service.ImportBookings(c.Request.Context(), payload, c.Query("source"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("✅ Imported bookings: %d new, %d updated, %d skipped",
		report.Imported, report.Updated, report.Skipped)
	utils.JSONSuccess(c, http.StatusOK, report)
}

// paramID parses the :id route parameter, responding 400 itself on bad
// input.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
