package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Engine   *services.AssignmentService
	Bookings *services.BookingService
}

func NewAssignmentController(engine *services.AssignmentService, bookings *services.BookingService) *AssignmentController {
	return &AssignmentController{Engine: engine, Bookings: bookings}
}

// BulkAssign runs the assignment engine over every unassigned booking and
// returns the aggregate report. Per-booking failures are part of the
// report, not an HTTP error; only a snapshot fetch failure is.
func (ac *AssignmentController) BulkAssign(c *gin.Context) {
	report, err := ac.Engine.BulkAssignRooms(c.Request.Context())
	if err != nil {
		log.Printf("❌ Bulk assignment run failed: %v", err)
		utils.JSONError(c, http.StatusBadGateway, err.Error())
		return
	}
	log.Printf("✅ Bulk assignment: %d considered, %d assigned, %d failed",
		report.Total, report.Assigned, report.Errors)
	utils.JSONSuccess(c, http.StatusOK, report)
}

type assignRoomPayload struct {
	RoomNumber string `json:"room_number" binding:"required"`
}

// AssignRoom assigns a specific room to one booking (manual path). The
// sink re-validates availability, so a stale calendar view cannot force a
// double-booking.
func (ac *AssignmentController) AssignRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload assignRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room_number required")
		return
	}

	booking, err := ac.Bookings.AssignRoom(c.Request.Context(), id, strings.TrimSpace(payload.RoomNumber))
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, services.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// AutoAssignOne finds a free room of the right type for one booking and
// assigns it, surfacing the single outcome directly.
func (ac *AssignmentController) AutoAssignOne(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := ac.Engine.AssignOne(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidBookingDates):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNoMatchingRoomType), errors.Is(err, services.ErrNoAvailableRoom):
			utils.JSONError(c, http.StatusConflict, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ac *AssignmentController) UnassignRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := ac.Bookings.UnassignRoom(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
