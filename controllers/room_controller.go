package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Service *services.RoomService
}

func NewRoomController(service *services.RoomService) *RoomController {
	return &RoomController{Service: service}
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Service.FetchRooms(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if err := rc.Service.Create(c.Request.Context(), &room); err != nil {
		msg := err.Error()
		if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict,
				fmt.Sprintf("Room Number '%s' already exists.", room.RoomNumber))
			return
		}
		if msg == "room_number_required" || msg == "invalid_room_type" {
			utils.JSONError(c, http.StatusBadRequest, msg)
			return
		}
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if err := rc.Service.Update(c.Request.Context(), id, updateData); err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("❌ Update error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": id})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), id); err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("❌ DB error during room deletion (ID: %d): %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
