package controllers

import (
	"net/http"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	Service *services.RoomTypeService
}

func NewRoomTypeController(service *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Service: service}
}

func (rt *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := rt.Service.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (rt *RoomTypeController) CreateRoomType(c *gin.Context) {
	var roomType models.RoomType
	if err := c.ShouldBindJSON(&roomType); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if err := rt.Service.Create(c.Request.Context(), &roomType); err != nil {
		if err.Error() == "type_name_required" {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, roomType)
}

func (rt *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := rt.Service.Delete(c.Request.Context(), id); err != nil {
		if err.Error() == "room_type_not_found" {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room type")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
