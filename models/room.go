package models

import (
	"gorm.io/gorm"
)

// Room statuses reflect physical/maintenance state only. Whether a room is
// occupied for a date range is derived from overlapping bookings.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	// Nullable so a room created without a valid FK doesn't insert 0.
	RoomTypeID *uint  `json:"room_type_id,omitempty" gorm:"column:room_type_id;index"`
	RoomNumber string `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	// Denormalized type name; upstream booking feeds match on this string.
	RoomTypeName string  `json:"room_type_name" gorm:"column:room_type_name;type:varchar(100)"`
	Status       string  `json:"status" gorm:"type:varchar(32);default:available"`
	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"max_occupancy" gorm:"column:max_occupancy"`
	Description  string  `json:"description,omitempty" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
