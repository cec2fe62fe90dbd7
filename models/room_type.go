package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string  `json:"type_name" gorm:"type:varchar(100)"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" gorm:"column:base_price"`
	MaxGuests   uint    `json:"max_guests"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
