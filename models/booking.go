package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses as delivered by the upstream channel feed.
const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusPending    = "pending"
	BookingStatusCancelled  = "cancelled"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusNoShow     = "no_show"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`
	GuestName     string `gorm:"column:guest_name;size:191" json:"guest_name"`

	// Upstream feeds reference the type both by FK and by free text; the
	// free-text name is what the assignment engine matches on.
	RoomTypeID   *uint  `gorm:"column:room_type_id;index" json:"room_type_id,omitempty"`
	RoomTypeName string `gorm:"column:room_type_name;size:100" json:"room_type_name"`

	// Nil until a physical room has been assigned.
	RoomNumber *string `gorm:"column:room_number;size:50;index" json:"room_number,omitempty"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	Status       string    `gorm:"column:status;size:32;index" json:"status"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// Where the booking came from (channel manager, walk-in, ...) and the
	// raw upstream payload, kept verbatim for audits.
	Source          string         `gorm:"column:source;size:64" json:"source,omitempty"`
	SourceBookingID string         `gorm:"column:source_booking_id;size:128" json:"source_booking_id,omitempty"`
	RawData         datatypes.JSON `gorm:"column:raw_data" json:"raw_data,omitempty"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// Unassigned reports whether the booking still needs a physical room:
// no room number set and not cancelled.
func (b *Booking) Unassigned() bool {
	if b.RoomNumber != nil && strings.TrimSpace(*b.RoomNumber) != "" {
		return false
	}
	return !strings.EqualFold(b.Status, BookingStatusCancelled)
}

// BlocksRoom reports whether the booking counts against a room's
// availability. Cancelled and no-show bookings free the room.
func (b *Booking) BlocksRoom() bool {
	return !strings.EqualFold(b.Status, BookingStatusCancelled) &&
		!strings.EqualFold(b.Status, BookingStatusNoShow)
}
