// Package queue defines message payloads exchanged over the message broker.
package queue

// RoomAssignedEvent is published after a booking is successfully assigned
// to a physical room. It carries enough context for downstream consumers
// (housekeeping boards, channel sync) without querying the database.
type RoomAssignedEvent struct {
	BookingID     uint   `json:"booking_id"`
	ReferenceCode string `json:"reference_code"`
	GuestName     string `json:"guest_name"`
	RoomNumber    string `json:"room_number"`
	RoomTypeName  string `json:"room_type_name"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	AssignedAt    string `json:"assigned_at"`
}
