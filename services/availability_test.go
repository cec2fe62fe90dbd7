package services

import (
	"testing"
	"time"

	"hotel-pms/models"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func booking(id uint, status string, checkIn, checkOut time.Time) models.Booking {
	return models.Booking{
		ID:           id,
		Status:       status,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func TestIsRoomAvailableEmptyBookings(t *testing.T) {
	room := models.Room{RoomNumber: "101"}
	ok := IsRoomAvailable(room, date(2024, 6, 1), date(2024, 6, 5), nil, 0)
	require.True(t, ok, "a room with no bookings is vacuously available")
}

func TestIsRoomAvailableOverlap(t *testing.T) {
	room := models.Room{RoomNumber: "101"}
	existing := []models.Booking{
		booking(1, models.BookingStatusConfirmed, date(2024, 6, 1), date(2024, 6, 5)),
	}

	// Candidate overlaps on 06-04.
	require.False(t, IsRoomAvailable(room, date(2024, 6, 4), date(2024, 6, 8), existing, 0))
	// Candidate starting on the existing check-out date is free.
	require.True(t, IsRoomAvailable(room, date(2024, 6, 5), date(2024, 6, 8), existing, 0))
	// Candidate fully covered.
	require.False(t, IsRoomAvailable(room, date(2024, 6, 2), date(2024, 6, 3), existing, 0))
	// Candidate fully covering.
	require.False(t, IsRoomAvailable(room, date(2024, 5, 30), date(2024, 6, 10), existing, 0))
}

func TestIsRoomAvailableBackToBackTurnover(t *testing.T) {
	room := models.Room{RoomNumber: "202"}
	existing := []models.Booking{
		booking(7, models.BookingStatusConfirmed, date(2024, 6, 7), date(2024, 6, 10)),
	}
	// New stay starting the day the old one checks out is not a conflict.
	require.True(t, IsRoomAvailable(room, date(2024, 6, 10), date(2024, 6, 12), existing, 0))
	// And ending the day the old one checks in.
	require.True(t, IsRoomAvailable(room, date(2024, 6, 5), date(2024, 6, 7), existing, 0))
}

func TestIsRoomAvailableNormalizesTimeOfDay(t *testing.T) {
	room := models.Room{RoomNumber: "303"}
	// Existing booking stored with a 14:00 check-in.
	existing := []models.Booking{
		booking(3, models.BookingStatusConfirmed,
			time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC)),
	}
	// A candidate checking in at 09:00 on the check-out date must still be
	// treated as back-to-back, not as an overlap.
	require.True(t, IsRoomAvailable(room,
		time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 8, 11, 0, 0, 0, time.UTC),
		existing, 0))
}

func TestIsRoomAvailableIgnoresCancelledAndNoShow(t *testing.T) {
	room := models.Room{RoomNumber: "104"}
	existing := []models.Booking{
		booking(1, models.BookingStatusCancelled, date(2024, 6, 1), date(2024, 6, 5)),
		booking(2, models.BookingStatusNoShow, date(2024, 6, 1), date(2024, 6, 5)),
	}
	require.True(t, IsRoomAvailable(room, date(2024, 6, 2), date(2024, 6, 4), existing, 0))
}

func TestIsRoomAvailableExcludesBookingID(t *testing.T) {
	room := models.Room{RoomNumber: "105"}
	existing := []models.Booking{
		booking(42, models.BookingStatusConfirmed, date(2024, 6, 1), date(2024, 6, 5)),
	}
	// Re-checking the booking that already holds the room.
	require.True(t, IsRoomAvailable(room, date(2024, 6, 1), date(2024, 6, 5), existing, 42))
	// But another booking still sees the conflict.
	require.False(t, IsRoomAvailable(room, date(2024, 6, 1), date(2024, 6, 5), existing, 43))
}

func TestDatesOverlap(t *testing.T) {
	require.True(t, DatesOverlap(date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 4), date(2024, 6, 8)))
	require.False(t, DatesOverlap(date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 5), date(2024, 6, 8)))
	require.False(t, DatesOverlap(date(2024, 6, 5), date(2024, 6, 8), date(2024, 6, 1), date(2024, 6, 5)))
}
