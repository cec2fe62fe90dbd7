package services

import (
	"time"

	"hotel-pms/models"
)

// DateOnly truncates a timestamp to its midnight-aligned calendar date in
// UTC. Upstream feeds deliver check-in/check-out with arbitrary times of
// day; comparing raw timestamps would make a late check-in look like it
// clears an earlier check-out on the same date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DatesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Same-day back-to-back turnover (one stay's
// check-out equal to another's check-in) is not an overlap.
func DatesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// IsRoomAvailable decides whether room is free for [checkIn, checkOut)
// given the non-cancelled, non-no-show bookings currently holding that
// room. excludeBookingID skips one booking from the comparison, used when
// re-checking a booking that may already hold the room (manual
// reassignment). Zero excludeBookingID excludes nothing.
//
// Pure predicate: no side effects, vacuously true for an empty list.
func IsRoomAvailable(room models.Room, checkIn, checkOut time.Time, bookingsForRoom []models.Booking, excludeBookingID uint) bool {
	ci := DateOnly(checkIn)
	co := DateOnly(checkOut)

	for _, b := range bookingsForRoom {
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		if !b.BlocksRoom() {
			continue
		}
		if DatesOverlap(DateOnly(b.CheckInDate), DateOnly(b.CheckOutDate), ci, co) {
			return false
		}
	}
	return true
}
