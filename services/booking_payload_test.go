package services

import (
	"testing"

	"hotel-pms/models"

	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
	"id": 501,
	"guest_name": "Jane Smith",
	"room_type_name": "2 Bedroom Apartment",
	"check_in_date": "2024-06-01",
	"check_out_date": "2024-06-04",
	"status": "confirmed",
	"adults": 2
}`

func TestParseBookingsPayloadEnvelopeShapes(t *testing.T) {
	shapes := map[string]string{
		"bare array": `[` + sampleRecord + `]`,
		"data":       `{"data": [` + sampleRecord + `]}`,
		"bookings":   `{"bookings": [` + sampleRecord + `]}`,
	}

	for name, payload := range shapes {
		records, err := ParseBookingsPayload([]byte(payload))
		require.NoError(t, err, "shape %s", name)
		require.Len(t, records, 1, "shape %s", name)
		require.Equal(t, "Jane Smith", records[0].GuestName)
		require.Equal(t, "501", records[0].ID.String())
	}
}

func TestParseBookingsPayloadRejectsGarbage(t *testing.T) {
	_, err := ParseBookingsPayload([]byte(`"not a bookings feed"`))
	require.Error(t, err)
}

func TestBookingPayloadToModel(t *testing.T) {
	records, err := ParseBookingsPayload([]byte(`[` + sampleRecord + `]`))
	require.NoError(t, err)

	booking, ok := records[0].toModel("channel")
	require.True(t, ok)
	require.Equal(t, "Jane Smith", booking.GuestName)
	require.Equal(t, "2 Bedroom Apartment", booking.RoomTypeName)
	require.Equal(t, "channel", booking.Source)
	require.Equal(t, "501", booking.SourceBookingID)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.Equal(t, date(2024, 6, 1), booking.CheckInDate)
	require.Equal(t, date(2024, 6, 4), booking.CheckOutDate)
	require.NotEmpty(t, booking.ReferenceCode)
	require.JSONEq(t, sampleRecord, string(booking.RawData))
}

func TestBookingPayloadToModelGuestNameFallback(t *testing.T) {
	records, err := ParseBookingsPayload([]byte(`[{
		"first_name": "John", "last_name": "Doe",
		"room_type_name": "Studio",
		"check_in_date": "2024-06-01", "check_out_date": "2024-06-02"
	}]`))
	require.NoError(t, err)

	booking, ok := records[0].toModel("channel")
	require.True(t, ok)
	require.Equal(t, "John Doe", booking.GuestName)
	// Missing status defaults to pending.
	require.Equal(t, models.BookingStatusPending, booking.Status)
}

func TestBookingPayloadToModelSkipsMalformedDates(t *testing.T) {
	records, err := ParseBookingsPayload([]byte(`[
		{"guest_name": "A", "check_in_date": "junk", "check_out_date": "2024-06-02"},
		{"guest_name": "B", "check_in_date": "2024-06-02", "check_out_date": "2024-06-01"}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	_, ok := records[0].toModel("channel")
	require.False(t, ok, "unparseable check-in must be skipped")
	_, ok = records[1].toModel("channel")
	require.False(t, ok, "check-out before check-in must be skipped")
}

func TestBookingUnassignedHelper(t *testing.T) {
	rn := "101"
	cases := []struct {
		name string
		b    models.Booking
		want bool
	}{
		{"no room, confirmed", models.Booking{Status: models.BookingStatusConfirmed}, true},
		{"no room, pending", models.Booking{Status: models.BookingStatusPending}, true},
		{"no room, cancelled", models.Booking{Status: models.BookingStatusCancelled}, false},
		{"room set", models.Booking{Status: models.BookingStatusConfirmed, RoomNumber: &rn}, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.b.Unassigned(), tc.name)
	}
}

func TestParseDateAlignsToMidnight(t *testing.T) {
	// The feed sometimes sends full RFC3339 timestamps. Clock times must
	// not survive into stored intervals: a checkout at 11:00 would make a
	// back-to-back turnover look like a conflict to a raw timestamp
	// comparison.
	got, err := parseDate("2024-06-10T11:00:00Z")
	require.NoError(t, err)
	require.Equal(t, date(2024, 6, 10), got)

	got, err = parseDate("2024-06-10T23:30:00+07:00")
	require.NoError(t, err)
	require.Equal(t, date(2024, 6, 10), got)

	got, err = parseDate("2024-06-10")
	require.NoError(t, err)
	require.Equal(t, date(2024, 6, 10), got)
}

func TestBookingPayloadToModelAlignsClockTimes(t *testing.T) {
	records, err := ParseBookingsPayload([]byte(`[{
		"guest_name": "C",
		"room_type_name": "Two Bedroom",
		"check_in_date": "2024-06-07T15:00:00Z",
		"check_out_date": "2024-06-10T11:00:00Z"
	}]`))
	require.NoError(t, err)

	booking, ok := records[0].toModel("channel")
	require.True(t, ok)
	require.Equal(t, date(2024, 6, 7), booking.CheckInDate)
	require.Equal(t, date(2024, 6, 10), booking.CheckOutDate)
	// A same-day arrival after this checkout is a valid turnover.
	require.False(t, DatesOverlap(
		booking.CheckInDate, booking.CheckOutDate,
		date(2024, 6, 10), date(2024, 6, 12)))
}

func TestImportUpdatesOverwritesFeedOwnedZeroValues(t *testing.T) {
	b := models.Booking{
		GuestName:    "Jane Smith",
		RoomTypeName: "Two Bedroom",
		CheckInDate:  date(2024, 6, 1),
		CheckOutDate: date(2024, 6, 4),
		Status:       models.BookingStatusConfirmed,
		Adults:       2,
		Children:     0,
	}

	updates := importUpdates(b)

	// Zero values are present so a re-import can reset them on the stored
	// row instead of silently keeping stale data.
	require.Equal(t, 0, updates["children"])
	require.Equal(t, 2, updates["adults"])
	require.Equal(t, models.BookingStatusConfirmed, updates["status"])
	require.Contains(t, updates, "raw_data")

	// A feed record without a room number must not clear a locally
	// assigned room.
	require.NotContains(t, updates, "room_number")

	rn := "R7"
	b.RoomNumber = &rn
	require.Equal(t, "R7", importUpdates(b)["room_number"])
}
