package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-pms/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB with the booking-side logic. It implements
// BookingSource and AssignmentSink for the assignment engine.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// FetchUnassignedBookings returns non-cancelled bookings lacking a room
// number. Records with missing dates are filtered here so the engine never
// sees a malformed interval.
func (s *BookingService) FetchUnassignedBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Where("(room_number IS NULL OR room_number = '')").
		Where("status <> ?", models.BookingStatusCancelled).
		Order("check_in_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned bookings: %w", err)
	}

	out := bookings[:0]
	for _, b := range bookings {
		if b.CheckInDate.IsZero() || b.CheckOutDate.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// FetchBookingsForRoom returns the bookings that count against a room's
// availability (cancelled and no-show stays free the room).
func (s *BookingService) FetchBookingsForRoom(ctx context.Context, roomNumber string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Where("room_number = ?", roomNumber).
		Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for room %s: %w", roomNumber, err)
	}
	return bookings, nil
}

func (s *BookingService) FetchBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("RoomType").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// AssignRoom commits a room assignment. The booking row is locked and the
// overlap check re-runs inside the transaction, so two concurrent runs
// cannot both commit the same room for overlapping stays; the loser fails
// with room_already_booked and the engine records it per-booking.
func (s *BookingService) AssignRoom(ctx context.Context, bookingID uint, roomNumber string) (*models.Booking, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return nil, errors.New("room_number_required")
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if strings.EqualFold(booking.Status, models.BookingStatusCancelled) {
			return errors.New("booking_cancelled")
		}

		var room models.Room
		if err := tx.Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("room_not_found")
			}
			return err
		}
		if strings.EqualFold(room.Status, models.RoomStatusMaintenance) {
			return errors.New("room_under_maintenance")
		}

		// Compare calendar dates, not stored timestamps: a row imported
		// before date alignment may still carry clock times, and a
		// back-to-back turnover (checkout 11:00 vs check-in 00:00 on the
		// same day) must not count as a conflict.
		ci := DateOnly(booking.CheckInDate).Format("2006-01-02")
		co := DateOnly(booking.CheckOutDate).Format("2006-01-02")
		var conflicts int64
		if err := tx.Model(&models.Booking{}).
			Where("room_number = ?", roomNumber).
			Where("id <> ?", booking.ID).
			Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
			Where("DATE(check_in_date) < ? AND DATE(check_out_date) > ?", co, ci).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return errors.New("room_already_booked")
		}

		return tx.Model(&booking).Update("room_number", roomNumber).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.FetchBooking(ctx, bookingID)
}

// UnassignRoom clears a booking's room number so it can be re-assigned.
func (s *BookingService) UnassignRoom(ctx context.Context, bookingID uint) (*models.Booking, error) {
	res := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("room_number", gorm.Expr("NULL"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to unassign room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrBookingNotFound
	}
	return s.FetchBooking(ctx, bookingID)
}

// CreateBookingInput is the operator-facing payload for a new booking.
type CreateBookingInput struct {
	GuestName    string `json:"guest_name" binding:"required"`
	RoomTypeID   *uint  `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	ci, err := parseDate(in.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in_date: %w", err)
	}
	co, err := parseDate(in.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out_date: %w", err)
	}
	if !co.After(ci) {
		return nil, errors.New("check_out_before_check_in")
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	booking := models.Booking{
		ReferenceCode: newReferenceCode(),
		GuestName:     strings.TrimSpace(in.GuestName),
		RoomTypeID:    in.RoomTypeID,
		RoomTypeName:  strings.TrimSpace(in.RoomTypeName),
		CheckInDate:   ci,
		CheckOutDate:  co,
		Status:        models.BookingStatusConfirmed,
		Adults:        in.Adults,
		Children:      in.Children,
		Source:        "direct",
	}
	if err := s.DB.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint) error {
	res := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":      models.BookingStatusCancelled,
			"room_number": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to cancel booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListBookings returns all bookings, optionally filtered to unassigned
// ones, newest first.
func (s *BookingService) ListBookings(ctx context.Context, unassignedOnly bool) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Preload("RoomType").Order("check_in_date ASC")
	if unassignedOnly {
		q = q.Where("(room_number IS NULL OR room_number = '')").
			Where("status <> ?", models.BookingStatusCancelled)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

// ImportReport summarizes one upstream payload ingestion.
type ImportReport struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// ImportBookings ingests an upstream bookings payload. The three shapes
// the feed is known to produce (bare array, {data:[]}, {bookings:[]}) are
// normalized once here; records with unparseable dates are skipped and
// counted rather than crashing the import. Records are matched by
// source_booking_id so re-imports update in place.
func (s *BookingService) ImportBookings(ctx context.Context, payload []byte, source string) (*ImportReport, error) {
	records, err := ParseBookingsPayload(payload)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = "import"
	}

	report := &ImportReport{}
	for _, rec := range records {
		booking, ok := rec.toModel(source)
		if !ok {
			report.Skipped++
			continue
		}

		if booking.SourceBookingID != "" {
			var existing models.Booking
			err := s.DB.WithContext(ctx).
				Where("source = ? AND source_booking_id = ?", source, booking.SourceBookingID).
				First(&existing).Error
			if err == nil {
				if err := s.DB.WithContext(ctx).Model(&existing).Updates(importUpdates(booking)).Error; err != nil {
					return nil, fmt.Errorf("failed to update imported booking: %w", err)
				}
				report.Updated++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to look up imported booking: %w", err)
			}
		}

		if err := s.DB.WithContext(ctx).Create(&booking).Error; err != nil {
			return nil, fmt.Errorf("failed to create imported booking: %w", err)
		}
		report.Imported++
	}
	return report, nil
}

// importUpdates lists the columns the feed owns on a re-import. A column
// map rather than a struct, so zero values (children dropping back to 0,
// a blanked room type) overwrite the stored row. room_number is only
// written when the feed carries one: a locally assigned room survives a
// feed that lags behind the assignment write-back.
func importUpdates(b models.Booking) map[string]interface{} {
	updates := map[string]interface{}{
		"guest_name":     b.GuestName,
		"room_type_name": b.RoomTypeName,
		"check_in_date":  b.CheckInDate,
		"check_out_date": b.CheckOutDate,
		"status":         b.Status,
		"adults":         b.Adults,
		"children":       b.Children,
		"raw_data":       b.RawData,
	}
	if b.RoomNumber != nil {
		updates["room_number"] = *b.RoomNumber
	}
	return updates
}

// BookingPayload mirrors the loose upstream record shape.
type BookingPayload struct {
	ID           json.Number `json:"id"`
	GuestName    string      `json:"guest_name"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	RoomTypeName string      `json:"room_type_name"`
	RoomNumber   string      `json:"room_number"`
	CheckInDate  string      `json:"check_in_date"`
	CheckOutDate string      `json:"check_out_date"`
	Status       string      `json:"status"`
	Adults       int         `json:"adults"`
	Children     int         `json:"children"`

	raw json.RawMessage
}

// ParseBookingsPayload accepts the bookings feed in any of its known
// envelope shapes and returns the individual records with their raw JSON
// retained.
func ParseBookingsPayload(payload []byte) ([]BookingPayload, error) {
	var rawList []json.RawMessage

	if err := json.Unmarshal(payload, &rawList); err != nil {
		var envelope struct {
			Data     []json.RawMessage `json:"data"`
			Bookings []json.RawMessage `json:"bookings"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, fmt.Errorf("unrecognized bookings payload: %w", err)
		}
		rawList = envelope.Data
		if len(rawList) == 0 {
			rawList = envelope.Bookings
		}
	}

	records := make([]BookingPayload, 0, len(rawList))
	for _, raw := range rawList {
		var rec BookingPayload
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("malformed booking record: %w", err)
		}
		rec.raw = raw
		records = append(records, rec)
	}
	return records, nil
}

// toModel converts an upstream record to the canonical Booking shape.
// Returns false when the record is unusable (missing or malformed dates).
func (p BookingPayload) toModel(source string) (models.Booking, bool) {
	ci, errCI := parseDate(p.CheckInDate)
	co, errCO := parseDate(p.CheckOutDate)
	if errCI != nil || errCO != nil || !co.After(ci) {
		return models.Booking{}, false
	}

	guest := strings.TrimSpace(p.GuestName)
	if guest == "" {
		guest = strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	}
	status := strings.ToLower(strings.TrimSpace(p.Status))
	if status == "" {
		status = models.BookingStatusPending
	}

	var roomNumber *string
	if rn := strings.TrimSpace(p.RoomNumber); rn != "" {
		roomNumber = &rn
	}
	adults := p.Adults
	if adults <= 0 {
		adults = 1
	}

	return models.Booking{
		ReferenceCode:   newReferenceCode(),
		GuestName:       guest,
		RoomTypeName:    strings.TrimSpace(p.RoomTypeName),
		RoomNumber:      roomNumber,
		CheckInDate:     ci,
		CheckOutDate:    co,
		Status:          status,
		Adults:          adults,
		Children:        p.Children,
		Source:          source,
		SourceBookingID: p.ID.String(),
		RawData:         datatypes.JSON(p.raw),
	}, true
}

// parseDate accepts the feed's two date formats and always returns a
// midnight-aligned UTC date, so stored intervals carry no clock times and
// every comparison downstream sees the same calendar-date semantics as
// the availability predicate.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}
