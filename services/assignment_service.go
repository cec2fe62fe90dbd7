package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-pms/models"
	"hotel-pms/queue"
)

var (
	ErrNoMatchingRoomType  = errors.New("no matching room type")
	ErrNoAvailableRoom     = errors.New("no available room")
	ErrBookingNotFound     = errors.New("booking_not_found")
	ErrInvalidBookingDates = errors.New("invalid_booking_dates")
)

// BookingSource supplies booking snapshots. Implementations must already
// be authenticated; the engine carries no network or auth concerns.
type BookingSource interface {
	FetchUnassignedBookings(ctx context.Context) ([]models.Booking, error)
	FetchBookingsForRoom(ctx context.Context, roomNumber string) ([]models.Booking, error)
	FetchBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
}

// RoomSource supplies the current room inventory.
type RoomSource interface {
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// AssignmentSink commits a room assignment and returns the updated
// booking. It fails if the booking or room no longer exists or the room
// was taken by a concurrent writer.
type AssignmentSink interface {
	AssignRoom(ctx context.Context, bookingID uint, roomNumber string) (*models.Booking, error)
}

// EventPublisher emits a domain event after a successful assignment. The
// engine invokes it on its own goroutine with a detached context, so a
// slow or unreachable broker never paces an assignment run. Failures are
// the publisher's problem.
type EventPublisher func(ctx context.Context, event queue.RoomAssignedEvent)

// AssignmentResult is the per-booking outcome of an assignment run.
type AssignmentResult struct {
	BookingID  uint   `json:"booking_id"`
	RoomNumber string `json:"room_number,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// AssignmentReport aggregates one bulk run. Every booking considered
// appears exactly once in Results, in processing order.
type AssignmentReport struct {
	Total    int                `json:"total"`
	Assigned int                `json:"assigned"`
	Errors   int                `json:"errors"`
	Results  []AssignmentResult `json:"results"`
}

// reservation is an in-run hold on a room, recorded so later bookings in
// the same run cannot collide with assignments made earlier in the run.
type reservation struct {
	bookingID uint
	checkIn   time.Time
	checkOut  time.Time
}

// AssignmentService matches unassigned bookings to physical rooms of the
// correct type without double-booking. It runs strictly sequentially: the
// in-run reservation list is the sole mutual-exclusion mechanism inside a
// run, which only holds if bookings are processed one at a time.
type AssignmentService struct {
	Bookings BookingSource
	Rooms    RoomSource
	Sink     AssignmentSink
	Publish  EventPublisher // optional

	// Pause between successive sink calls; a throttle for the upstream
	// rate limit, not a correctness mechanism.
	Pause time.Duration
}

func NewAssignmentService(bookings BookingSource, rooms RoomSource, sink AssignmentSink) *AssignmentService {
	return &AssignmentService{
		Bookings: bookings,
		Rooms:    rooms,
		Sink:     sink,
		Pause:    100 * time.Millisecond,
	}
}

// BulkAssignRooms assigns every unassigned booking it can, earliest
// check-in first, and reports a per-booking outcome for each. Individual
// failures never abort the run and nothing is rolled back; only a failure
// fetching the booking or room snapshots is fatal.
func (s *AssignmentService) BulkAssignRooms(ctx context.Context) (*AssignmentReport, error) {
	unassigned, err := s.Bookings.FetchUnassignedBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned bookings: %w", err)
	}
	rooms, err := s.Rooms.FetchRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	roomsByType := groupRoomsByType(rooms)

	bookings := make([]models.Booking, 0, len(unassigned))
	for _, b := range unassigned {
		// Defensive re-filter: the precondition is the source's job, but a
		// cancelled or dateless record slipping through must not poison a run.
		if !b.Unassigned() || b.CheckInDate.IsZero() || b.CheckOutDate.IsZero() {
			continue
		}
		bookings = append(bookings, b)
	}
	// Earliest stays first so a near-term check-in is not starved by a
	// later one consuming the only matching room. Stable: ties keep
	// input order.
	sort.SliceStable(bookings, func(i, j int) bool {
		return DateOnly(bookings[i].CheckInDate).Before(DateOnly(bookings[j].CheckInDate))
	})

	report := &AssignmentReport{
		Total:   len(bookings),
		Results: make([]AssignmentResult, 0, len(bookings)),
	}
	reserved := make(map[string][]reservation)
	existing := make(map[string][]models.Booking)

	for _, booking := range bookings {
		ci := DateOnly(booking.CheckInDate)
		co := DateOnly(booking.CheckOutDate)

		normalized := NormalizeRoomType(booking.RoomTypeName)
		candidates := roomsByType[normalized]
		if len(candidates) == 0 {
			report.Errors++
			report.Results = append(report.Results, AssignmentResult{
				BookingID: booking.ID,
				Error:     ErrNoMatchingRoomType.Error(),
			})
			continue
		}

		room, err := s.pickRoom(ctx, candidates, booking, ci, co, reserved, existing)
		if err != nil {
			if errors.Is(err, ErrNoAvailableRoom) {
				report.Errors++
				report.Results = append(report.Results, AssignmentResult{
					BookingID: booking.ID,
					Error:     ErrNoAvailableRoom.Error(),
				})
				continue
			}
			// Snapshot fetch failed; fatal per the propagation policy.
			return nil, err
		}

		updated, err := s.Sink.AssignRoom(ctx, booking.ID, room.RoomNumber)
		s.throttle()
		if err != nil {
			report.Errors++
			report.Results = append(report.Results, AssignmentResult{
				BookingID: booking.ID,
				Error:     err.Error(),
			})
			continue
		}

		reserved[room.RoomNumber] = append(reserved[room.RoomNumber], reservation{
			bookingID: booking.ID,
			checkIn:   ci,
			checkOut:  co,
		})
		report.Assigned++
		report.Results = append(report.Results, AssignmentResult{
			BookingID:  booking.ID,
			RoomNumber: room.RoomNumber,
			Success:    true,
		})
		s.publishAssigned(ctx, updated, room.RoomNumber)
	}

	return report, nil
}

// AssignOne is the single-booking companion path, invoked interactively
// for one booking at a time. Same availability predicate, direct result.
func (s *AssignmentService) AssignOne(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.Bookings.FetchBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	// A zero date makes a degenerate interval that overlaps nothing, so an
	// availability scan would hand out a room vacuously. Refuse instead.
	if booking.CheckInDate.IsZero() || booking.CheckOutDate.IsZero() ||
		!DateOnly(booking.CheckOutDate).After(DateOnly(booking.CheckInDate)) {
		return nil, ErrInvalidBookingDates
	}
	rooms, err := s.Rooms.FetchRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	normalized := NormalizeRoomType(booking.RoomTypeName)
	candidates := groupRoomsByType(rooms)[normalized]
	if len(candidates) == 0 {
		return nil, ErrNoMatchingRoomType
	}

	ci := DateOnly(booking.CheckInDate)
	co := DateOnly(booking.CheckOutDate)
	for _, room := range candidates {
		bookingsForRoom, err := s.Bookings.FetchBookingsForRoom(ctx, room.RoomNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch bookings for room %s: %w", room.RoomNumber, err)
		}
		// Exclude the booking itself: it may already hold this room.
		if !IsRoomAvailable(room, ci, co, bookingsForRoom, booking.ID) {
			continue
		}
		updated, err := s.Sink.AssignRoom(ctx, booking.ID, room.RoomNumber)
		if err != nil {
			return nil, err
		}
		s.publishAssigned(ctx, updated, room.RoomNumber)
		return updated, nil
	}
	return nil, ErrNoAvailableRoom
}

// pickRoom scans candidates in list order and returns the first room free
// for [ci, co) under both the in-run reservations and the externally
// fetched existing bookings. Existing bookings are fetched once per room
// per run.
func (s *AssignmentService) pickRoom(
	ctx context.Context,
	candidates []models.Room,
	booking models.Booking,
	ci, co time.Time,
	reserved map[string][]reservation,
	existing map[string][]models.Booking,
) (*models.Room, error) {
	for i := range candidates {
		room := &candidates[i]

		if overlapsReserved(reserved[room.RoomNumber], ci, co) {
			continue
		}

		bookingsForRoom, ok := existing[room.RoomNumber]
		if !ok {
			fetched, err := s.Bookings.FetchBookingsForRoom(ctx, room.RoomNumber)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch bookings for room %s: %w", room.RoomNumber, err)
			}
			existing[room.RoomNumber] = fetched
			bookingsForRoom = fetched
		}
		if !IsRoomAvailable(*room, ci, co, bookingsForRoom, booking.ID) {
			continue
		}
		return room, nil
	}
	return nil, ErrNoAvailableRoom
}

func overlapsReserved(holds []reservation, ci, co time.Time) bool {
	for _, h := range holds {
		if DatesOverlap(h.checkIn, h.checkOut, ci, co) {
			return true
		}
	}
	return false
}

// groupRoomsByType builds the type -> rooms lookup keyed by normalized
// room-type name. Rooms under maintenance are not offered.
func groupRoomsByType(rooms []models.Room) map[string][]models.Room {
	byType := make(map[string][]models.Room)
	for _, room := range rooms {
		if strings.EqualFold(room.Status, models.RoomStatusMaintenance) {
			continue
		}
		key := NormalizeRoomType(room.RoomTypeName)
		byType[key] = append(byType[key], room)
	}
	return byType
}

func (s *AssignmentService) throttle() {
	if s.Pause > 0 {
		time.Sleep(s.Pause)
	}
}

func (s *AssignmentService) publishAssigned(ctx context.Context, booking *models.Booking, roomNumber string) {
	if s.Publish == nil || booking == nil {
		return
	}
	event := queue.RoomAssignedEvent{
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		GuestName:     booking.GuestName,
		RoomNumber:    roomNumber,
		RoomTypeName:  booking.RoomTypeName,
		CheckInDate:   DateOnly(booking.CheckInDate).Format("2006-01-02"),
		CheckOutDate:  DateOnly(booking.CheckOutDate).Format("2006-01-02"),
		AssignedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Detached context: the event outlives the request that triggered the
	// run, and the broker must not stall the loop.
	go s.Publish(context.WithoutCancel(ctx), event)
}
