// Command autoassign runs one bulk room-assignment pass against the
// database and prints a human-readable summary. Operator convenience for
// running assignment outside the HTTP surface (cron, migration cleanup).
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"hotel-pms/config"
	"hotel-pms/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}

	bookingService := services.NewBookingService(db)
	roomService := services.NewRoomService(db)
	engine := services.NewAssignmentService(bookingService, roomService, bookingService)

	fmt.Println("Starting auto room assignment process...")

	report, err := engine.BulkAssignRooms(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assignment run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nAssignment Results:")
	fmt.Println("------------------")
	fmt.Printf("Total unassigned bookings: %d\n", report.Total)
	fmt.Printf("Successfully assigned: %d\n", report.Assigned)
	fmt.Printf("Errors encountered: %d\n", report.Errors)

	if len(report.Results) > 0 {
		fmt.Println("\nDetailed Results:")
		for _, r := range report.Results {
			if r.Success {
				fmt.Printf("✓ Booking %d assigned to room %s\n", r.BookingID, r.RoomNumber)
			} else {
				fmt.Printf("✗ Booking %d failed: %s\n", r.BookingID, r.Error)
			}
		}
	}
}
