package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-pms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// resolveMySQLDSN builds the DSN from DATABASE_URL or the discrete DB_*
// variables.
func resolveMySQLDSN() (string, error) {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			u, err := url.Parse(raw)
			if err != nil {
				return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
			}
			pass, _ := u.User.Password()
			name := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				u.User.Username(), pass, u.Host, name), nil
		}
		return raw, nil
	}

	user := envOr("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOr("DB_HOST", "127.0.0.1")
	port := envOr("DB_PORT", "3306")
	name := envOr("DB_NAME", "hotel_pms")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, name), nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// ConnectDatabase opens the MySQL connection, runs migrations and seeds
// baseline data. The handle is returned to the caller; nothing here is a
// package-level singleton.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	// Parent -> child order.
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return nil, err
	}

	SeedDatabase(db)
	return db, nil
}

// SeedDatabase inserts baseline records on an empty database.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Admins ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOr("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: envOr("ADMIN_USERNAME", "admin@hotel.local"),
				Password: string(hash),
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Studio", Description: "Studio Apartment", BasePrice: 90, MaxGuests: 2},
			{TypeName: "Two Bedroom", Description: "Two Bedroom Apartment", BasePrice: 150, MaxGuests: 4},
			{TypeName: "Three Bedroom", Description: "Three Bedroom Apartment", BasePrice: 210, MaxGuests: 6},
			{TypeName: "Deluxe Suite", Description: "Deluxe Suite", BasePrice: 260, MaxGuests: 3},
		}
		db.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}
}
