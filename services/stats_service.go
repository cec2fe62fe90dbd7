package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hotel-pms/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DailyStats is the operator dashboard snapshot for one calendar date.
type DailyStats struct {
	Date          string  `json:"date"`
	TotalRooms    int64   `json:"total_rooms"`
	OccupiedRooms int64   `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
	CheckIns      int64   `json:"check_ins"`
	CheckOuts     int64   `json:"check_outs"`
	NewBookings   int64   `json:"new_bookings"`
	Unassigned    int64   `json:"unassigned_bookings"`
}

// StatsService computes daily occupancy figures with a short-lived redis
// cache in front. Redis may be nil; the service then always goes to the
// database.
type StatsService struct {
	DB    *gorm.DB
	Redis *redis.Client
	TTL   time.Duration
}

func NewStatsService(db *gorm.DB, rdb *redis.Client) *StatsService {
	return &StatsService{DB: db, Redis: rdb, TTL: 60 * time.Second}
}

func (s *StatsService) DailyStats(ctx context.Context, date time.Time) (*DailyStats, error) {
	day := DateOnly(date)
	key := "stats:daily:" + day.Format("2006-01-02")

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var stats DailyStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeDailyStats(ctx, day)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if body, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, key, body, s.TTL).Err(); err != nil {
				log.Printf("warning: failed to cache daily stats: %v", err)
			}
		}
	}
	return stats, nil
}

func (s *StatsService) computeDailyStats(ctx context.Context, day time.Time) (*DailyStats, error) {
	next := day.AddDate(0, 0, 1)
	stats := &DailyStats{Date: day.Format("2006-01-02")}
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	// A room counts as occupied when a blocking booking's stay covers the
	// date. The room status column is physical state only.
	if err := db.Model(&models.Booking{}).
		Where("room_number IS NOT NULL AND room_number <> ''").
		Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Where("check_in_date <= ? AND check_out_date > ?", day, day).
		Distinct("room_number").
		Count(&stats.OccupiedRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("check_in_date >= ? AND check_in_date < ?", day, next).
		Count(&stats.CheckIns).Error; err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Where("check_out_date >= ? AND check_out_date < ?", day, next).
		Count(&stats.CheckOuts).Error; err != nil {
		return nil, fmt.Errorf("failed to count check-outs: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", day, next).
		Count(&stats.NewBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count new bookings: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("(room_number IS NULL OR room_number = '')").
		Where("status <> ?", models.BookingStatusCancelled).
		Count(&stats.Unassigned).Error; err != nil {
		return nil, fmt.Errorf("failed to count unassigned bookings: %w", err)
	}

	if stats.TotalRooms > 0 {
		stats.OccupancyRate = float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
	}
	return stats, nil
}
