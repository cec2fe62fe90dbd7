package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-pms/models"

	"gorm.io/gorm"
)

// RoomService wraps *gorm.DB with the room inventory logic. It implements
// RoomSource for the assignment engine.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// FetchRooms returns the full room inventory ordered by room number, with
// the denormalized type name backfilled from the catalogued type when the
// room itself carries none.
func (s *RoomService) FetchRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	for i := range rooms {
		if strings.TrimSpace(rooms[i].RoomTypeName) == "" && rooms[i].RoomType.ID != 0 {
			rooms[i].RoomTypeName = rooms[i].RoomType.TypeName
		}
	}
	return rooms, nil
}

func (s *RoomService) GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Preload("RoomType").
		Where("room_number = ?", roomNumber).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve room %s: %w", roomNumber, err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return errors.New("room_number_required")
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.WithContext(ctx).First(&rt, *room.RoomTypeID).Error; err != nil {
			return errors.New("invalid_room_type")
		}
		if strings.TrimSpace(room.RoomTypeName) == "" {
			room.RoomTypeName = rt.TypeName
		}
	}
	return s.DB.WithContext(ctx).Create(room).Error
}

func (s *RoomService) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	// Protect identity and bookkeeping columns.
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}

// RoomTypeService handles the room-type catalogue.
type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(ctx context.Context, rt *models.RoomType) error {
	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		return errors.New("type_name_required")
	}
	return s.DB.WithContext(ctx).Create(rt).Error
}

func (s *RoomTypeService) GetAll(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.WithContext(ctx).Order("type_name ASC").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room_type_not_found")
	}
	return nil
}
