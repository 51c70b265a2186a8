package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRoomFieldsMissing = errors.New("room name and short name are required")
	ErrRoomNameTaken     = errors.New("a room with this name or short name already exists")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomInUse         = errors.New("room is referenced by inventory items")
)

// RoomService provides business logic for room operations.
type RoomService struct {
	roomRepo repository.RoomRepository
}

// NewRoomService creates a new RoomService.
func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
	}
}

// Create creates a room after checking name and short-name uniqueness.
func (s *RoomService) Create(name, shortName string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	shortName = strings.TrimSpace(shortName)
	if name == "" || shortName == "" {
		return nil, ErrRoomFieldsMissing
	}

	if err := s.checkUnique(name, shortName, 0); err != nil {
		return nil, err
	}

	room := &models.Room{
		Name:      name,
		ShortName: shortName,
	}
	if err := s.roomRepo.Create(room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameTaken
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// List returns all rooms.
func (s *RoomService) List() ([]models.Room, error) {
	rooms, err := s.roomRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetByID retrieves a room by ID.
func (s *RoomService) GetByID(id uint64) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

// GetByName retrieves a room by name, exact or partial match.
func (s *RoomService) GetByName(name string, exact bool) (*models.Room, error) {
	room, err := s.roomRepo.FindByName(name, exact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

// Update applies a partial patch, re-checking uniqueness for changed names.
func (s *RoomService) Update(id uint64, name, shortName *string) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	newName := room.Name
	newShort := room.ShortName
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if shortName != nil {
		newShort = strings.TrimSpace(*shortName)
	}
	if newName == "" || newShort == "" {
		return nil, ErrRoomFieldsMissing
	}

	if err := s.checkUnique(newName, newShort, id); err != nil {
		return nil, err
	}

	room.Name = newName
	room.ShortName = newShort
	if err := s.roomRepo.Update(room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameTaken
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

// Delete removes a room. Rooms still referenced by items are kept.
func (s *RoomService) Delete(id uint64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrRoomInUse
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *RoomService) checkUnique(name, shortName string, selfID uint64) error {
	if existing, err := s.roomRepo.FindByName(name, true); err == nil {
		if existing.ID != selfID {
			return ErrRoomNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check room name: %w", err)
	}

	if existing, err := s.roomRepo.FindByShortName(shortName); err == nil {
		if existing.ID != selfID {
			return ErrRoomNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check room short name: %w", err)
	}
	return nil
}
