package repository

import (
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormRoomRepository is a GORM implementation of RoomRepository
type GormRoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *GormRoomRepository) FindByID(id uint64) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) FindByName(name string, exact bool) (*models.Room, error) {
	var room models.Room
	query := r.db
	if exact {
		query = query.Where("name = ?", name)
	} else {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := query.First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) FindByShortName(shortName string) (*models.Room, error) {
	var room models.Room
	if err := r.db.Where("short_name = ?", shortName).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.Order("name").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *GormRoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *GormRoomRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Room{}, id).Error
}
