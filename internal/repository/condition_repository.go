package repository

import (
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormConditionRepository is a GORM implementation of ConditionRepository
type GormConditionRepository struct {
	db *gorm.DB
}

// NewConditionRepository creates a new ConditionRepository
func NewConditionRepository(db *gorm.DB) ConditionRepository {
	return &GormConditionRepository{db: db}
}

func (r *GormConditionRepository) Create(condition *models.InventoryCondition) error {
	return r.db.Create(condition).Error
}

func (r *GormConditionRepository) FindByID(id uint64) (*models.InventoryCondition, error) {
	var condition models.InventoryCondition
	if err := r.db.First(&condition, id).Error; err != nil {
		return nil, err
	}
	return &condition, nil
}

func (r *GormConditionRepository) FindByName(name string, exact bool) (*models.InventoryCondition, error) {
	var condition models.InventoryCondition
	query := r.db
	if exact {
		query = query.Where("name = ?", name)
	} else {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := query.First(&condition).Error; err != nil {
		return nil, err
	}
	return &condition, nil
}

func (r *GormConditionRepository) List() ([]models.InventoryCondition, error) {
	var conditions []models.InventoryCondition
	if err := r.db.Order("id").Find(&conditions).Error; err != nil {
		return nil, err
	}
	return conditions, nil
}

func (r *GormConditionRepository) Update(condition *models.InventoryCondition) error {
	return r.db.Save(condition).Error
}

func (r *GormConditionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.InventoryCondition{}, id).Error
}
