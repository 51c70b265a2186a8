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
	ErrCategoryFieldsMissing = errors.New("category name and short name are required")
	ErrCategoryNameTaken     = errors.New("a category with this name or short name already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryInUse         = errors.New("category is referenced by inventory items")
)

// CategoryService provides business logic for inventory categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// Create creates a category after checking name and short-name uniqueness.
func (s *CategoryService) Create(name, shortName, description string) (*models.InventoryCategory, error) {
	name = strings.TrimSpace(name)
	shortName = strings.TrimSpace(shortName)
	if name == "" || shortName == "" {
		return nil, ErrCategoryFieldsMissing
	}

	if err := s.checkUnique(name, shortName, 0); err != nil {
		return nil, err
	}

	category := &models.InventoryCategory{
		Name:        name,
		ShortName:   shortName,
		Description: description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List() ([]models.InventoryCategory, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID.
func (s *CategoryService) GetByID(id uint64) (*models.InventoryCategory, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// GetByName retrieves a category by name, exact or partial match.
func (s *CategoryService) GetByName(name string, exact bool) (*models.InventoryCategory, error) {
	category, err := s.categoryRepo.FindByName(name, exact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// Update applies a partial patch, re-checking uniqueness for changed names.
func (s *CategoryService) Update(id uint64, name, shortName, description *string) (*models.InventoryCategory, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	newName := category.Name
	newShort := category.ShortName
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if shortName != nil {
		newShort = strings.TrimSpace(*shortName)
	}
	if newName == "" || newShort == "" {
		return nil, ErrCategoryFieldsMissing
	}

	if err := s.checkUnique(newName, newShort, id); err != nil {
		return nil, err
	}

	category.Name = newName
	category.ShortName = newShort
	if description != nil {
		category.Description = *description
	}
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Categories still referenced by items are kept.
func (s *CategoryService) Delete(id uint64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) checkUnique(name, shortName string, selfID uint64) error {
	if existing, err := s.categoryRepo.FindByName(name, true); err == nil {
		if existing.ID != selfID {
			return ErrCategoryNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check category name: %w", err)
	}

	if existing, err := s.categoryRepo.FindByShortName(shortName); err == nil {
		if existing.ID != selfID {
			return ErrCategoryNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check category short name: %w", err)
	}
	return nil
}
