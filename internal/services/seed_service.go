package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
)

// ErrAlreadySeeded is returned when the database already holds users and
// seeding was requested without force.
var ErrAlreadySeeded = errors.New("database already contains data")

// SeedService populates an empty database with a working data set. It goes
// through the regular services so seeded items get real inventory numbers
// and the audit trail stays consistent.
type SeedService struct {
	db                *gorm.DB
	userRepo          repository.UserRepository
	userService       *UserService
	roomService       *RoomService
	categoryService   *CategoryService
	conditionService  *ConditionService
	itemService       *ItemService
	consumableService *ConsumableService
	logService        *LogService
}

// NewSeedService creates a new SeedService.
func NewSeedService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	userService *UserService,
	roomService *RoomService,
	categoryService *CategoryService,
	conditionService *ConditionService,
	itemService *ItemService,
	consumableService *ConsumableService,
	logService *LogService,
) *SeedService {
	return &SeedService{
		db:                db,
		userRepo:          userRepo,
		userService:       userService,
		roomService:       roomService,
		categoryService:   categoryService,
		conditionService:  conditionService,
		itemService:       itemService,
		consumableService: consumableService,
		logService:        logService,
	}
}

// Seed fills the database with sample data. When the database already holds
// users it refuses unless force is set, in which case all existing rows are
// wiped first.
func (s *SeedService) Seed(force bool) error {
	_, total, err := s.userRepo.List(0, 1)
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if total > 0 {
		if !force {
			return ErrAlreadySeeded
		}
		if err := s.wipe(); err != nil {
			return err
		}
	}

	if err := s.seedConditions(); err != nil {
		return err
	}
	users, err := s.seedUsers()
	if err != nil {
		return err
	}
	rooms, err := s.seedRooms()
	if err != nil {
		return err
	}
	categories, err := s.seedCategories()
	if err != nil {
		return err
	}
	if err := s.seedItems(users, rooms, categories); err != nil {
		return err
	}
	if err := s.seedConsumables(); err != nil {
		return err
	}

	s.logService.Audit("Database seeded with sample data", models.LogInfo, "", nil)
	return nil
}

// wipe removes all rows in dependency order so foreign keys do not block
// the deletes.
func (s *SeedService) wipe() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Log{},
			&models.InventoryItem{},
			&models.Consumable{},
			&models.InventoryCategory{},
			&models.InventoryCondition{},
			&models.Room{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to wipe table: %w", err)
			}
		}
		return nil
	})
}

func (s *SeedService) seedConditions() error {
	conditions := []struct{ name, description string }{
		{models.ConditionNormal, "In working order"},
		{models.ConditionRequiresRepair, "Needs servicing before use"},
		{models.ConditionWrittenOff, "Removed from circulation"},
	}
	for _, c := range conditions {
		if _, err := s.conditionService.Create(c.name, c.description); err != nil {
			return fmt.Errorf("failed to seed condition %q: %w", c.name, err)
		}
	}
	return nil
}

func (s *SeedService) seedUsers() ([]*models.User, error) {
	inputs := []CreateUserInput{
		{
			Username:    "admin",
			Password:    "admin12345",
			Email:       "admin@example.org",
			FullName:    "Administrator",
			PhoneNumber: "+1-555-0100",
			IsAdmin:     true,
		},
		{
			Username:    "jsmith",
			Password:    "changeme123",
			Email:       "jsmith@example.org",
			FullName:    "John Smith",
			PhoneNumber: "+1-555-0101",
		},
		{
			Username:    "mgarcia",
			Password:    "changeme123",
			Email:       "mgarcia@example.org",
			FullName:    "Maria Garcia",
			PhoneNumber: "+1-555-0102",
		},
	}

	users := make([]*models.User, 0, len(inputs))
	for _, input := range inputs {
		user, err := s.userService.Create(input)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %q: %w", input.Username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *SeedService) seedRooms() ([]*models.Room, error) {
	rows := []struct{ name, shortName string }{
		{"Server Room", "SR"},
		{"Main Office", "MO"},
		{"Warehouse", "WH"},
	}
	rooms := make([]*models.Room, 0, len(rows))
	for _, row := range rows {
		room, err := s.roomService.Create(row.name, row.shortName)
		if err != nil {
			return nil, fmt.Errorf("failed to seed room %q: %w", row.name, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *SeedService) seedCategories() ([]*models.InventoryCategory, error) {
	rows := []struct{ name, shortName, description string }{
		{"Computers", "PC", "Desktops and laptops"},
		{"Monitors", "MON", "Displays of all sizes"},
		{"Furniture", "FUR", "Desks, chairs and cabinets"},
	}
	categories := make([]*models.InventoryCategory, 0, len(rows))
	for _, row := range rows {
		category, err := s.categoryService.Create(row.name, row.shortName, row.description)
		if err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", row.name, err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *SeedService) seedItems(users []*models.User, rooms []*models.Room, categories []*models.InventoryCategory) error {
	normal, err := s.conditionService.GetByName(models.ConditionNormal, true)
	if err != nil {
		return fmt.Errorf("failed to resolve seeded condition: %w", err)
	}
	repair, err := s.conditionService.GetByName(models.ConditionRequiresRepair, true)
	if err != nil {
		return fmt.Errorf("failed to resolve seeded condition: %w", err)
	}

	purchased := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromFloat(1249.90)

	inputs := []CreateItemInput{
		{
			Name:           "Dell Latitude 5540",
			Description:    "Staff laptop",
			CategoryID:     categories[0].ID,
			RoomID:         &rooms[1].ID,
			ConditionID:    normal.ID,
			AssignedUserID: &users[1].ID,
			PurchaseDate:   &purchased,
			PurchasePrice:  &price,
		},
		{
			Name:        "HP ProLiant DL380",
			Description: "Primary application server",
			CategoryID:  categories[0].ID,
			RoomID:      &rooms[0].ID,
			ConditionID: normal.ID,
		},
		{
			Name:        "Dell U2723QE",
			Description: "27 inch monitor, flickering backlight",
			CategoryID:  categories[1].ID,
			RoomID:      &rooms[1].ID,
			ConditionID: repair.ID,
		},
		{
			Name:        "Office Chair",
			Description: "Spare chair, not yet placed",
			CategoryID:  categories[2].ID,
			ConditionID: normal.ID,
		},
	}
	for _, input := range inputs {
		if _, err := s.itemService.Create(input); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", input.Name, err)
		}
	}
	return nil
}

func (s *SeedService) seedConsumables() error {
	ten := 10
	five := 5
	two := 2
	inputs := []CreateConsumableInput{
		{Name: "A4 Paper", Description: "500 sheet reams", Quantity: 24, MinQuantity: &ten, Unit: "ream"},
		{Name: "Toner Cartridge HP 26A", Quantity: 3, MinQuantity: &five},
		{Name: "Ethernet Cable 3m", Quantity: 1, MinQuantity: &two},
	}
	for _, input := range inputs {
		if _, err := s.consumableService.Create(input); err != nil {
			return fmt.Errorf("failed to seed consumable %q: %w", input.Name, err)
		}
	}
	return nil
}
