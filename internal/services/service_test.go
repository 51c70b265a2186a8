package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
)

// testEnv bundles the full service stack over an in-memory database.
type testEnv struct {
	db                *gorm.DB
	userService       *UserService
	roomService       *RoomService
	categoryService   *CategoryService
	conditionService  *ConditionService
	itemService       *ItemService
	consumableService *ConsumableService
	logService        *LogService
	reportService     *ReportService
	seedService       *SeedService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.InventoryCategory{},
		&models.InventoryCondition{},
		&models.InventoryItem{},
		&models.Consumable{},
		&models.Log{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	conditionRepo := repository.NewConditionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	consumableRepo := repository.NewConsumableRepository(db)
	logRepo := repository.NewLogRepository(db)

	logService := NewLogService(logRepo)
	userService := NewUserService(userRepo, logService)
	roomService := NewRoomService(roomRepo)
	categoryService := NewCategoryService(categoryRepo)
	conditionService := NewConditionService(conditionRepo)
	itemService := NewItemService(itemRepo, categoryRepo, roomRepo, conditionRepo, userRepo, logService)
	consumableService := NewConsumableService(consumableRepo, logService)
	reportService := NewReportService(userRepo, roomRepo, categoryRepo, conditionRepo, itemRepo, consumableRepo, logRepo)
	seedService := NewSeedService(db, userRepo, userService, roomService, categoryService, conditionService, itemService, consumableService, logService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:                db,
		userService:       userService,
		roomService:       roomService,
		categoryService:   categoryService,
		conditionService:  conditionService,
		itemService:       itemService,
		consumableService: consumableService,
		logService:        logService,
		reportService:     reportService,
		seedService:       seedService,
	}
}

// seedItemRefs creates the reference rows item tests need and returns them.
func (env testEnv) seedItemRefs(t *testing.T) (*models.InventoryCategory, *models.Room, *models.InventoryCondition) {
	t.Helper()

	category, err := env.categoryService.Create("Computers", "PC", "")
	require.NoError(t, err)
	room, err := env.roomService.Create("Server Room", "SR")
	require.NoError(t, err)
	condition, err := env.conditionService.Create(models.ConditionNormal, "")
	require.NoError(t, err)
	return category, room, condition
}
