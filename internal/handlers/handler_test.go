package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orgstock/inventory-api/internal/auth"
	"github.com/orgstock/inventory-api/internal/config"
	"github.com/orgstock/inventory-api/internal/constants"
	"github.com/orgstock/inventory-api/internal/middleware"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"github.com/orgstock/inventory-api/internal/services"
)

const testJWTSecret = "handler-test-secret"

type handlerTestEnv struct {
	db               *gorm.DB
	cfg              *config.Config
	router           *gin.Engine
	userService      *services.UserService
	roomService      *services.RoomService
	categoryService  *services.CategoryService
	conditionService *services.ConditionService
	itemService      *services.ItemService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		JWTSecret:   testJWTSecret,
		JWTTokenTTL: time.Hour,
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	conditionRepo := repository.NewConditionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	consumableRepo := repository.NewConsumableRepository(db)
	logRepo := repository.NewLogRepository(db)

	logService := services.NewLogService(logRepo)
	userService := services.NewUserService(userRepo, logService)
	roomService := services.NewRoomService(roomRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	conditionService := services.NewConditionService(conditionRepo)
	itemService := services.NewItemService(itemRepo, categoryRepo, roomRepo, conditionRepo, userRepo, logService)
	consumableService := services.NewConsumableService(consumableRepo, logService)
	seedService := services.NewSeedService(db, userRepo, userService, roomService, categoryService, conditionService, itemService, consumableService, logService)

	authHandler := NewAuthHandler(userService, cfg)
	roomHandler := NewRoomHandler(roomService)
	itemHandler := NewItemHandler(itemService)
	seedHandler := NewSeedHandler(seedService)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	requireAdmin := middleware.RequireAdmin()
	seedGate := middleware.RequireAdminOrBootstrap(cfg.JWTSecret, func() (bool, error) {
		_, total, err := userRepo.List(0, 1)
		return total > 0, err
	})

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/validate", requireAuth, authHandler.Validate)
		api.GET("/auth/logout", authHandler.Logout)

		api.GET("/rooms", requireAuth, roomHandler.List)
		api.POST("/rooms", requireAuth, requireAdmin, roomHandler.Create)

		api.GET("/inventory/items", requireAuth, itemHandler.List)
		api.POST("/inventory/items", requireAuth, requireAdmin, itemHandler.Create)
		api.GET("/inventory/items/:id", requireAuth, itemHandler.Get)
		api.POST("/inventory/items/:id/write-off", requireAuth, requireAdmin, itemHandler.WriteOff)
		api.PATCH("/inventory/items/:id", requireAuth, requireAdmin, itemHandler.Update)

		api.POST("/init/database", seedGate, seedHandler.InitDatabase)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return handlerTestEnv{
		db:               db,
		cfg:              cfg,
		router:           r,
		userService:      userService,
		roomService:      roomService,
		categoryService:  categoryService,
		conditionService: conditionService,
		itemService:      itemService,
	}
}

// createUser registers an account directly through the service layer.
func (env handlerTestEnv) createUser(t *testing.T, username string, isAdmin bool) *models.User {
	t.Helper()

	user, err := env.userService.Create(services.CreateUserInput{
		Username:    username,
		Password:    "supersecret",
		Email:       username + "@example.org",
		FullName:    "Test " + username,
		PhoneNumber: "+1-555-" + username,
		IsAdmin:     isAdmin,
	})
	require.NoError(t, err)
	return user
}

// authCookie issues a token for the user the way the login handler does.
func (env handlerTestEnv) authCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()

	token, err := auth.GenerateToken(env.cfg.JWTSecret, env.cfg.JWTTokenTTL, user.ID, user.IsAdmin)
	require.NoError(t, err)
	return &http.Cookie{Name: constants.JWTCookieName, Value: token}
}

func (env handlerTestEnv) doJSON(t *testing.T, method, path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
