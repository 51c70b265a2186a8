package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/orgstock/inventory-api/internal/config"
	"github.com/orgstock/inventory-api/internal/database"
	"github.com/orgstock/inventory-api/internal/handlers"
	"github.com/orgstock/inventory-api/internal/logger"
	"github.com/orgstock/inventory-api/internal/middleware"
	"github.com/orgstock/inventory-api/internal/repository"
	"github.com/orgstock/inventory-api/internal/services"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(cfg.GinMode)
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.L().Fatal("failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	conditionRepo := repository.NewConditionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	consumableRepo := repository.NewConsumableRepository(db)
	logRepo := repository.NewLogRepository(db)

	// Services
	logService := services.NewLogService(logRepo)
	userService := services.NewUserService(userRepo, logService)
	roomService := services.NewRoomService(roomRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	conditionService := services.NewConditionService(conditionRepo)
	itemService := services.NewItemService(itemRepo, categoryRepo, roomRepo, conditionRepo, userRepo, logService)
	consumableService := services.NewConsumableService(consumableRepo, logService)
	reportService := services.NewReportService(userRepo, roomRepo, categoryRepo, conditionRepo, itemRepo, consumableRepo, logRepo)
	seedService := services.NewSeedService(db, userRepo, userService, roomService, categoryService, conditionService, itemService, consumableService, logService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	roomHandler := handlers.NewRoomHandler(roomService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	conditionHandler := handlers.NewConditionHandler(conditionService)
	itemHandler := handlers.NewItemHandler(itemService)
	consumableHandler := handlers.NewConsumableHandler(consumableService)
	logHandler := handlers.NewLogHandler(logService)
	reportHandler := handlers.NewReportHandler(reportService)
	seedHandler := handlers.NewSeedHandler(seedService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		requireAuth := middleware.RequireAuth(cfg.JWTSecret)
		requireAdmin := middleware.RequireAdmin()

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/validate", requireAuth, authHandler.Validate)
			auth.GET("/logout", authHandler.Logout)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.List)
			users.POST("", requireAdmin, userHandler.Create)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", requireAdmin, userHandler.Update)
			users.DELETE("/:id", requireAdmin, userHandler.Delete)
			users.PUT("/:id/password", userHandler.ChangePassword)
			users.PUT("/:id/role", requireAdmin, userHandler.ChangeRole)
			users.PUT("/:id/avatar", userHandler.ChangeAvatar)
		}

		rooms := api.Group("/rooms")
		rooms.Use(requireAuth)
		{
			rooms.GET("", roomHandler.List)
			rooms.POST("", requireAdmin, roomHandler.Create)
			rooms.GET("/:id", roomHandler.Get)
			rooms.PATCH("/:id", requireAdmin, roomHandler.Update)
			rooms.DELETE("/:id", requireAdmin, roomHandler.Delete)
		}

		inventory := api.Group("/inventory")
		inventory.Use(requireAuth)
		{
			conditions := inventory.Group("/conditions")
			{
				conditions.GET("", conditionHandler.List)
				conditions.POST("", requireAdmin, conditionHandler.Create)
				conditions.GET("/:id", conditionHandler.Get)
				conditions.PATCH("/:id", requireAdmin, conditionHandler.Update)
				conditions.DELETE("/:id", requireAdmin, conditionHandler.Delete)
			}

			categories := inventory.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", requireAdmin, categoryHandler.Create)
				categories.GET("/:id", categoryHandler.Get)
				categories.PATCH("/:id", requireAdmin, categoryHandler.Update)
				categories.DELETE("/:id", requireAdmin, categoryHandler.Delete)
			}

			items := inventory.Group("/items")
			{
				items.GET("", itemHandler.List)
				items.POST("", requireAdmin, itemHandler.Create)
				items.GET("/condition/:name", itemHandler.ListByCondition)
				items.GET("/:id", itemHandler.Get)
				items.PATCH("/:id", requireAdmin, itemHandler.Update)
				items.POST("/:id/write-off", requireAdmin, itemHandler.WriteOff)
				items.DELETE("/:id", requireAdmin, itemHandler.Delete)
			}
		}

		consumables := api.Group("/consumables")
		consumables.Use(requireAuth)
		{
			consumables.GET("", consumableHandler.List)
			consumables.POST("", requireAdmin, consumableHandler.Create)
			consumables.GET("/low-stock", consumableHandler.ListLowStock)
			consumables.GET("/:id", consumableHandler.Get)
			consumables.PATCH("/:id", requireAdmin, consumableHandler.Update)
			consumables.DELETE("/:id", requireAdmin, consumableHandler.Delete)
			consumables.POST("/:id/increase", consumableHandler.Increase)
			consumables.POST("/:id/decrease", consumableHandler.Decrease)
		}

		logs := api.Group("/logs")
		logs.Use(requireAuth, requireAdmin)
		{
			logs.GET("", logHandler.List)
		}

		reports := api.Group("/reports")
		reports.Use(requireAuth, requireAdmin)
		{
			reports.GET("/excel", reportHandler.Excel)
		}

		// Seeding bootstraps the first admin account, so it cannot demand
		// one until at least one user exists.
		seedGate := middleware.RequireAdminOrBootstrap(cfg.JWTSecret, func() (bool, error) {
			_, total, err := userRepo.List(0, 1)
			return total > 0, err
		})
		api.POST("/init/database", seedGate, seedHandler.InitDatabase)
	}

	logger.L().Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
