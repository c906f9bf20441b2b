// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/authclient"
	"github.com/dkpharma/asset-registry/internal/config"
	"github.com/dkpharma/asset-registry/internal/handlers"
	"github.com/dkpharma/asset-registry/internal/jobs"
	"github.com/dkpharma/asset-registry/internal/middleware"
	"github.com/dkpharma/asset-registry/internal/relay"
	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, hub *relay.Hub, syncer *jobs.IdentitySyncer) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	mailer := services.NewMailer(cfg)

	plantService := services.NewPlantService(db)
	areaService := services.NewAreaService(db)
	categoryService := services.NewCategoryService(db)
	specService := services.NewSpecificationService(db)
	consumableService := services.NewConsumableService(db)
	departmentService := services.NewDepartmentService(db)
	userService := services.NewUserService(db, cfg.JWT.AccessTokenTTL)
	assetService := services.NewAssetService(db)
	attachmentService := services.NewAttachmentService(db, storageService)

	// Initialize handlers
	plantHandler := handlers.NewPlantHandler(plantService)
	areaHandler := handlers.NewAreaHandler(areaService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	specHandler := handlers.NewSpecificationHandler(specService)
	consumableHandler := handlers.NewConsumableHandler(consumableService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	relayHandler := handlers.NewRelayHandler(hub, db, mailer)
	syncHandler := handlers.NewSyncHandler(syncer)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", userHandler.Login)
			auth.GET("/profile", middleware.AuthRequired(), userHandler.GetProfile)
			auth.PUT("/profile", middleware.AuthRequired(), userHandler.UpdateProfile)
			auth.PUT("/password", middleware.AuthRequired(), userHandler.ChangePassword)
		}

		// Plant and area routes
		plants := v1.Group("/plants", middleware.AuthRequired())
		{
			plants.GET("", plantHandler.GetPlants)
			plants.GET("/:id", plantHandler.GetPlant)
			plants.POST("", plantHandler.CreatePlant)
			plants.PUT("/:id", plantHandler.UpdatePlant)
			plants.DELETE("/:id", plantHandler.DeletePlant)
		}

		areas := v1.Group("/areas", middleware.AuthRequired())
		{
			areas.GET("", areaHandler.GetAreas)
			areas.GET("/:id", areaHandler.GetArea)
			areas.POST("", areaHandler.CreateArea)
			areas.PUT("/:id", areaHandler.UpdateArea)
			areas.DELETE("/:id", areaHandler.DeleteArea)
		}

		// Classification routes
		categories := v1.Group("/categories", middleware.AuthRequired())
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		subCategories := v1.Group("/sub-categories", middleware.AuthRequired())
		{
			subCategories.GET("", categoryHandler.GetSubCategories)
			subCategories.GET("/:id", categoryHandler.GetSubCategory)
			subCategories.POST("", categoryHandler.CreateSubCategory)
			subCategories.PUT("/:id", categoryHandler.UpdateSubCategory)
			subCategories.DELETE("/:id", categoryHandler.DeleteSubCategory)
			subCategories.PUT("/:id/spec-categories/reorder", specHandler.ReorderSpecCategories)
		}

		specCategories := v1.Group("/spec-categories", middleware.AuthRequired())
		{
			specCategories.GET("", specHandler.GetSpecCategories)
			specCategories.GET("/:id", specHandler.GetSpecCategory)
			specCategories.POST("", specHandler.CreateSpecCategory)
			specCategories.PUT("/:id", specHandler.UpdateSpecCategory)
			specCategories.DELETE("/:id", specHandler.DeleteSpecCategory)
		}

		consumables := v1.Group("/consumable-categories", middleware.AuthRequired())
		{
			consumables.GET("", consumableHandler.GetConsumableCategories)
			consumables.GET("/:id", consumableHandler.GetConsumableCategory)
			consumables.POST("", consumableHandler.CreateConsumableCategory)
			consumables.PUT("/:id", consumableHandler.UpdateConsumableCategory)
			consumables.DELETE("/:id", consumableHandler.DeleteConsumableCategory)
		}

		// Organization routes
		departments := v1.Group("/departments", middleware.AuthRequired())
		{
			departments.GET("", departmentHandler.GetDepartments)
			departments.GET("/:name", departmentHandler.GetDepartment)
		}

		users := v1.Group("/users", middleware.AuthRequired())
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/code/:employeeCode", userHandler.GetUserByEmployeeCode)
			users.GET("/:id", userHandler.GetUser)
		}

		// Asset routes
		assets := v1.Group("/assets", middleware.AuthRequired())
		{
			assets.GET("", assetHandler.GetAssets)
			assets.GET("/code/:code", assetHandler.GetAssetByCode)
			assets.GET("/:id", assetHandler.GetAsset)
			assets.POST("", assetHandler.CreateAsset)
			assets.PUT("/:id", assetHandler.UpdateAsset)
			assets.DELETE("/:id", assetHandler.DeleteAsset)
			assets.PUT("/:id/specifications", assetHandler.SetAssetSpecifications)

			assets.POST("/:id/image", middleware.UploadRateLimit(), attachmentHandler.UploadAssetImage)

			assets.GET("/:id/attachments", attachmentHandler.GetAttachments)
			assets.POST("/:id/attachments", middleware.UploadRateLimit(), attachmentHandler.UploadAttachment)
			assets.GET("/:id/attachments/:attachmentId/download", attachmentHandler.DownloadAttachment)
			assets.DELETE("/:id/attachments/:attachmentId", attachmentHandler.DeleteAttachment)
		}

		// Notification relay routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("/stream", middleware.OptionalAuth(), relayHandler.Stream)
			notifications.POST("/publish", middleware.AuthRequired(), relayHandler.Publish)
		}

		// Sync routes
		sync := v1.Group("/sync", middleware.AuthRequired())
		{
			sync.POST("/identity", syncHandler.RunIdentitySync)
		}
	}

	return r
}

// NewIdentitySyncer wires the sync job from configuration. Exposed here so
// main can share one syncer between the router and the scheduler.
func NewIdentitySyncer(db *gorm.DB, cfg *config.Config) *jobs.IdentitySyncer {
	client := authclient.NewClient(&cfg.AuthService)
	return jobs.NewIdentitySyncer(db, client, cfg.Sync.DefaultPassword)
}
