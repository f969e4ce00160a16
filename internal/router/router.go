package router

import (
	"github.com/zempo1/bookKeeper/internal/config"
	"github.com/zempo1/bookKeeper/internal/handler"
	"github.com/zempo1/bookKeeper/internal/middleware"
	"github.com/zempo1/bookKeeper/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures Gin engine and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	userService := service.NewUserService(db, cfg.Security.BcryptCost)
	categoryService := service.NewCategoryService(db)
	recordService := service.NewRecordService(db)

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(userService)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	categoryHandler := handler.NewCategoryHandler(categoryService)
	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create)
	api.DELETE("/categories/:id", categoryHandler.Delete)

	recordHandler := handler.NewRecordHandler(recordService)
	api.GET("/records", recordHandler.List)
	api.POST("/records", recordHandler.Create)
	api.PUT("/records/:id", recordHandler.Update)
	api.DELETE("/records/:id", recordHandler.Delete)

	exportHandler := handler.NewExportHandler(recordService)
	api.GET("/records/export/csv", exportHandler.ExportCSV)
	api.GET("/records/export/xlsx", exportHandler.ExportXLSX)

	return r
}
