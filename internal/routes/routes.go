package routes

import (
	"net/http"

	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards *middleware.Guards,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.JobHandler.RegisterRoutes(api, guards)
		appHandlers.SeekerHandler.RegisterRoutes(api, guards)
		appHandlers.CompanyHandler.RegisterRoutes(api, guards)
		appHandlers.AdminHandler.RegisterRoutes(api, guards)
		appHandlers.NotificationHandler.RegisterRoutes(api, guards)
		appHandlers.FileHandler.RegisterRoutes(api, guards)
	}

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
