// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/AtRiskMedia/monster-widget/internal/application/container"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(container.Logger, container.Metrics))
	r.Use(middleware.CORSMiddleware(config.CORSOrigins))

	// Initialize handlers
	systemHandlers := handlers.NewSystemHandlers(container.Metrics.Handler())
	sidebarHandlers := handlers.NewSidebarHandlers(container.SidebarService, container.PreviewHub, config.CORSOrigins, container.Logger)
	monsterHandlers := handlers.NewMonsterHandlers(container.Monster, container.Widgets)
	menuHandlers := handlers.NewMenuHandlers(container.MenuService, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService)
	mediaHandlers := handlers.NewMediaHandlers(container.Placeholder)

	r.GET("/healthz", systemHandlers.Health)
	r.GET("/metrics", systemHandlers.Metrics)

	// Preview pages
	r.GET("/", sidebarHandlers.Index)
	sidebars := r.Group("/sidebars")
	{
		sidebars.GET("/:id", sidebarHandlers.Page)
		sidebars.GET("/:id/fragment", sidebarHandlers.Fragment)
		sidebars.GET("/:id/live", sidebarHandlers.Live)
	}

	mediaGroup := r.Group("/media")
	{
		mediaGroup.GET("/test-image-landscape-900.jpg", mediaHandlers.LandscapeJPEG)
		mediaGroup.GET("/test-image-landscape-900.webp", mediaHandlers.LandscapeWebP)
	}

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandlers.Login)

		api.GET("/sidebars", sidebarHandlers.ListSidebars)
		api.GET("/widgets", monsterHandlers.GetWidgets)

		monsterGroup := api.Group("/monster")
		{
			monsterGroup.GET("/config", monsterHandlers.GetConfig)
			monsterGroup.GET("/breaker", monsterHandlers.GetBreaker)
		}

		menus := api.Group("/menus")
		{
			menus.GET("", menuHandlers.GetAllMenus)
			menus.GET("/:id", menuHandlers.GetMenuByID)

			admin := menus.Group("", middleware.AdminAuth(container.AuthService))
			{
				admin.POST("", menuHandlers.CreateMenu)
				admin.POST("/:id/links", menuHandlers.AddLink)
				admin.DELETE("/:id", menuHandlers.DeleteMenu)
			}
		}
	}

	return r
}
