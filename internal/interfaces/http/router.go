package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/interfaces/http/routes"

	_ "helpdesk/docs"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// SetupRoutes installs global middleware and mounts every route group
// under /api/v1.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", c.healthHandler.Health)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api/v1")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimit:      c.rateLimit,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		ProfileHandler:       c.profileHandler,
		UserHandler:          c.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupSettingRoutes(api, &routes.SettingRouteConfig{
		SettingHandler: c.settingHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupBaseRoutes(api, &routes.BaseRouteConfig{
		BaseHandler:          c.baseHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler:  c.notificationHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// Engine exposes the gin engine so the server command can own the
// http.Server lifecycle.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}
