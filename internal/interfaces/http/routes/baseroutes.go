package routes

import (
	"github.com/gin-gonic/gin"

	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
)

type BaseRouteConfig struct {
	BaseHandler          *handlers.BaseHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupBaseRoutes(api *gin.RouterGroup, cfg *BaseRouteConfig) {
	bases := api.Group("/bases")
	bases.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Listing is open to all authenticated users: the ticket form needs
		// base names. Mutations require the admin grant.
		bases.GET("", cfg.BaseHandler.ListBases)

		manage := cfg.PermissionMiddleware.RequirePermission("bases", "manage")
		bases.POST("", manage, cfg.BaseHandler.CreateBase)
		bases.PATCH("/:id", manage, cfg.BaseHandler.UpdateBase)
		bases.DELETE("/:id", manage, cfg.BaseHandler.DeleteBase)
		bases.PUT("/:id/members", manage, cfg.BaseHandler.SetMembers)
	}
}
