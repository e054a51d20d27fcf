package routes

import (
	"github.com/gin-gonic/gin"

	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	ProfileHandler       *handlers.ProfileHandler
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	profile := api.Group("/profile")
	profile.Use(cfg.AuthMiddleware.RequireAuth())
	{
		profile.GET("", cfg.ProfileHandler.GetProfile)
		profile.PATCH("", cfg.ProfileHandler.UpdateProfile)
		profile.POST("/password", cfg.ProfileHandler.ChangePassword)
	}

	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	users.Use(cfg.PermissionMiddleware.RequirePermission("users", "manage"))
	{
		users.GET("", cfg.UserHandler.ListUsers)
		users.PATCH("/:id/role", cfg.UserHandler.AssignRole)
		users.PUT("/:id/bases", cfg.UserHandler.AssignBases)
	}
}
