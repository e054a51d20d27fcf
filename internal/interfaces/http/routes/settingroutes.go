package routes

import (
	"github.com/gin-gonic/gin"

	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
)

type SettingRouteConfig struct {
	SettingHandler *handlers.SettingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupSettingRoutes(api *gin.RouterGroup, cfg *SettingRouteConfig) {
	settings := api.Group("/settings")
	settings.Use(cfg.AuthMiddleware.RequireAuth())
	{
		settings.GET("", cfg.SettingHandler.GetSettings)
		settings.PATCH("/notifications", cfg.SettingHandler.UpdateNotifications)
		settings.POST("/telegram/link", cfg.SettingHandler.LinkTelegram)
		settings.DELETE("/telegram/link", cfg.SettingHandler.UnlinkTelegram)
	}
}
