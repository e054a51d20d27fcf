package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Specific paths before parameterized ones to avoid route conflicts.
		tickets.GET("/stats",
			cfg.PermissionMiddleware.RequirePermission("reports", "read"),
			cfg.TicketHandler.GetStats)

		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)

		tickets.POST("/:id/assign",
			cfg.PermissionMiddleware.RequirePermission("tickets", "manage"),
			cfg.TicketHandler.AssignTicket)
		tickets.POST("/:id/comments", cfg.TicketHandler.AddComment)
		tickets.PATCH("/:id/status", cfg.TicketHandler.ChangeStatus)

		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:id", cfg.TicketHandler.UpdateTicket)
	}
}
