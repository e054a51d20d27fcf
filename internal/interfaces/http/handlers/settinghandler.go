package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/setting/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type SettingHandler struct {
	getSettingsUC         usecases.GetSettingsExecutor
	updateNotificationsUC usecases.UpdateNotificationsExecutor
	linkTelegramUC        usecases.LinkTelegramExecutor
	unlinkTelegramUC      usecases.UnlinkTelegramExecutor
	logger                logger.Interface
}

func NewSettingHandler(
	getSettingsUC usecases.GetSettingsExecutor,
	updateNotificationsUC usecases.UpdateNotificationsExecutor,
	linkTelegramUC usecases.LinkTelegramExecutor,
	unlinkTelegramUC usecases.UnlinkTelegramExecutor,
	log logger.Interface,
) *SettingHandler {
	return &SettingHandler{
		getSettingsUC:         getSettingsUC,
		updateNotificationsUC: updateNotificationsUC,
		linkTelegramUC:        linkTelegramUC,
		unlinkTelegramUC:      unlinkTelegramUC,
		logger:                log,
	}
}

type UpdateNotificationsRequest struct {
	TicketUpdates   *bool `json:"ticket_updates,omitempty"`
	EmailEnabled    *bool `json:"email_enabled,omitempty"`
	TelegramEnabled *bool `json:"telegram_enabled,omitempty"`
}

type LinkTelegramRequest struct {
	Username string `json:"username" binding:"required"`
}

// GetSettings handles GET /settings
func (h *SettingHandler) GetSettings(c *gin.Context) {
	result, err := h.getSettingsUC.Execute(c.Request.Context(), usecases.GetSettingsQuery{
		UserID: utils.CurrentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateNotifications handles PATCH /settings/notifications
func (h *SettingHandler) UpdateNotifications(c *gin.Context) {
	var req UpdateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateNotificationsUC.Execute(c.Request.Context(), usecases.UpdateNotificationsCommand{
		UserID:          utils.CurrentUserID(c),
		TicketUpdates:   req.TicketUpdates,
		EmailEnabled:    req.EmailEnabled,
		TelegramEnabled: req.TelegramEnabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification settings updated", result)
}

// LinkTelegram handles POST /settings/telegram/link
func (h *SettingHandler) LinkTelegram(c *gin.Context) {
	var req LinkTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.linkTelegramUC.Execute(c.Request.Context(), usecases.LinkTelegramCommand{
		UserID:   utils.CurrentUserID(c),
		Username: req.Username,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Telegram linked successfully", result)
}

// UnlinkTelegram handles DELETE /settings/telegram/link
func (h *SettingHandler) UnlinkTelegram(c *gin.Context) {
	result, err := h.unlinkTelegramUC.Execute(c.Request.Context(), usecases.UnlinkTelegramCommand{
		UserID: utils.CurrentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Telegram unlinked successfully", result)
}
