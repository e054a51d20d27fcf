package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/notification/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type NotificationHandler struct {
	dispatchUC usecases.DispatchTicketNotificationExecutor
	logger     logger.Interface
}

func NewNotificationHandler(
	dispatchUC usecases.DispatchTicketNotificationExecutor,
	log logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		dispatchUC: dispatchUC,
		logger:     log,
	}
}

type SendNotificationRequest struct {
	Type     string  `json:"type" binding:"required"`
	TicketID uint    `json:"ticket_id" binding:"required"`
	Message  string  `json:"message,omitempty"`
	ChatIDs  []int64 `json:"chat_ids,omitempty"`
}

// Send handles POST /notifications/send
// @Summary Fan a ticket event out to notification channels
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} usecases.DispatchTicketNotificationResult
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.dispatchUC.Execute(c.Request.Context(), usecases.DispatchTicketNotificationCommand{
		Type:     req.Type,
		TicketID: req.TicketID,
		Message:  req.Message,
		ChatIDs:  req.ChatIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The dispatch contract: counts in the body, never a partial-failure
	// error status.
	c.JSON(http.StatusOK, result)
}
