package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	createTicketUC   usecases.CreateTicketExecutor
	getTicketUC      usecases.GetTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	updateTicketUC   usecases.UpdateTicketExecutor
	changeStatusUC   usecases.ChangeStatusExecutor
	changePriorityUC usecases.ChangePriorityExecutor
	assignTicketUC   usecases.AssignTicketExecutor
	addCommentUC     usecases.AddCommentExecutor
	getStatsUC       usecases.GetTicketStatsExecutor
	logger           logger.Interface
}

func NewHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	changePriorityUC usecases.ChangePriorityExecutor,
	assignTicketUC usecases.AssignTicketExecutor,
	addCommentUC usecases.AddCommentExecutor,
	getStatsUC usecases.GetTicketStatsExecutor,
	log logger.Interface,
) *Handler {
	return &Handler{
		createTicketUC:   createTicketUC,
		getTicketUC:      getTicketUC,
		listTicketsUC:    listTicketsUC,
		updateTicketUC:   updateTicketUC,
		changeStatusUC:   changeStatusUC,
		changePriorityUC: changePriorityUC,
		assignTicketUC:   assignTicketUC,
		addCommentUC:     addCommentUC,
		getStatsUC:       getStatsUC,
		logger:           log,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Success 201 {object} utils.APIResponse
// @Router /tickets [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(utils.CurrentUserID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *Handler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{
		TicketID:   ticketID,
		UserID:     utils.CurrentUserID(c),
		UserRole:   authorization.UserRole(utils.CurrentUserRole(c)),
		RenderHTML: c.DefaultQuery("render", "html") == "html",
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *Handler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := req.ToQuery(utils.CurrentUserID(c), authorization.UserRole(utils.CurrentUserRole(c)))

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /tickets/:id. Title and description go through
// the update use case; a priority change is a separate operation with its
// own history entry, dispatched here when the field is present.
func (h *Handler) UpdateTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID := utils.CurrentUserID(c)
	role := authorization.UserRole(utils.CurrentUserRole(c))

	if req.Title != nil || req.Description != nil {
		cmd := usecases.UpdateTicketCommand{
			TicketID:    ticketID,
			Title:       req.Title,
			Description: req.Description,
			UserID:      userID,
			UserRole:    role,
		}
		if _, err := h.updateTicketUC.Execute(c.Request.Context(), cmd); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	if req.Priority != nil {
		cmd := usecases.ChangePriorityCommand{
			TicketID: ticketID,
			Priority: *req.Priority,
			UserID:   userID,
			UserRole: role,
		}
		if _, err := h.changePriorityUC.Execute(c.Request.Context(), cmd); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	query := usecases.GetTicketQuery{TicketID: ticketID, UserID: userID, UserRole: role}
	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// ChangeStatus handles PATCH /tickets/:id/status
func (h *Handler) ChangeStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ChangeStatusCommand{
		TicketID: ticketID,
		Status:   req.Status,
		Note:     req.Note,
		UserID:   utils.CurrentUserID(c),
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status changed successfully", result)
}

// AssignTicket handles POST /tickets/:id/assign
func (h *Handler) AssignTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		UserID:     utils.CurrentUserID(c),
		UserRole:   authorization.UserRole(utils.CurrentUserRole(c)),
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// AddComment handles POST /tickets/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AddCommentCommand{
		TicketID: ticketID,
		AuthorID: utils.CurrentUserID(c),
		Content:  req.Content,
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// GetStats handles GET /tickets/stats
// @Summary Ticket counts by status and priority
// @Tags tickets
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /tickets/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	query := usecases.GetTicketStatsQuery{
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	}

	result, err := h.getStatsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
