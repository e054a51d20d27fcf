package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/base/usecases"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type BaseHandler struct {
	createBaseUC usecases.CreateBaseExecutor
	listBasesUC  usecases.ListBasesExecutor
	updateBaseUC usecases.UpdateBaseExecutor
	deleteBaseUC usecases.DeleteBaseExecutor
	setMembersUC usecases.SetBaseMembersExecutor
	logger       logger.Interface
}

func NewBaseHandler(
	createBaseUC usecases.CreateBaseExecutor,
	listBasesUC usecases.ListBasesExecutor,
	updateBaseUC usecases.UpdateBaseExecutor,
	deleteBaseUC usecases.DeleteBaseExecutor,
	setMembersUC usecases.SetBaseMembersExecutor,
	log logger.Interface,
) *BaseHandler {
	return &BaseHandler{
		createBaseUC: createBaseUC,
		listBasesUC:  listBasesUC,
		updateBaseUC: updateBaseUC,
		deleteBaseUC: deleteBaseUC,
		setMembersUC: setMembersUC,
		logger:       log,
	}
}

type CreateBaseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description,omitempty"`
}

type UpdateBaseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type SetBaseMembersRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// CreateBase handles POST /bases
func (h *BaseHandler) CreateBase(c *gin.Context) {
	var req CreateBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createBaseUC.Execute(c.Request.Context(), usecases.CreateBaseCommand{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		UserRole:    authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Base created successfully")
}

// ListBases handles GET /bases
func (h *BaseHandler) ListBases(c *gin.Context) {
	result, err := h.listBasesUC.Execute(c.Request.Context(), usecases.ListBasesQuery{
		ActiveOnly: c.Query("active") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateBase handles PATCH /bases/:id
func (h *BaseHandler) UpdateBase(c *gin.Context) {
	baseID, err := utils.ParseUintParam(c, "id", "base")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateBaseUC.Execute(c.Request.Context(), usecases.UpdateBaseCommand{
		BaseID:      baseID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		UserRole:    authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Base updated successfully", result)
}

// DeleteBase handles DELETE /bases/:id
func (h *BaseHandler) DeleteBase(c *gin.Context) {
	baseID, err := utils.ParseUintParam(c, "id", "base")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.deleteBaseUC.Execute(c.Request.Context(), usecases.DeleteBaseCommand{
		BaseID:   baseID,
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// SetMembers handles PUT /bases/:id/members
func (h *BaseHandler) SetMembers(c *gin.Context) {
	baseID, err := utils.ParseUintParam(c, "id", "base")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetBaseMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setMembersUC.Execute(c.Request.Context(), usecases.SetBaseMembersCommand{
		BaseID:   baseID,
		UserIDs:  req.UserIDs,
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Base members updated successfully", result)
}
