package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/user/usecases"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

// UserHandler carries the admin user-management surface.
type UserHandler struct {
	listUsersUC   usecases.ListUsersExecutor
	assignRoleUC  usecases.AssignRoleExecutor
	assignBasesUC usecases.AssignBasesExecutor
	logger        logger.Interface
}

func NewUserHandler(
	listUsersUC usecases.ListUsersExecutor,
	assignRoleUC usecases.AssignRoleExecutor,
	assignBasesUC usecases.AssignBasesExecutor,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:   listUsersUC,
		assignRoleUC:  assignRoleUC,
		assignBasesUC: assignBasesUC,
		logger:        log,
	}
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type AssignBasesRequest struct {
	BaseIDs []uint `json:"base_ids"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListUsersQuery{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		UserRole: authorization.UserRole(utils.CurrentUserRole(c)),
	}

	if raw := c.Query("base_id"); raw != "" {
		baseID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid base_id")
			return
		}
		query.BaseID = uint(baseID)
	}

	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		query.Active = &active
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// AssignRole handles PATCH /users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	targetID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignRoleUC.Execute(c.Request.Context(), usecases.AssignRoleCommand{
		TargetUserID: targetID,
		Role:         req.Role,
		ActorID:      utils.CurrentUserID(c),
		ActorRole:    authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", result)
}

// AssignBases handles PUT /users/:id/bases
func (h *UserHandler) AssignBases(c *gin.Context) {
	targetID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignBasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignBasesUC.Execute(c.Request.Context(), usecases.AssignBasesCommand{
		TargetUserID: targetID,
		BaseIDs:      req.BaseIDs,
		ActorRole:    authorization.UserRole(utils.CurrentUserRole(c)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Base memberships updated successfully", result)
}
