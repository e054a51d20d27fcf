package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/user/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ProfileHandler struct {
	getProfileUC     usecases.GetProfileExecutor
	updateProfileUC  usecases.UpdateProfileExecutor
	changePasswordUC usecases.ChangePasswordExecutor
	logger           logger.Interface
}

func NewProfileHandler(
	getProfileUC usecases.GetProfileExecutor,
	updateProfileUC usecases.UpdateProfileExecutor,
	changePasswordUC usecases.ChangePasswordExecutor,
	log logger.Interface,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:     getProfileUC,
		updateProfileUC:  updateProfileUC,
		changePasswordUC: changePasswordUC,
		logger:           log,
	}
}

type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// GetProfile handles GET /profile
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	result, err := h.getProfileUC.Execute(c.Request.Context(), usecases.GetProfileQuery{
		UserID: utils.CurrentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateProfile handles PATCH /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		UserID: utils.CurrentUserID(c),
		Name:   req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// ChangePassword handles POST /profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.changePasswordUC.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          utils.CurrentUserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}
