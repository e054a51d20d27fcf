package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/user/usecases"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type AuthHandler struct {
	registerUC   usecases.RegisterExecutor
	loginUC      usecases.LoginExecutor
	refreshUC    usecases.RefreshTokenExecutor
	logoutUC     usecases.LogoutExecutor
	jwtConfig    config.JWTConfig
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	registerUC usecases.RegisterExecutor,
	loginUC usecases.LoginExecutor,
	refreshUC usecases.RefreshTokenExecutor,
	logoutUC usecases.LogoutExecutor,
	jwtConfig config.JWTConfig,
	cookieConfig config.CookieConfig,
	log logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		refreshUC:    refreshUC,
		logoutUC:     logoutUC,
		jwtConfig:    jwtConfig,
		cookieConfig: cookieConfig,
		logger:       log,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Account created successfully")
}

// Login handles POST /auth/login. Tokens go out both in the body and as
// HttpOnly cookies so browser and API clients share the endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetAuthCookies(c, h.cookieConfig,
		result.AccessToken, result.RefreshToken,
		h.accessMaxAge(), h.refreshMaxAge())

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// Refresh handles POST /auth/refresh. The refresh token comes from the
// cookie for browsers or the body for API clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token = utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	}
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing refresh token")
		return
	}

	result, err := h.refreshUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: token,
	})
	if err != nil {
		utils.ClearAuthCookies(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetAuthCookies(c, h.cookieConfig,
		result.AccessToken, result.RefreshToken,
		h.accessMaxAge(), h.refreshMaxAge())

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", result)
}

// Logout handles POST /auth/logout. Idempotent: the cookies are cleared
// even when the session row is already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(constants.ContextKeySessionID)

	if sessionID != "" {
		if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{SessionID: sessionID}); err != nil {
			h.logger.Warnw("logout failed", "session_id", sessionID, "error", err)
		}
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) accessMaxAge() int {
	return h.jwtConfig.AccessExpMinutes * 60
}

func (h *AuthHandler) refreshMaxAge() int {
	return h.jwtConfig.RefreshExpDays * 24 * 3600
}
