package handler

import (
	"net/http"

	"orgchart/internal/middleware"
	"orgchart/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责管理员登录、刷新令牌和注销。
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest 是登录接口请求体。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 是刷新令牌接口请求体。
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func tokenPair(accessToken, refreshToken string) gin.H {
	return gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}
}

// Login 校验管理员账号并返回 access/refresh token。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, "Login", err)
		return
	}

	accessToken, refreshToken, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, "Login", err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", tokenPair(accessToken, refreshToken))
}

// Refresh 用 refresh token 换取一对新令牌。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, "Refresh", err)
		return
	}

	accessToken, refreshToken, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "Refresh", err)
		return
	}
	respondOK(c, http.StatusOK, "Token refreshed successfully", tokenPair(accessToken, refreshToken))
}

// Logout 注销当前访问令牌。路由挂在 AuthMiddleware 之后，令牌已经校验过。
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := c.GetString(middleware.ContextKeyAccessToken)
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"message": "Invalid authorization header",
		})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken); err != nil {
		respondError(c, "Logout", err)
		return
	}
	respondOK(c, http.StatusOK, "Logout successful", nil)
}
