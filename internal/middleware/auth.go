package middleware

import (
	"errors"
	"net/http"
	"strings"

	"orgchart/internal/service"
	"orgchart/pkg/log"
	"orgchart/pkg/token"

	"github.com/gin-gonic/gin"
)

// 上下文中的键，Handler 通过这些键读取认证结果。
const (
	ContextKeyClaims      = "claims"
	ContextKeyAccessToken = "accessToken"
)

// AuthMiddleware 是管理员 JWT 认证中间件，用于保护修改组织树的接口。
// 工作流程：
//  1. 从请求头 Authorization 中提取 Bearer Token
//  2. 交给 AuthService 校验签名、有效期、令牌类型、管理员角色和黑名单
//  3. 将 claims 和原始 token 注入 Gin 上下文，注销接口需要用到原始 token
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}

		tokenString, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid authorization header",
			})
			return
		}

		claims, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if service.IsAuthError(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    http.StatusUnauthorized,
					"message": "Invalid or expired access token",
				})
				return
			}
			log.Error("AuthMiddleware: failed to authenticate token", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyAccessToken, tokenString)
		c.Next()
	}
}

// ClaimsFromContext 读取 AuthMiddleware 注入的 claims。
func ClaimsFromContext(c *gin.Context) (*token.Claims, bool) {
	v, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

// extractBearerToken 从 Authorization 请求头中提取 Bearer Token。
// 期望格式：Bearer <token>，前缀大小写不敏感。
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
