package handler

import (
	"errors"
	"net/http"

	"orgchart/internal/service"
	"orgchart/pkg/log"

	"github.com/gin-gonic/gin"
)

// mapServiceError 把 Service 层哨兵错误转换为 HTTP 状态码和对外消息。
// 对外口径统一，不泄露内部实现细节。
func mapServiceError(err error) (httpStatus int, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, service.ErrNodeNotFound):
		return http.StatusNotFound, "Org node not found"
	case errors.Is(err, service.ErrNotDepartment):
		return http.StatusConflict, "Org node is not a department"
	case errors.Is(err, service.ErrNotEmployee):
		return http.StatusConflict, "Org node is not an employee"
	case errors.Is(err, service.ErrCycle):
		return http.StatusConflict, "Org node would create a cycle"
	case errors.Is(err, service.ErrBlacklistUnavailable):
		return http.StatusServiceUnavailable, "Logout is not available"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError 记录日志并写出统一的错误响应。
func respondError(c *gin.Context, op string, err error) {
	status, msg := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %v", op, err)
	} else {
		log.Warnw("request rejected", "op", op, "error", err)
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": msg,
	})
}

func respondInvalidBody(c *gin.Context, op string, err error) {
	log.Warnf("%s: failed to bind request: %v", op, err)
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": "Invalid request body",
	})
}

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"code":    status,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
