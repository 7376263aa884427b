package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"orgchart/pkg/log"

	"github.com/gin-gonic/gin"
)

// 请求体只在 debug 级别记录，且最多记录这么多字节。
const maxLoggedBody = 2048

// BodyLogWriter 用于记录响应的 body
type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 同时写入 gin.ResponseWriter 和内部的 buffer
func (w *BodyLogWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		w.body.Write(b[:min(len(b), room)])
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 记录每个请求的耗时、状态码、方法和路径。
// 请求体和响应体只在 debug 级别输出；认证接口的 body 含密码和令牌，永远不记录。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path
		withBody := !strings.HasPrefix(path, "/api/v1/auth/")

		var requestBody []byte
		if withBody && c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// 放回 Body，后续处理函数才能正常读取
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &BodyLogWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		if withBody {
			c.Writer = blw
		}

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		log.Infow("HTTP request",
			"latency", latency,
			"status", statusCode,
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		)
		if withBody {
			if len(requestBody) > maxLoggedBody {
				requestBody = requestBody[:maxLoggedBody]
			}
			log.Debugw("HTTP body",
				"path", path,
				"request_body", string(requestBody),
				"response_body", blw.body.String(),
			)
		}
	}
}
