// Package server 组装 gin 路由，并负责 HTTP 服务的启动与优雅停机。
package server

import (
	"context"
	"net/http"
	"time"

	"orgchart/internal/handler"
	"orgchart/internal/metrics"
	"orgchart/internal/middleware"
	"orgchart/internal/service"
	"orgchart/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 是路由需要的全部依赖。Gatherer / Metrics / HealthCheck 可以为 nil。
type Deps struct {
	OrgService  service.OrgService
	AuthService service.AuthService
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	HealthCheck func(ctx context.Context) error
}

// NewRouter 注册所有路由：
//   - 公开：/ping、/health、/metrics、组织树查询接口、登录与刷新
//   - 管理员（AuthMiddleware）：注销、修改薪资、增删成员
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/health", healthHandler(deps.HealthCheck))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	var recorder handler.MutationRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}
	orgHandler := handler.NewOrgHandler(deps.OrgService, recorder)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	adminAuth := middleware.AuthMiddleware(deps.AuthService)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", adminAuth, authHandler.Logout)

	org := api.Group("/org")
	org.GET("/summary", orgHandler.Summary)
	org.GET("/tree", orgHandler.Tree)
	org.GET("/nodes/:name", orgHandler.GetNode)
	org.GET("/nodes/:name/tree", orgHandler.Tree)
	org.GET("/nodes/:name/budget", orgHandler.Budget)
	org.GET("/nodes/:name/headcount", orgHandler.Headcount)
	org.GET("/nodes/:name/employees", orgHandler.Employees)
	org.GET("/nodes/:name/details", orgHandler.Details)

	admin := org.Group("", adminAuth)
	admin.PUT("/employees/:name/salary", orgHandler.SetSalary)
	admin.POST("/departments/:name/members", orgHandler.AddMember)
	admin.DELETE("/departments/:name/members/:member", orgHandler.RemoveMember)

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warnf("health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}
