// Package metrics 提供 HTTP 请求指标和组织树指标的 Prometheus 采集。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orgchart"

// Collector 记录 HTTP 请求计数、耗时和薪资变更次数。
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	orgMutationsTotal   *prometheus.CounterVec
}

// NewCollector 在 reg 上注册指标。测试时传入独立的 prometheus.NewRegistry()，避免重复注册。
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		orgMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "org_mutations_total",
				Help:      "Total number of org tree mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求。path 应该是路由模板（如 /api/v1/org/nodes/:name），
// 不能用原始 URL，否则节点名会让标签基数失控。
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordMutation 记录一次组织树变更，err 为 nil 记为 success。
func (c *Collector) RecordMutation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.orgMutationsTotal.WithLabelValues(operation, result).Inc()
}
