package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 业务计数器，由 /metrics 端点暴露
var (
	// UnauthenticatedCalls 认证失败的请求数
	UnauthenticatedCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unauthenticated_calls_total",
		Help: "Number of rejected API calls with a missing or invalid api key.",
	}, []string{"uri"})

	// SavingLinkImpossible 生成唯一 ID 重试耗尽的次数
	SavingLinkImpossible = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saving_link_impossible_no_unique_id_total",
		Help: "Number of link creations abandoned after exhausting unique id retries.",
	})

	// StatisticRecordFailures 访问统计写入失败次数（重定向本身不受影响）
	StatisticRecordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statistic_record_failures_total",
		Help: "Number of link visit statistics that could not be persisted.",
	})

	// RequestDuration HTTP 请求耗时分布
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)
