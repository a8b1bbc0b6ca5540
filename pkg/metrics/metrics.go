// Package metrics Prometheus指标
//
// 指标在包初始化时注册到默认Registry，
// 由 /metrics 端点（promhttp.Handler）暴露。
// 命名约定：Counter 以 _total 结尾，Histogram 以单位结尾
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var initOnce sync.Once

var (
	// HTTP

	HTTPRequestsTotal      *prometheus.CounterVec   // method, path, status
	HTTPRequestDuration    *prometheus.HistogramVec // method, path
	HTTPRequestsInProgress prometheus.Gauge

	// 目录写入

	// CatalogWritesTotal entity(category/atribute/product...), op(create/update/delete), result(success/failure)
	CatalogWritesTotal *prometheus.CounterVec
	// CatalogWriteDuration 商品聚合写入耗时，op(create/update)
	CatalogWriteDuration *prometheus.HistogramVec
	// VariantsSoftDeletedTotal 规格调和中被软删除的规格数
	VariantsSoftDeletedTotal prometheus.Counter

	// 缓存

	CacheRequestsTotal *prometheus.CounterVec // cache, result(hit/miss/error)

	// 熔断器

	CircuitBreakerState    *prometheus.GaugeVec   // name；0=CLOSED 1=OPEN 2=HALF_OPEN
	CircuitBreakerRequests *prometheus.CounterVec // name, result(success/failure/rejected)

	// 消息队列

	MessagesPublishedTotal    *prometheus.CounterVec // routing_key, result
	MessagesConsumedTotal     *prometheus.CounterVec // queue, result
	MessageProcessingDuration prometheus.Histogram
)

func init() {
	InitMetrics()
}

// InitMetrics 注册全部指标，重复调用无副作用
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_writes_total",
			Help: "目录写操作总数",
		},
		[]string{"entity", "op", "result"},
	)

	CatalogWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_product_write_duration_seconds",
			Help:    "商品聚合写入耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"op"},
	)

	VariantsSoftDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_variants_soft_deleted_total",
			Help: "被软删除的商品规格总数",
		},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存读取总数",
		},
		[]string{"cache", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// Result 把错误转换为result标签
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordWrite 记录一次目录写操作
func RecordWrite(entity, op string, err error) {
	IncCounterVec(CatalogWritesTotal, map[string]string{
		"entity": entity,
		"op":     op,
		"result": Result(err),
	})
}

// Since 记录从start开始的耗时
func Since(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

func AddCounter(counter prometheus.Counter, n int) {
	if n > 0 {
		counter.Add(float64(n))
	}
}

func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
