// Package metrics 使用prometheus记录计数服务的请求指标
package metrics

import (
	"net/http"
	"time"

	"github.com/d0ngw/counterd/counter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "counterd"

// Collector 实现counter.Observer,每个Collector使用独立的Registry
type Collector struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector 创建Collector,store不为nil时注册计数器个数的gauge
func NewCollector(store *counter.Store) *Collector {
	p := &Collector{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"action", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request handling latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"action"},
		),
	}
	p.registry.MustRegister(p.requestTotal, p.requestDuration)
	if store != nil {
		p.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "counters",
				Help:      "Number of counters tracked",
			},
			func() float64 { return float64(store.Len()) },
		))
	}
	return p
}

// ObserveRequest implements counter.Observer
func (p *Collector) ObserveRequest(action string, status counter.Status, elapsed time.Duration) {
	p.requestTotal.WithLabelValues(action, string(status)).Inc()
	p.requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// Handler 返回暴露指标的http.Handler
func (p *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
