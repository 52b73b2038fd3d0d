// Package metrics 提供 Prometheus helper，覆盖定价服务的常用指标
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// 定价调用计数，按模型与结果区分
	PricingsTotal *prometheus.CounterVec
	// 定价耗时
	PricingDuration *prometheus.HistogramVec
	// 收敛扫描中被定价的网格点数
	SweepPointsTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		PricingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "pricings_total",
			Help:      "Total pricing calls by model and status.",
		}, []string{"model", "status"}),
		PricingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "pricing_duration_seconds",
			Help:      "Pricing call duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"model"}),
		SweepPointsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "sweep_points_total",
			Help:      "Lattice resolutions priced during convergence sweeps.",
		}),
	}
	registry.MustRegister(m.PricingsTotal, m.PricingDuration, m.SweepPointsTotal)
	return m
}

// ObservePricing 记录一次定价调用
func (m *Metrics) ObservePricing(model string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PricingsTotal.WithLabelValues(model, status).Inc()
	m.PricingDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
}

// Handler 暴露 /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
