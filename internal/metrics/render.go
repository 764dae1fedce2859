package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartfolio",
			Subsystem: "render",
			Name:      "pdf_duration_seconds",
			Help:      "PDF 渲染耗时分布（秒）。",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	renderFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartfolio",
			Subsystem: "render",
			Name:      "pdf_failed_total",
			Help:      "PDF 渲染失败总数。",
		},
		[]string{"provider"},
	)
)

// ObserveRender 记录一次 PDF 渲染的耗时与结果。
func ObserveRender(provider string, elapsed time.Duration, err error) {
	renderDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if err != nil {
		renderFailedTotal.WithLabelValues(provider).Inc()
	}
}
