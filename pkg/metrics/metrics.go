package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewMetrics 注册到默认 registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// Metrics 指标管理器
type Metrics struct {
	// HTTP请求指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 业务指标
	checkInsTotal       prometheus.Counter
	chatMessagesTotal   *prometheus.CounterVec
	riskReportsTotal    *prometheus.CounterVec
	emergencyTotal      *prometheus.CounterVec
	classifierFallbacks prometheus.Counter
	alertLevelTotal     *prometheus.CounterVec
}

// NewMetricsWith 创建指标管理器并注册到给定 registry（测试用独立 registry）
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		checkInsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Total number of submitted check-ins",
		}),
		chatMessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of classified chat messages",
		}, []string{"label"}),
		riskReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_reports_total",
			Help: "Total number of emitted risk reports",
		}, []string{"severity"}),
		emergencyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emergency_alerts_total",
			Help: "Total number of emergency alerts",
		}, []string{"kind"}),
		classifierFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "classifier_fallbacks_total",
			Help: "Chat messages persisted with the fallback Low label after a classifier failure",
		}),
		alertLevelTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_alert_level_total",
			Help: "Alert level outcomes per evaluated chat message",
		}, []string{"level"}),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func (m *Metrics) IncCheckIn()                 { m.checkInsTotal.Inc() }
func (m *Metrics) IncChatMessage(label string) { m.chatMessagesTotal.WithLabelValues(label).Inc() }
func (m *Metrics) IncRiskReport(severity string) {
	m.riskReportsTotal.WithLabelValues(severity).Inc()
}
func (m *Metrics) IncEmergency(kind string)    { m.emergencyTotal.WithLabelValues(kind).Inc() }
func (m *Metrics) IncClassifierFallback()      { m.classifierFallbacks.Inc() }
func (m *Metrics) IncAlertLevel(level string)  { m.alertLevelTotal.WithLabelValues(level).Inc() }
