package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Результаты действий формы.
const (
	ResultOK    = "ok"
	ResultFail  = "fail"
	ResultError = "error"
)

// Metrics: счётчики HTTP-запросов и действий пользователей.
type Metrics struct {
	Registry *prometheus.Registry

	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	actionTotal    *prometheus.CounterVec
	usersTotal     prometheus.Gauge
}

// New создаёт собственный реестр, чтобы несколько роутеров (например, в тестах) не конфликтовали.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userprefs",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "userprefs",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		actionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userprefs",
			Subsystem: "users",
			Name:      "actions_total",
			Help:      "Count of register/login/logout actions by result",
		}, []string{"action", "result"}),
		usersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "userprefs",
			Subsystem: "users",
			Name:      "registered",
			Help:      "Number of registered users seen on the last loaded store",
		}),
	}

	m.Registry.MustRegister(
		m.requestTotal,
		m.requestLatency,
		m.actionTotal,
		m.usersTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestLatency.With(labels).Observe(duration.Seconds())
}

// ObserveAction учитывает действие формы (register, login, logout) и его результат.
func (m *Metrics) ObserveAction(action, result string) {
	if m == nil {
		return
	}
	m.actionTotal.With(prometheus.Labels{"action": action, "result": result}).Inc()
}

// SetUsers выставляет число пользователей в хранилище.
func (m *Metrics) SetUsers(n int) {
	if m == nil {
		return
	}
	m.usersTotal.Set(float64(n))
}
