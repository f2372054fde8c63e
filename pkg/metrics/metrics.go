package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	registry prometheus.Registerer

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SlotGridsComputed    prometheus.Counter
	TechnicianSelections *prometheus.CounterVec
	TaskCountAdjustments *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном регистре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SlotGridsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_grids_computed_total",
			Help:        "Number of computed daily slot grids",
			ConstLabels: constLabels,
		}),
		TechnicianSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "technician_selections_total",
			Help:        "Least-busy technician selections by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		TaskCountAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "technician_task_count_adjustments_total",
			Help:        "Active task counter adjustments by direction and result",
			ConstLabels: constLabels,
		}, []string{"direction", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SlotGridsComputed,
		m.TechnicianSelections,
		m.TaskCountAdjustments,
	)

	return m
}

// RegisterDBStats подключает сбор статистики пула соединений
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) {
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveSlotGrid учитывает посчитанную сетку слотов
func (m *Metrics) ObserveSlotGrid() {
	m.SlotGridsComputed.Inc()
}

// ObserveSelection outcome: "assigned", "unassigned" или "explicit"
func (m *Metrics) ObserveSelection(outcome string) {
	m.TechnicianSelections.WithLabelValues(outcome).Inc()
}

// ObserveAdjustment direction: "inc"/"dec", result: "applied"/"skipped"
func (m *Metrics) ObserveAdjustment(direction, result string) {
	m.TaskCountAdjustments.WithLabelValues(direction, result).Inc()
}

// Nop заглушка, когда метрики выключены в конфиге
type Nop struct{}

func (Nop) ObserveSlotGrid()                 {}
func (Nop) ObserveSelection(string)          {}
func (Nop) ObserveAdjustment(string, string) {}
