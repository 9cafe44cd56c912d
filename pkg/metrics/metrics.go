// Package metrics содержит Prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов HTTP, БД и доменных событий
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal   *prometheus.CounterVec
	DBQueryDuration  *prometheus.HistogramVec
	DBConnections    *prometheus.GaugeVec
	DBWaitCountTotal *prometheus.GaugeVec

	BookingsTotal        *prometheus.CounterVec
	ReconciliationsTotal *prometheus.CounterVec
	SlotSynthesisTotal   *prometheus.CounterVec
}

// New регистрирует коллекторы в стандартном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		DBWaitCountTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_bookings_total",
			Help: "Booking creation attempts by kind and result",
		}, []string{"service", "kind", "result"}),

		ReconciliationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_cache_reconciliations_total",
			Help: "Occupancy cache reconciliations by result",
		}, []string{"service", "result"}),

		SlotSynthesisTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_slot_synthesis_total",
			Help: "Slot keys synthesized for lots without a static slot map",
		}, []string{"service"}),
	}
}

// ServiceName возвращает имя сервиса для меток
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// IncBooking учитывает попытку создания бронирования. Безопасен для nil
func (m *Metrics) IncBooking(kind, result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(m.serviceName, kind, result).Inc()
}

// IncReconciliation учитывает результат синхронизации кэша. Безопасен для nil
func (m *Metrics) IncReconciliation(result string) {
	if m == nil {
		return
	}
	m.ReconciliationsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// IncSlotSynthesis учитывает генерацию слота в деградированном режиме. Безопасен для nil
func (m *Metrics) IncSlotSynthesis() {
	if m == nil {
		return
	}
	m.SlotSynthesisTotal.WithLabelValues(m.serviceName).Inc()
}
