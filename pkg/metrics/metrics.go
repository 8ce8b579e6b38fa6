// Package metrics holds the Prometheus collectors of the service.
// All recorder methods are safe to call on a nil *Metrics, so components can be
// wired without metrics when they are disabled in config.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	VisitRejections      *prometheus.CounterVec
	ReservationsReleased *prometheus.CounterVec
	SweepFailures        *prometheus.CounterVec
}

// New регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует коллекторы в указанном registerer (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database operations",
		}, []string{"service", "operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		VisitRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visit_rejections_total",
			Help: "Visit booking attempts rejected by the validator, by kind",
		}, []string{"service", "kind"}),
		ReservationsReleased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_released_total",
			Help: "Reservations deactivated by the expiry sweep",
		}, []string{"service"}),
		SweepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_sweep_failures_total",
			Help: "Reservations the expiry sweep failed to release",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.VisitRejections,
		m.ReservationsReleased,
		m.SweepFailures,
	)

	return m
}

// ObserveHTTP записывает результат HTTP запроса
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность операции с БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
}

// IncVisitRejected увеличивает счётчик отказов валидатора визитов
func (m *Metrics) IncVisitRejected(kind string) {
	if m == nil {
		return
	}
	m.VisitRejections.WithLabelValues(m.serviceName, kind).Inc()
}

// AddReservationsReleased увеличивает счётчик освобождённых резерваций
func (m *Metrics) AddReservationsReleased(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ReservationsReleased.WithLabelValues(m.serviceName).Add(float64(n))
}

// IncSweepFailure увеличивает счётчик ошибок sweep
func (m *Metrics) IncSweepFailure() {
	if m == nil {
		return
	}
	m.SweepFailures.WithLabelValues(m.serviceName).Inc()
}
