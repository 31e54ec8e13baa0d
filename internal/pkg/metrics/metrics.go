// Package metrics holds the Prometheus collectors of the prep center engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcenter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prepcenter_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ShipmentTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcenter_shipment_transitions_total",
			Help: "Total number of committed shipment status transitions",
		},
		[]string{"from", "to"},
	)

	TasksOpenedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcenter_tasks_opened_total",
			Help: "Total number of tasks opened by the scheduler",
		},
		[]string{"stage"},
	)

	CapacityRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prepcenter_capacity_rejections_total",
			Help: "Total number of task assignments rejected for station capacity",
		},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prepcenter_orders_created_total",
			Help: "Total number of orders created at the billable milestone",
		},
	)

	ActivityWriteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prepcenter_activity_write_failures_total",
			Help: "Total number of audit entries that could not be written",
		},
	)

	AuditRelayPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prepcenter_audit_relay_published_total",
			Help: "Total number of audit entries published by the relay",
		},
	)
)

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ShipmentTransitionsTotal,
		TasksOpenedTotal,
		CapacityRejectionsTotal,
		OrdersCreatedTotal,
		ActivityWriteFailuresTotal,
		AuditRelayPublishedTotal,
	)
}
