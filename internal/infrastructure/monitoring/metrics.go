package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type ServiceMetrics struct {
	OperationDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomerMutations   *prometheus.CounterVec
	ValidationRejected  *prometheus.CounterVec
	EventPublishFailure prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Service = ServiceMetrics{
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_operation_duration_seconds",
				Help:    "Histogram of customer service operation latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomerMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_customer_mutations_total",
				Help: "Total number of customers created, updated or deleted.",
			},
			[]string{"action"},
		),
		ValidationRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_validation_rejected_total",
				Help: "Total number of operations rejected by validation.",
			},
			[]string{"intent"},
		),
		EventPublishFailure: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_event_publish_failures_total",
				Help: "Total number of customer events that could not be published.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordServiceOperation(operation, status string, duration time.Duration) {
	Service.OperationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func RecordCustomerMutation(action string) {
	Business.CustomerMutations.WithLabelValues(action).Inc()
}

func RecordValidationRejected(intent string) {
	Business.ValidationRejected.WithLabelValues(intent).Inc()
}

func RecordEventPublishFailure() {
	Business.EventPublishFailure.Inc()
}
