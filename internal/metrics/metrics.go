package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "report_bot"

var (
	ReportsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reports_created_total",
		Help:      "Total number of reports created",
	})

	ReportDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "report_decisions_total",
		Help:      "Total number of report decisions by outcome",
	}, []string{"decision"})

	Restrictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "restrictions_total",
		Help:      "Total number of restrictions applied by reason",
	}, []string{"reason"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed notification deliveries",
	})

	DeletedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "deleted_messages_total",
		Help:      "Total number of deleted messages",
	}, []string{"reason"})

	UpdateProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "update_processing_duration_seconds",
		Help:      "Duration of update processing",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type", "status"})

	PendingReports = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "pending_reports",
		Help:      "Number of reports awaiting an admin decision",
	})
)

func IncReportCreated() {
	ReportsCreated.Inc()
}

func IncReportDecision(decision string) {
	ReportDecisions.WithLabelValues(decision).Inc()
}

func IncRestriction(reason string) {
	Restrictions.WithLabelValues(reason).Inc()
}

func IncNotificationFailure() {
	NotificationFailures.Inc()
}

func IncDeletedMessages(reason string) {
	DeletedMessages.WithLabelValues(reason).Inc()
}

func SetPendingReports(count float64) {
	PendingReports.Set(count)
}

func ObserveUpdateProcessing(updateType string, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpdateProcessingDuration.WithLabelValues(updateType, status).Observe(duration)
}
