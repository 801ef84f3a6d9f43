// internal/metrics/prometheus.go
package metrics

import (
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
    WorkerInvocationDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "netwarden_worker_invocation_duration_seconds",
            Help:    "Time spent running one-shot worker invocations",
            Buckets: prometheus.DefBuckets,
        },
        []string{"worker", "status"},
    )

    WorkerInvocationsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "netwarden_worker_invocations_total",
            Help: "Total number of one-shot worker invocations",
        },
        []string{"worker", "status"},
    )

    WorkerLaunchesTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "netwarden_worker_launches_total",
            Help: "Total number of background worker launches",
        },
        []string{"worker", "status"},
    )

    MonitoringRunning = promauto.NewGauge(
        prometheus.GaugeOpts{
            Name: "netwarden_monitoring_running",
            Help: "Whether the monitoring session is active (0 or 1)",
        },
    )

    TrackedProcesses = promauto.NewGauge(
        prometheus.GaugeOpts{
            Name: "netwarden_tracked_processes",
            Help: "Number of live background worker processes",
        },
    )

    WebSocketConnections = promauto.NewGauge(
        prometheus.GaugeOpts{
            Name: "netwarden_websocket_connections_active",
            Help: "Number of active WebSocket connections",
        },
    )
)

// RecordInvocation tracks one synchronous worker run.
func RecordInvocation(worker string, err error, duration time.Duration) {
    status := "success"
    if err != nil {
        status = "error"
    }
    WorkerInvocationsTotal.WithLabelValues(worker, status).Inc()
    WorkerInvocationDuration.WithLabelValues(worker, status).Observe(duration.Seconds())
}

// RecordLaunch tracks one background worker launch attempt.
func RecordLaunch(worker string, err error) {
    status := "success"
    if err != nil {
        status = "error"
    }
    WorkerLaunchesTotal.WithLabelValues(worker, status).Inc()
}

// SetMonitoring mirrors the session state into the gauges.
func SetMonitoring(running bool, processes int) {
    if running {
        MonitoringRunning.Set(1)
    } else {
        MonitoringRunning.Set(0)
    }
    TrackedProcesses.Set(float64(processes))
}
