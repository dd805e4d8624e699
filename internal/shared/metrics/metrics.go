package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kingdom",
			Subsystem: "actor",
			Name:      "commands_total",
			Help:      "Commands executed by the kingdom actor.",
		},
		[]string{"op", "code"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kingdom",
			Subsystem: "actor",
			Name:      "command_duration_seconds",
			Help:      "Command execution time inside the kingdom actor.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kingdom",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Committed notifications by kind.",
		},
		[]string{"kind"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kingdom",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kingdom",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	snapshotSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kingdom",
			Subsystem: "dc",
			Name:      "snapshot_saves_total",
			Help:      "Snapshot writes by result.",
		},
		[]string{"success"},
	)
	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kingdom",
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Connected event stream clients.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commands, commandDuration, events, httpRequests, httpDuration, snapshotSaves, wsClients)
	})
}

// RecordCommand 记录一次命令执行；code 为空表示成功。
func RecordCommand(op, code string, duration time.Duration) {
	RegisterMetrics()
	if code == "" {
		code = "OK"
	}
	commands.WithLabelValues(op, code).Inc()
	commandDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func RecordEvent(kind string) {
	RegisterMetrics()
	events.WithLabelValues(kind).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordSnapshotSave(success bool) {
	RegisterMetrics()
	snapshotSaves.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func SetWSClients(n int) {
	RegisterMetrics()
	wsClients.Set(float64(n))
}
