// Package metrics defines and registers the portal's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authentication ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "unknown_user", "bad_password", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Jobs ─────────────────────────────────────────────────────────────────────

// JobMutationsTotal counts successful job writes.
// Label:
//   - action: "create", "update", "delete"
var JobMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_mutations_total",
		Help:      "Total number of job postings created, updated, or deleted.",
	},
	[]string{"action"},
)

// ── Audit ────────────────────────────────────────────────────────────────────

// AuditWritesTotal counts audit record writes.
// Label:
//   - result: "ok" or "failed"
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of activity log writes, by result.",
	},
	[]string{"result"},
)

// ── Notifications ────────────────────────────────────────────────────────────

// NotificationsTotal counts outbound e-mails.
// Labels:
//   - kind: "help_ticket", "contact", "application"
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of e-mail notifications, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationDuration measures SMTP delivery time.
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of e-mail delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Uploads ──────────────────────────────────────────────────────────────────

// UploadedBytesTotal counts bytes written to image storage.
var UploadedBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Total number of bytes stored from image uploads.",
	},
)
