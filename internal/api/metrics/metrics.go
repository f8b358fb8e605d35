// Package metrics defines the custom Prometheus metrics for the attendance
// API. It is the single source of truth for metric names, labels, and help
// strings. HTTP-level request metrics come from the echoprometheus middleware
// wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AttendanceCreatedTotal counts newly recorded attendance entries.
// Label:
//   - status: "Present", "Absent", "On Leave", or "Remote"
var AttendanceCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of attendance records created, by status.",
	},
	[]string{"status"},
)
