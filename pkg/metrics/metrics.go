package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Signups counts signup submissions by persistence outcome (created|failed).
	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verigate_signups_total",
			Help: "Total number of signup submissions",
		},
		[]string{"result"},
	)

	// Verifications counts token redemptions by outcome (verified|not_found|already_verified|error).
	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verigate_verifications_total",
			Help: "Total number of verification token redemptions",
		},
		[]string{"result"},
	)

	// Logins counts login attempts by outcome (success|bad_credential|not_verified|not_found|error).
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verigate_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// VerificationEmails counts dispatched verification emails by outcome (sent|failed).
	VerificationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verigate_verification_emails_total",
			Help: "Total number of verification emails dispatched",
		},
		[]string{"result"},
	)

	// PendingAccounts tracks the number of unverified accounts in the store.
	PendingAccounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "verigate_pending_accounts",
			Help: "Number of accounts awaiting email verification",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "verigate_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
