package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReferralTreeBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_tree_builds_total",
			Help: "Referral tree builds by outcome",
		},
		[]string{"outcome"},
	)

	ReferralTreeNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "referral_tree_nodes",
			Help:    "Number of nodes in built referral trees",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ReferralTreeAnomalies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_tree_anomalies_total",
			Help: "Referral codes reached more than once during a tree build",
		},
	)

	MemberEnrollments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_enrollments_total",
			Help: "Member enrollments by tier",
		},
		[]string{"member_type"},
	)
)
