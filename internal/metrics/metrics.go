package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

var (
	// Counter for check executions by outcome
	CheckRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "envcheck_check_runs_total",
		Help: "Total number of check executions",
	}, []string{"check", "outcome"})

	// Gauge for the latest verdict of each check (1 = pass)
	CheckPassed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "envcheck_check_passed",
		Help: "Whether the most recent run of a check passed",
	}, []string{"check"})

	// Info gauge for linked dependency versions
	DependencyVersion = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "envcheck_dependency_version_info",
		Help: "Version of each loaded dependency, value is always 1",
	}, []string{"dependency", "version"})

	ReportsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "envcheck_reports_published_total",
		Help: "Total number of check reports published to Kafka",
	})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "envcheck_rate_limited_requests_total",
		Help: "Total number of /checks requests rejected by the rate limiter",
	})
)

// Register metrics with Prometheus
func Init() {
	prometheus.MustRegister(CheckRuns)
	prometheus.MustRegister(CheckPassed)
	prometheus.MustRegister(DependencyVersion)
	prometheus.MustRegister(ReportsPublished)
	prometheus.MustRegister(RateLimited)
}

// Observe records the outcome of every check in report.
func Observe(report *sanity.Report) {
	for _, res := range report.Results {
		outcome, passed := "fail", 0.0
		if res.Passed {
			outcome, passed = "pass", 1.0
		}
		CheckRuns.WithLabelValues(res.Check, outcome).Inc()
		CheckPassed.WithLabelValues(res.Check).Set(passed)

		for _, p := range res.Probes {
			if p.Loaded {
				DependencyVersion.WithLabelValues(p.Name, p.Version).Set(1)
			}
		}
	}
}
