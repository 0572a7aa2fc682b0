package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

func TestInitRegistersMetrics(t *testing.T) {
	cleanupMetrics()

	Init()

	// Vectors are only exported once a label set exists.
	CheckRuns.WithLabelValues("test", "pass").Inc()
	CheckPassed.WithLabelValues("test").Set(1)
	DependencyVersion.WithLabelValues("test", "v0.0.1").Set(1)

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	expected := map[string]bool{
		"envcheck_check_runs_total":            false,
		"envcheck_check_passed":                false,
		"envcheck_dependency_version_info":     false,
		"envcheck_reports_published_total":     false,
		"envcheck_rate_limited_requests_total": false,
	}

	for _, mf := range mfs {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Fatalf("expected metric %s to be registered", name)
		}
	}

	cleanupMetrics()
}

func TestObserve(t *testing.T) {
	CheckRuns.Reset()
	CheckPassed.Reset()
	DependencyVersion.Reset()

	Observe(&sanity.Report{Results: []sanity.Result{
		{Check: "arithmetic", Passed: true},
		{
			Check:  "dependencies",
			Passed: false,
			Kind:   sanity.KindDependencyLoad,
			Probes: []sanity.Probe{
				{Dependency: sanity.Dependency{Name: "gonum"}, Loaded: true, Version: "v0.15.1"},
				{Dependency: sanity.Dependency{Name: "goptuna"}},
			},
		},
	}})

	if got := testutil.ToFloat64(CheckRuns.WithLabelValues("arithmetic", "pass")); got != 1 {
		t.Fatalf("expected 1 arithmetic pass, got %v", got)
	}
	if got := testutil.ToFloat64(CheckRuns.WithLabelValues("dependencies", "fail")); got != 1 {
		t.Fatalf("expected 1 dependencies fail, got %v", got)
	}
	if got := testutil.ToFloat64(CheckPassed.WithLabelValues("dependencies")); got != 0 {
		t.Fatalf("expected dependencies gauge 0, got %v", got)
	}
	if got := testutil.CollectAndCount(DependencyVersion); got != 1 {
		t.Fatalf("expected 1 dependency version series, got %d", got)
	}
}

func cleanupMetrics() {
	prometheus.Unregister(CheckRuns)
	prometheus.Unregister(CheckPassed)
	prometheus.Unregister(DependencyVersion)
	prometheus.Unregister(ReportsPublished)
	prometheus.Unregister(RateLimited)
}
