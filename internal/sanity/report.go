package sanity

import (
	"time"

	"github.com/google/uuid"
)

// Result is the verdict of one check.
type Result struct {
	Check    string        `json:"check"`
	Passed   bool          `json:"passed"`
	Kind     string        `json:"kind,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Probes   []Probe       `json:"probes,omitempty"`
}

// Report collects the results of a single run.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Results     []Result  `json:"results"`
}

// Passed is true when every check passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// ExitCode is 0 when all checks passed, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 1
}

// Failed returns the results that did not pass.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Runner executes checks independently of each other.
type Runner struct {
	now func() time.Time
}

func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// Run executes every check once. A failing check does not stop the others.
func (r *Runner) Run(checks ...Check) *Report {
	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: r.now().UTC(),
		Results:     make([]Result, 0, len(checks)),
	}

	for _, c := range checks {
		start := r.now()
		err := c.Run()

		res := Result{
			Check:    c.Name(),
			Passed:   err == nil,
			Kind:     KindOf(err),
			Duration: r.now().Sub(start),
		}
		if err != nil {
			res.Error = err.Error()
		}
		if dc, ok := c.(*DependencyCheck); ok {
			res.Probes = dc.Probes()
		}
		report.Results = append(report.Results, res)
	}

	return report
}
