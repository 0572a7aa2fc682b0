// Package sanity checks that the runtime environment is minimally functional
// before the training and tuning jobs are started on it.
package sanity

import (
	"debug/buildinfo"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
)

// Check is a single zero-argument verification.
type Check interface {
	Name() string
	Run() error
}

// ArithmeticCheck verifies that 1 + 1 == 2.
type ArithmeticCheck struct {
	// Add computes the sum. Nil means the native + operator.
	Add func(a, b int) int
}

func NewArithmeticCheck() *ArithmeticCheck {
	return &ArithmeticCheck{}
}

func (c *ArithmeticCheck) Name() string { return "arithmetic" }

func (c *ArithmeticCheck) Run() error {
	add := c.Add
	if add == nil {
		add = func(a, b int) int { return a + b }
	}

	if got := add(1, 1); got != 2 {
		return errors.Wrapf(ErrAssertion, "1 + 1 evaluated to %d, expected 2", got)
	}
	return nil
}

// Dependency names a Go module that must be linked into the binary.
type Dependency struct {
	Name   string `json:"name"`
	Module string `json:"module"`
}

// Probe is the outcome of looking up one dependency.
type Probe struct {
	Dependency
	Loaded  bool   `json:"loaded"`
	Version string `json:"version,omitempty"`
}

// Passed reports whether the dependency is linked and has a version.
func (p Probe) Passed() bool {
	return p.Loaded && p.Version != ""
}

// BuildInfoSource returns the module information embedded in the binary.
type BuildInfoSource func() (*debug.BuildInfo, bool)

// FileBuildInfo reads the build info of the Go binary at path instead of the
// running one, so a job binary can be checked before it is started.
func FileBuildInfo(path string) BuildInfoSource {
	return func() (*debug.BuildInfo, bool) {
		info, err := buildinfo.ReadFile(path)
		if err != nil {
			return nil, false
		}
		return info, true
	}
}

// DependencyCheck verifies that every dependency is linked and exposes a
// non-empty version.
type DependencyCheck struct {
	deps   []Dependency
	source BuildInfoSource
	probes []Probe
}

// NewDependencyCheck builds a check over deps. A nil source reads the running
// binary's build info.
func NewDependencyCheck(deps []Dependency, source BuildInfoSource) *DependencyCheck {
	if source == nil {
		source = debug.ReadBuildInfo
	}
	return &DependencyCheck{deps: deps, source: source}
}

func (c *DependencyCheck) Name() string { return "dependencies" }

// Probes returns the per-dependency results of the last Run.
func (c *DependencyCheck) Probes() []Probe {
	out := make([]Probe, len(c.probes))
	copy(out, c.probes)
	return out
}

func (c *DependencyCheck) Run() error {
	info, ok := c.source()

	probes := make([]Probe, 0, len(c.deps))
	var missing, unversioned []string
	for _, dep := range c.deps {
		p := Probe{Dependency: dep}
		if ok && info != nil {
			p.Version, p.Loaded = lookup(info, dep.Module)
		}
		probes = append(probes, p)

		switch {
		case !p.Loaded:
			missing = append(missing, dep.Name)
		case p.Version == "":
			unversioned = append(unversioned, dep.Name)
		}
	}
	c.probes = probes

	if !ok || info == nil {
		return errors.Wrap(ErrDependencyLoad, "build info is not available in this binary")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrDependencyLoad, "not linked: %s", strings.Join(missing, ", "))
	}
	if len(unversioned) > 0 {
		return errors.Wrapf(ErrAssertion, "empty version: %s", strings.Join(unversioned, ", "))
	}
	return nil
}

func lookup(info *debug.BuildInfo, module string) (string, bool) {
	if info.Main.Path == module {
		return info.Main.Version, true
	}
	for _, m := range info.Deps {
		if m == nil || m.Path != module {
			continue
		}
		if m.Replace != nil && m.Replace.Version != "" {
			return m.Replace.Version, true
		}
		return m.Version, true
	}
	return "", false
}
