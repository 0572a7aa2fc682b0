package sanity

import (
	"github.com/pkg/errors"
)

// Failure kinds reported for a failed check.
const (
	KindAssertion      = "assertion"
	KindDependencyLoad = "dependency_load"
	KindUnknown        = "unknown"
)

var (
	// ErrAssertion means a computed value did not match the expected value.
	ErrAssertion = errors.New("assertion failed")

	// ErrDependencyLoad means a named dependency is not available in the binary.
	ErrDependencyLoad = errors.New("dependency load failed")
)

// KindOf classifies err. A nil error has no kind.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDependencyLoad):
		return KindDependencyLoad
	case errors.Is(err, ErrAssertion):
		return KindAssertion
	default:
		return KindUnknown
	}
}
