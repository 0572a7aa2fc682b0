// Package deps links the libraries the training environment depends on and
// names them for the dependency check.
package deps

import (
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"

	// Linked so that the dependency check finds them in the build info.
	_ "github.com/c-bata/goptuna"
	_ "github.com/go-gota/gota/dataframe"
	_ "gonum.org/v1/gonum/mat"
)

// Default is the dependency set checked when no override is configured:
// tabular data, numerics, and hyperparameter optimisation.
func Default() []sanity.Dependency {
	return []sanity.Dependency{
		{Name: "gota", Module: "github.com/go-gota/gota"},
		{Name: "gonum", Module: "gonum.org/v1/gonum"},
		{Name: "goptuna", Module: "github.com/c-bata/goptuna"},
	}
}

// Parse reads a comma separated list of name=module entries. A bare module
// path is named after its last element.
func Parse(list string) ([]sanity.Dependency, error) {
	var out []sanity.Dependency
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, module, found := strings.Cut(entry, "=")
		if !found {
			module = name
			name = path.Base(module)
		}
		name = strings.TrimSpace(name)
		module = strings.TrimSpace(module)

		if module == "" {
			return nil, errors.Errorf("dependency %q has no module path", entry)
		}
		if name == "" {
			name = path.Base(module)
		}
		out = append(out, sanity.Dependency{Name: name, Module: module})
	}
	return out, nil
}
