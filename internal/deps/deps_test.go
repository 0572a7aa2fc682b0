package deps

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

func TestDefault(t *testing.T) {
	got := Default()
	if len(got) != 3 {
		t.Fatalf("expected 3 default dependencies, got %d", len(got))
	}

	names := []string{"gota", "gonum", "goptuna"}
	for i, name := range names {
		if got[i].Name != name {
			t.Fatalf("expected dependency %d to be %q, got %q", i, name, got[i].Name)
		}
		if got[i].Module == "" {
			t.Fatalf("expected module path for %q", name)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(" frames=github.com/go-gota/gota , gonum.org/v1/gonum,,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(got))
	}
	if got[0].Name != "frames" || got[0].Module != "github.com/go-gota/gota" {
		t.Fatalf("unexpected first dependency: %+v", got[0])
	}
	if got[1].Name != "gonum" || got[1].Module != "gonum.org/v1/gonum" {
		t.Fatalf("unexpected second dependency: %+v", got[1])
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no dependencies, got %d", len(got))
	}
}

func TestParseMissingModule(t *testing.T) {
	if _, err := Parse("gota="); err == nil {
		t.Fatal("expected error for empty module path")
	}
}

// TestDependencies builds the envcheck binary, which links the default set
// through this package, and checks its embedded module list. Test binaries
// record no dependency modules, so the running binary cannot be used.
func TestDependencies(t *testing.T) {
	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not available")
	}

	bin := filepath.Join(t.TempDir(), "envcheck")
	build := exec.Command(goTool, "build", "-o", bin, "../../cmd/envcheck")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build envcheck: %v\n%s", err, out)
	}

	check := sanity.NewDependencyCheck(Default(), sanity.FileBuildInfo(bin))
	if err := check.Run(); err != nil {
		t.Fatalf("dependency check failed: %v", err)
	}
	for _, p := range check.Probes() {
		if p.Version == "" {
			t.Fatalf("expected version for %s", p.Name)
		}
		t.Logf("%s %s", p.Module, p.Version)
	}

	missing := sanity.NewDependencyCheck([]sanity.Dependency{{Name: "ghost", Module: "example.com/not/linked"}}, sanity.FileBuildInfo(bin))
	if err := missing.Run(); !errors.Is(err, sanity.ErrDependencyLoad) {
		t.Fatalf("expected ErrDependencyLoad for unlinked module, got %v", err)
	}
}

func TestFileBuildInfoUnreadable(t *testing.T) {
	source := sanity.FileBuildInfo(filepath.Join(t.TempDir(), "missing"))

	check := sanity.NewDependencyCheck(Default(), source)
	if err := check.Run(); !errors.Is(err, sanity.ErrDependencyLoad) {
		t.Fatalf("expected ErrDependencyLoad, got %v", err)
	}
}
