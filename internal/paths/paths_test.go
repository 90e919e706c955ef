package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePrefersPrimary(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.json")
	fallback := filepath.Join(dir, "fallback.json")
	for _, p := range []string{primary, fallback} {
		if err := os.WriteFile(p, []byte("{}"), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	got, err := Resolve(primary, fallback)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != primary {
		t.Fatalf("expected %q, got %q", primary, got)
	}
}

func TestResolveUsesFallback(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "fallback.json")
	if err := os.WriteFile(fallback, []byte("{}"), 0644); err != nil {
		t.Fatalf("write fallback: %v", err)
	}

	got, err := Resolve(filepath.Join(dir, "missing.json"), fallback)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != fallback {
		t.Fatalf("expected fallback %q, got %q", fallback, got)
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = Candidates{}.Resolve()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty candidates, got %v", err)
	}
}

func TestCandidatesAllSkipsEmptyAndDuplicate(t *testing.T) {
	c := Candidates{Primary: "/a", Fallback: "/a"}
	if got := c.All(); len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %v", got)
	}

	c = Candidates{Fallback: "/b"}
	if got := c.All(); len(got) != 1 || got[0] != "/b" {
		t.Fatalf("unexpected candidates: %v", got)
	}
}

func TestExisting(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.json")
	if err := os.WriteFile(present, []byte("{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := Candidates{Primary: filepath.Join(dir, "absent.json"), Fallback: present}
	got := c.Existing()
	if len(got) != 1 || got[0] != present {
		t.Fatalf("unexpected existing paths: %v", got)
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("THEMETOGGLE_TEST_DIR", "/opt/settings")

	if got := Expand("$THEMETOGGLE_TEST_DIR/a.json"); got != "/opt/settings/a.json" {
		t.Fatalf("unexpected env expansion: %q", got)
	}
	if got := Expand("~/x.json"); got != filepath.Join(HomeDir(), "x.json") {
		t.Fatalf("unexpected home expansion: %q", got)
	}
	if got := Expand("  "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
