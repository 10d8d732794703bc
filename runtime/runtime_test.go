package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Duy-Thanh/DMKernel/interp"
	"github.com/Duy-Thanh/DMKernel/value"
)

func TestEvaluateString(t *testing.T) {
	ev := New()
	v, err := EvaluateString(ev, "let x = 40; x + 2;")
	if err != nil {
		t.Fatalf("EvaluateString returned error: %v", err)
	}
	if got, want := value.Display(v), "42.000000"; got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
}

func TestEvaluateReader(t *testing.T) {
	ev := New()
	v, err := EvaluateReader(ev, strings.NewReader("1 + 1;"))
	if err != nil {
		t.Fatalf("EvaluateReader returned error: %v", err)
	}
	if got, want := v.Number(), 2.0; got != want {
		t.Errorf("result = %v, want %v", got, want)
	}
}

func TestEvaluateFileSkipsShebang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	src := "#!/usr/bin/env interpreter\nlet x = 1;\nx + 1;\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	v, err := EvaluateFile(New(), path)
	if err != nil {
		t.Fatalf("EvaluateFile returned error: %v", err)
	}
	if got, want := v.Number(), 2.0; got != want {
		t.Errorf("result = %v, want %v", got, want)
	}
}

func TestEvaluateFileMissingIsFileIOError(t *testing.T) {
	_, err := EvaluateFile(New(), filepath.Join(t.TempDir(), "nope.txt"))
	rerr, ok := err.(*interp.Error)
	if !ok || rerr.Kind != interp.FileIO {
		t.Fatalf("expected FileIO error, got %v (%T)", err, err)
	}
}

func TestEvaluatorStatePersistsAcrossCalls(t *testing.T) {
	ev := New()
	if _, err := EvaluateString(ev, "let counter = 1;"); err != nil {
		t.Fatalf("first EvaluateString returned error: %v", err)
	}
	v, err := EvaluateString(ev, "counter = counter + 1; counter;")
	if err != nil {
		t.Fatalf("second EvaluateString returned error: %v", err)
	}
	if got, want := v.Number(), 2.0; got != want {
		t.Errorf("counter = %v, want %v", got, want)
	}
}
