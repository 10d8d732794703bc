package runtime

import (
	"bufio"
	"io"
	"os"
	"strings"
	"testing"
)

// captureBufferedREPL runs runBufferedREPL over src against a fresh
// evaluator and returns whatever it wrote to stdout.
func captureBufferedREPL(t *testing.T, src string) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	done := make(chan string, 1)
	go func() {
		var buf strings.Builder
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	runBufferedREPL(New(), bufio.NewReader(strings.NewReader(src)))

	w.Close()
	return <-done
}

func TestREPLPrintsFunctionDeclarationsAndCallResults(t *testing.T) {
	// Display renders strings verbatim (no quoting), so the function
	// declaration's name prints bare, matching the unquoted "=> yes"
	// string result in the if/else scenario.
	out := captureBufferedREPL(t, `function add(a, b) { return a + b; } add(3, 7);`+"\n")
	want := "=> add\n=> 10.000000\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestREPLSuppressesIntermediateAssignmentsAndWhileResult(t *testing.T) {
	out := captureBufferedREPL(t, `let i = 0; let s = 0; while (i < 5) { s = s + i; i = i + 1; } s;`+"\n")
	want := "=> 10.000000\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestREPLPrintsEachNonAssignmentTopLevelResult(t *testing.T) {
	out := captureBufferedREPL(t, `10 + 5;`+"\n")
	if got, want := out, "=> 15.000000\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
