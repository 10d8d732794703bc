// Package runtime bootstraps an evaluator and drives it from a file,
// a reader, or an interactive session. It is the seam between the
// language core (token/lexer/ast/parser/value/interp) and the outside
// world.
package runtime

import (
	"bytes"
	"io"
	"os"

	"github.com/Duy-Thanh/DMKernel/interp"
	"github.com/Duy-Thanh/DMKernel/parser"
	"github.com/Duy-Thanh/DMKernel/value"
)

// New constructs a fresh evaluator with an empty global scope.
func New() *interp.Evaluator {
	return interp.New()
}

// readFileSkippingShebang tolerates a leading `#!...` line so a script
// can be made directly executable, the same accommodation the
// teacher's file loader makes for its own scripts.
func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString parses and evaluates src as a complete program.
func EvaluateString(ev *interp.Evaluator, src string) (value.Value, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return value.Value{}, err
	}
	return ev.EvalProgram(prog)
}

// EvaluateReader consumes r to EOF and evaluates it as one program.
func EvaluateReader(ev *interp.Evaluator, r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, err
	}
	return EvaluateString(ev, string(data))
}

// EvaluateFile loads and executes a script file, skipping a leading
// shebang line if present.
func EvaluateFile(ev *interp.Evaluator, path string) (value.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return value.Value{}, &interp.Error{Kind: interp.FileIO, Message: err.Error()}
	}
	return EvaluateString(ev, string(data))
}
