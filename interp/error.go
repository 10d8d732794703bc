// Package interp implements the tree-walking evaluator and the
// runtime error taxonomy it raises.
package interp

import (
	"fmt"
	"strings"

	"github.com/Duy-Thanh/DMKernel/token"
)

// ErrorKind enumerates the fixed taxonomy of errors the evaluator and
// parser raise.
type ErrorKind int

const (
	// InvalidArgument covers malformed calls to an internal operation
	// and function-call arity mismatches.
	InvalidArgument ErrorKind = iota
	// MemoryAllocation would propagate an allocation failure
	// unchanged; Go's runtime treats out-of-memory as process-fatal
	// rather than a recoverable error, so no code path in this
	// interpreter ever constructs one. Kept for taxonomy completeness.
	MemoryAllocation
	// FileIO covers a script that cannot be found or read.
	FileIO
	// SyntaxError covers lexer/parser rejections; it carries a
	// position (raised as *lexer.syntaxError / *parser.Error, not
	// this package's Error, since it happens before evaluation
	// begins).
	SyntaxError
	// TypeMismatch covers an operator or operation receiving a value
	// of the wrong variant.
	TypeMismatch
	// UndefinedVariable covers a failed name lookup; it carries the
	// name.
	UndefinedVariable
	// DivisionByZero covers '/' or '%' with a zero divisor.
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case MemoryAllocation:
		return "MEMORY_ALLOCATION"
	case FileIO:
		return "FILE_IO"
	case SyntaxError:
		return "SYNTAX_ERROR"
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case UndefinedVariable:
		return "UNDEFINED_VARIABLE"
	case DivisionByZero:
		return "DIVISION_BY_ZERO"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is a runtime error raised by the evaluator. The user-visible
// format renders it as "Runtime error: <message>".
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position // zero value when no position is available
	HasPos  bool
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newPositionedError(kind ErrorKind, pos token.Position, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// Snippet renders the offending source line from src with a caret
// under the error's column. It returns an empty string when the
// error carries no position or the position falls outside src.
func (e *Error) Snippet(src string) string {
	if !e.HasPos {
		return ""
	}
	lines := strings.Split(src, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}
	line := lines[e.Pos.Line-1]
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return line + "\n" + caret
}
