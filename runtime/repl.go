package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/Duy-Thanh/DMKernel/ast"
	"github.com/Duy-Thanh/DMKernel/interp"
	"github.com/Duy-Thanh/DMKernel/parser"
	"github.com/Duy-Thanh/DMKernel/value"
)

var (
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.Faint)
)

// RunREPL dispatches to the interactive or buffered loop depending on
// whether stdin is a terminal.
func RunREPL(ev *interp.Evaluator) {
	if !stdinIsInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin))
		return
	}
	runInteractiveREPL(ev)
}

func stdinIsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// runBufferedREPL drives piped or redirected input: it accumulates
// lines until a complete statement parses (or the parser reports a
// real syntax error, as opposed to unterminated input), evaluates it,
// and prints the result.
func runBufferedREPL(ev *interp.Evaluator, reader *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return
		}
		buffer.WriteString(line)

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			if atEOF {
				return
			}
			continue
		}

		prog, parseErr := parser.Parse(src)
		if parseErr != nil {
			if parser.IsIncomplete(parseErr) && !atEOF {
				continue
			}
			printError(parseErr, src)
			buffer.Reset()
			if atEOF {
				return
			}
			continue
		}
		buffer.Reset()
		evalAndPrint(ev, prog, src)
		if atEOF {
			return
		}
	}
}

// runInteractiveREPL drives a terminal session using liner for line
// editing, history, and Ctrl-C handling.
func runInteractiveREPL(ev *interp.Evaluator) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "interp> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		prog, parseErr := parser.Parse(src)
		if parseErr != nil {
			if parser.IsIncomplete(parseErr) {
				continue
			}
			printError(parseErr, src)
			buffer.Reset()
			continue
		}

		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		buffer.Reset()
		evalAndPrint(ev, prog, src)
	}
}

// evalAndPrint evaluates each top-level statement of prog in turn,
// printing "=> <value>" after every one that is neither an assignment
// nor Null, and stops at the first error so the remaining statements
// on this input line are not attempted. A while loop's own result is
// always Null, so it never produces a stray print of its own.
func evalAndPrint(ev *interp.Evaluator, prog *ast.Program, src string) {
	for _, stmt := range prog.Statements {
		v, err := ev.EvalStatement(stmt)
		if err != nil {
			printError(err, src)
			return
		}
		if !interp.Suppresses(stmt) && v.Type != value.Null {
			printResult(v)
		}
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".interpreter_history")
}

// printError renders the user-visible error format: a positioned
// "Error at line L, column C: <message>" for lexer/parser errors, or
// "Runtime error: <message>" for everything evaluated after parsing.
// A runtime error that carries a position is followed by the source
// excerpt with a caret; parser errors get no excerpt.
func printError(err error, src string) {
	if perr, ok := err.(*parser.Error); ok {
		errorColor.Fprintf(os.Stderr, "Error at line %d, column %d: %s\n", perr.Pos.Line, perr.Pos.Column, perr.Msg)
		return
	}
	if rerr, ok := err.(*interp.Error); ok {
		errorColor.Fprintf(os.Stderr, "Runtime error: %s\n", rerr.Message)
		if snippet := rerr.Snippet(src); snippet != "" {
			fmt.Fprintln(os.Stderr, snippet)
		}
		return
	}
	errorColor.Fprintf(os.Stderr, "Runtime error: %v\n", err)
}

func printResult(v value.Value) {
	resultColor.Fprintf(os.Stdout, "=> %s\n", value.Display(v))
}
