package main

import (
	"fmt"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/Duy-Thanh/DMKernel/interp"
	"github.com/Duy-Thanh/DMKernel/parser"
	"github.com/Duy-Thanh/DMKernel/runtime"
)

const usage = `usage: interpreter [-h] [-v] [script]

  -h, --help     show this help message
  -v, --version  print the interpreter version
  script         path to a script file, or "-" for stdin

With no script, starts an interactive REPL.
`

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// getopt expects a full argv with the program name in slot 0 and
	// has no long options, so --help and --version map onto -h and -v.
	argv := []string{"interpreter"}
	for _, arg := range args {
		switch arg {
		case "--help":
			arg = "-h"
		case "--version":
			arg = "-v"
		}
		argv = append(argv, arg)
	}
	opts, optind, err := getopt.Getopts(argv, "hv")
	if err != nil {
		fmt.Fprintf(os.Stderr, "interpreter: %v\n", err)
		return 1
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			fmt.Print(usage)
			return 0
		case 'v':
			fmt.Println(version)
			return 0
		}
	}

	rest := argv[optind:]
	ev := runtime.New()

	if len(rest) == 0 {
		runtime.RunREPL(ev)
		return 0
	}

	script := rest[0]
	var evalErr error
	if script == "-" {
		_, evalErr = runtime.EvaluateReader(ev, os.Stdin)
	} else {
		_, evalErr = runtime.EvaluateFile(ev, script)
	}
	if evalErr != nil {
		fmt.Fprintf(os.Stderr, "interpreter: %s\n", describeError(evalErr))
		return 1
	}
	return 0
}

// describeError renders the user-visible error format: "Runtime
// error: <message>" for evaluation errors, "Error at line L, column
// C: <message>" for lexer/parser rejections.
func describeError(err error) string {
	if rerr, ok := err.(*interp.Error); ok {
		return fmt.Sprintf("Runtime error: %s", rerr.Message)
	}
	if perr, ok := err.(*parser.Error); ok {
		return fmt.Sprintf("Error at line %d, column %d: %s", perr.Pos.Line, perr.Pos.Column, perr.Msg)
	}
	return err.Error()
}
