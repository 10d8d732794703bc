package parser

import (
	"testing"

	"github.com/Duy-Thanh/DMKernel/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseDeclarationAndAssignment(t *testing.T) {
	prog := mustParse(t, "let x = 1; x = 2;")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.Assignment)
	if !ok || !decl.IsDeclaration || decl.Name != "x" {
		t.Fatalf("statement 0 = %+v, want declaration of x", prog.Statements[0])
	}
	assign, ok := prog.Statements[1].(*ast.Assignment)
	if !ok || assign.IsDeclaration || assign.Name != "x" {
		t.Fatalf("statement 1 = %+v, want assignment to x", prog.Statements[1])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3;")
	bin, ok := prog.Statements[0].(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("top-level op = %+v, want +", prog.Statements[0])
	}
	right, ok := bin.Right.(*ast.Binary)
	if !ok || right.Op != "*" {
		t.Fatalf("right operand = %+v, want a * node", bin.Right)
	}
}

func TestOperatorLeftAssociativity(t *testing.T) {
	prog := mustParse(t, "1 - 2 - 3;")
	outer, ok := prog.Statements[0].(*ast.Binary)
	if !ok || outer.Op != "-" {
		t.Fatalf("outer = %+v", prog.Statements[0])
	}
	left, ok := outer.Left.(*ast.Binary)
	if !ok || left.Op != "-" {
		t.Fatalf("expected left-associative nesting, got %+v", outer.Left)
	}
	if _, ok := outer.Right.(*ast.Literal); !ok {
		t.Fatalf("right operand should be a literal, got %+v", outer.Right)
	}
}

func TestLogicalOperatorsLowestPrecedence(t *testing.T) {
	prog := mustParse(t, "a == 1 && b == 2 || c;")
	or, ok := prog.Statements[0].(*ast.Binary)
	if !ok || or.Op != "||" {
		t.Fatalf("top-level op = %+v, want ||", prog.Statements[0])
	}
	and, ok := or.Left.(*ast.Binary)
	if !ok || and.Op != "&&" {
		t.Fatalf("left of || = %+v, want &&", or.Left)
	}
}

func TestParseFunctionDeclAndCall(t *testing.T) {
	src := `
function fib(n) {
  if (n <= 1) {
    return n;
  } else {
    return fib(n - 1) + fib(n - 2);
  }
}
fib(6);
`
	prog := mustParse(t, src)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok || fn.Name != "fib" || len(fn.ParamNames) != 1 {
		t.Fatalf("statement 0 = %+v, want fib(n) declaration", prog.Statements[0])
	}
	call, ok := prog.Statements[1].(*ast.Call)
	if !ok || call.CalleeName != "fib" || len(call.Args) != 1 {
		t.Fatalf("statement 1 = %+v, want call fib(6)", prog.Statements[1])
	}
}

func TestParseUnaryOperators(t *testing.T) {
	prog := mustParse(t, "!true; -x;")
	if _, ok := prog.Statements[0].(*ast.Unary); !ok {
		t.Fatalf("statement 0 = %+v, want unary !", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.Unary); !ok {
		t.Fatalf("statement 1 = %+v, want unary -", prog.Statements[1])
	}
}

func TestReservedKeywordsRejected(t *testing.T) {
	for _, src := range []string{"for (;;) {}", "break;", "continue;", "import foo;"} {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) succeeded, want a rejection error", src)
		}
	}
}

func TestIncompleteInputDetection(t *testing.T) {
	cases := []string{"if (true) {", "let x = ", `"unterminated`}
	for _, src := range cases {
		_, err := Parse(src)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want an incomplete-input error", src)
		}
		if !IsIncomplete(err) {
			t.Errorf("Parse(%q) error %v, want IsIncomplete(err) == true", src, err)
		}
	}
}

func TestGenuineSyntaxErrorIsNotIncomplete(t *testing.T) {
	_, err := Parse("let 1 = 2;")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if IsIncomplete(err) {
		t.Errorf("Parse error %v should not be marked incomplete", err)
	}
}

func TestNoTrailingCommaInArguments(t *testing.T) {
	if _, err := Parse("f(1, 2,);"); err == nil {
		t.Fatal("expected an error for a trailing comma in an argument list")
	}
}
