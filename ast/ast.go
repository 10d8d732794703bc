// Package ast defines the abstract syntax tree produced by the parser
// and consumed by the evaluator. Every node carries its source
// position; a node exclusively owns its children.
package ast

import "github.com/Duy-Thanh/DMKernel/token"

// Node is any AST node with a source position.
type Node interface {
	Pos() token.Position
}

// Stmt is a top-level or block-level statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed source file or REPL line.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

// Block introduces a new lexical scope around its statements.
type Block struct {
	Statements []Stmt
	Posn       token.Position
}

func (b *Block) Pos() token.Position { return b.Posn }
func (*Block) stmtNode()             {}

// LiteralKind distinguishes the constructible literal variants.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralNull
)

// Literal is a numeric, string, boolean, or null literal.
type Literal struct {
	Kind    LiteralKind
	Number  float64
	Str     string
	Boolean bool
	Posn    token.Position
}

func (l *Literal) Pos() token.Position { return l.Posn }
func (*Literal) exprNode()             {}
func (*Literal) stmtNode()             {}

// Variable refers to a name looked up in the current scope chain.
type Variable struct {
	Name string
	Posn token.Position
}

func (v *Variable) Pos() token.Position { return v.Posn }
func (*Variable) exprNode()             {}
func (*Variable) stmtNode()             {}

// Assignment binds Name to the evaluated Value, either declaring a
// fresh binding in the current scope (IsDeclaration) or mutating an
// existing one found by walking the scope chain.
type Assignment struct {
	Name          string
	Value         Expr
	IsDeclaration bool
	Posn          token.Position
}

func (a *Assignment) Pos() token.Position { return a.Posn }
func (*Assignment) exprNode()             {}
func (*Assignment) stmtNode()             {}

// Binary applies a binary operator to two operands.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Posn  token.Position
}

func (b *Binary) Pos() token.Position { return b.Posn }
func (*Binary) exprNode()             {}
func (*Binary) stmtNode()             {}

// Unary applies a prefix operator to one operand.
type Unary struct {
	Op      string
	Operand Expr
	Posn    token.Position
}

func (u *Unary) Pos() token.Position { return u.Posn }
func (*Unary) exprNode()             {}
func (*Unary) stmtNode()             {}

// If conditionally executes Then, or Else when present and the
// condition is falsy.
type If struct {
	Condition Expr
	Then      *Block
	Else      *Block
	Posn      token.Position
}

func (i *If) Pos() token.Position { return i.Posn }
func (*If) stmtNode()             {}

// While repeats Body while Condition is truthy.
type While struct {
	Condition Expr
	Body      *Block
	Posn      token.Position
}

func (w *While) Pos() token.Position { return w.Posn }
func (*While) stmtNode()             {}

// For is reserved by the grammar but never produced by the parser; it
// exists so the AST sum is complete.
type For struct {
	Init      Stmt
	Condition Expr
	Increment Stmt
	Body      *Block
	Posn      token.Position
}

func (f *For) Pos() token.Position { return f.Posn }
func (*For) stmtNode()             {}

// Call invokes a function looked up by name with the given arguments.
type Call struct {
	CalleeName string
	Args       []Expr
	Posn       token.Position
}

func (c *Call) Pos() token.Position { return c.Posn }
func (*Call) exprNode()             {}
func (*Call) stmtNode()             {}

// FunctionDecl binds Name to a user-defined function with the given
// parameters and body.
type FunctionDecl struct {
	Name       string
	ParamNames []string
	Body       *Block
	Posn       token.Position
}

func (f *FunctionDecl) Pos() token.Position { return f.Posn }
func (*FunctionDecl) stmtNode()             {}

// Return unwinds the current function activation, carrying Value (or
// null when omitted).
type Return struct {
	Value Expr
	Posn  token.Position
}

func (r *Return) Pos() token.Position { return r.Posn }
func (*Return) stmtNode()             {}

// Import is reserved by the grammar; the parser never produces it
// (see the open-question decision in DESIGN.md).
type Import struct {
	ModuleName string
	Posn       token.Position
}

func (i *Import) Pos() token.Position { return i.Posn }
func (*Import) stmtNode()             {}
