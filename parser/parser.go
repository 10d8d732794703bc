// Package parser implements a recursive-descent statement parser and
// a precedence-climbing expression parser. Parse errors carry the
// offending token's position and never return a partially built tree
// to the caller.
package parser

import (
	"fmt"

	"github.com/Duy-Thanh/DMKernel/ast"
	"github.com/Duy-Thanh/DMKernel/lexer"
	"github.com/Duy-Thanh/DMKernel/token"
)

// Error is a parse error carrying a message and the offending token's
// source position.
type Error struct {
	Pos        token.Position
	Msg        string
	Incomplete bool // true when the input ended mid-construct (REPL continuation)
}

// Error returns "line L, column C: <message>"; callers that need the
// full user-visible "Error at line L, column C: <message>" form read
// Pos and Msg directly (see runtime.printError) rather than prefixing
// this string.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func newError(pos token.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func newIncompleteError(pos token.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), Incomplete: true}
}

// IsIncomplete reports whether err represents input that ended
// mid-construct (an unterminated string/comment or a statement still
// awaiting its closing token) rather than a genuine syntax error, so a
// REPL can tell "keep reading more lines" apart from "reject this
// input".
func IsIncomplete(err error) bool {
	perr, ok := err.(*Error)
	return ok && perr.Incomplete
}

// precedence maps each binary operator lexeme to its precedence
// level; parseExpression is a single loop driven by this table, so
// adding an operator or a precedence level is a table edit rather
// than a new recursive function.
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

type parser struct {
	lx      *lexer.Lexer
	curr    token.Token
	hasPeek bool
	peekTok token.Token
}

// Parse translates source text into a Program AST.
func Parse(src string) (*ast.Program, error) {
	p := &parser{lx: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements(func() bool { return p.curr.Kind == token.EOF })
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

func (p *parser) advance() error {
	if p.hasPeek {
		p.curr = p.peekTok
		p.hasPeek = false
		return nil
	}
	tok, err := p.lx.Next()
	if err != nil {
		return wrapLexError(err)
	}
	p.curr = tok
	return nil
}

func (p *parser) peek() (token.Token, error) {
	if !p.hasPeek {
		tok, err := p.lx.Next()
		if err != nil {
			return token.Token{}, wrapLexError(err)
		}
		p.peekTok = tok
		p.hasPeek = true
	}
	return p.peekTok, nil
}

// wrapLexError turns a lexer syntax error into a parser *Error,
// preserving the "incomplete input" marker an unterminated string or
// block comment carries (so the REPL can ask for another line).
func wrapLexError(err error) error {
	type positioned interface {
		Position() token.Position
	}
	if pe, ok := err.(positioned); ok {
		if isIncompleteLexMessage(err.Error()) {
			return newIncompleteError(pe.Position(), "%s", err.Error())
		}
		return newError(pe.Position(), "%s", err.Error())
	}
	return err
}

func isIncompleteLexMessage(msg string) bool {
	return containsSub(msg, "unterminated string literal") || containsSub(msg, "unterminated block comment")
}

func containsSub(s, sub string) bool {
	n, m := len(s), len(sub)
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return true
		}
	}
	return false
}

func (p *parser) isKeyword(word string) bool {
	return p.curr.Kind == token.Keyword && p.curr.Lexeme == word
}

func (p *parser) isOperator(op string) bool {
	return p.curr.Kind == token.Operator && p.curr.Lexeme == op
}

func (p *parser) isPunct(ch string) bool {
	return p.curr.Kind == token.Punct && p.curr.Lexeme == ch
}

func (p *parser) expectPunct(ch string) (token.Token, error) {
	if !p.isPunct(ch) {
		return token.Token{}, p.unexpected(ch)
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectKeyword(word string) (token.Token, error) {
	if !p.isKeyword(word) {
		return token.Token{}, p.unexpected(word)
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectIdentifier() (token.Token, error) {
	if p.curr.Kind != token.Identifier {
		return token.Token{}, p.unexpected("identifier")
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectOperator(op string) (token.Token, error) {
	if !p.isOperator(op) {
		return token.Token{}, p.unexpected(op)
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) unexpected(expected string) error {
	if p.curr.Kind == token.EOF {
		return newIncompleteError(p.curr.Pos, "unexpected end of input, expected %s", expected)
	}
	return newError(p.curr.Pos, "expected %s, found %q", expected, p.curr.Lexeme)
}

func (p *parser) expectSemicolon() error {
	if !p.isPunct(";") {
		if p.curr.Kind == token.EOF {
			return p.unexpected("';'")
		}
		return newError(p.curr.Pos, "expected ';'")
	}
	return p.advance()
}

// parseStatements parses statements until done() reports true.
func (p *parser) parseStatements(done func() bool) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !done() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.isKeyword("let") || p.isKeyword("var") || p.isKeyword("const"):
		return p.parseDeclaration()
	case p.isKeyword("function"):
		return p.parseFunctionDecl()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return nil, newError(p.curr.Pos, "for loops are reserved but not implemented")
	case p.isKeyword("break"):
		return nil, newError(p.curr.Pos, "break is reserved but not implemented")
	case p.isKeyword("continue"):
		return nil, newError(p.curr.Pos, "continue is reserved but not implemented")
	case p.isKeyword("import"):
		return nil, newError(p.curr.Pos, "import is reserved but not implemented")
	case p.isPunct("{"):
		return p.parseBlock()
	case p.curr.Kind == token.Identifier:
		return p.parseIdentifierLedStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseDeclaration parses `let|var|const identifier = expression ;`.
func (p *parser) parseDeclaration() (ast.Stmt, error) {
	startTok := p.curr
	if err := p.advance(); err != nil { // consume let/var/const
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Assignment{
		Name:          nameTok.Lexeme,
		Value:         value,
		IsDeclaration: true,
		Posn:          startTok.Pos,
	}, nil
}

// parseIdentifierLedStatement implements the one-token lookahead the
// statement dispatcher needs: an identifier followed directly by '='
// is an assignment statement, otherwise it starts an expression
// statement.
func (p *parser) parseIdentifierLedStatement() (ast.Stmt, error) {
	nameTok := p.curr
	peekTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if peekTok.Kind == token.Operator && peekTok.Lexeme == "=" {
		if err := p.advance(); err != nil { // consume identifier
			return nil, err
		}
		if _, err := p.expectOperator("="); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectSemicolon(); err != nil {
			return nil, err
		}
		return &ast.Assignment{
			Name:          nameTok.Lexeme,
			Value:         value,
			IsDeclaration: false,
			Posn:          nameTok.Pos,
		}, nil
	}
	return p.parseExpressionStatement()
}

func (p *parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return expr.(ast.Stmt), nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	braceTok, err := p.expectPunct("{")
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements(func() bool {
		return p.isPunct("}") || p.curr.Kind == token.EOF
	})
	if err != nil {
		return nil, err
	}
	if !p.isPunct("}") {
		return nil, newIncompleteError(p.curr.Pos, "unexpected end of input, expected '}'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts, Posn: braceTok.Pos}, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	ifTok, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Block
	if p.isKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Condition: cond, Then: thenBlock, Else: elseBlock, Posn: ifTok.Pos}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	whileTok, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body, Posn: whileTok.Pos}, nil
}

func (p *parser) parseFunctionDecl() (ast.Stmt, error) {
	fnTok, err := p.expectKeyword("function")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: nameTok.Lexeme, ParamNames: params, Body: body, Posn: fnTok.Pos}, nil
}

func (p *parser) parseParamList() ([]string, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	if p.isPunct(")") {
		return params, p.advance()
	}
	for {
		tok, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Lexeme)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	retTok, err := p.expectKeyword("return")
	if err != nil {
		return nil, err
	}
	var value ast.Expr
	if !p.isPunct(";") {
		value, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Posn: retTok.Pos}, nil
}

// parseExpression is the precedence-climbing entry point: minPrec is
// the lowest operator precedence still accepted at this level.
func (p *parser) parseExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curr.Kind == token.Operator {
		prec, ok := precedence[p.curr.Lexeme]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpression(prec + 1) // left-associative
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opTok.Lexeme, Left: left, Right: right, Posn: opTok.Pos}
	}
	return left, nil
}

// parseUnary handles the right-associative prefix operators - and !.
func (p *parser) parseUnary() (ast.Expr, error) {
	if p.isOperator("-") || p.isOperator("!") {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: opTok.Lexeme, Operand: operand, Posn: opTok.Pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.curr.Kind == token.Number:
		return p.parseNumberLiteral()
	case p.curr.Kind == token.String:
		tok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralString, Str: tok.Lexeme, Posn: tok.Pos}, nil
	case p.isKeyword("true") || p.isKeyword("false"):
		tok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralBoolean, Boolean: tok.Lexeme == "true", Posn: tok.Pos}, nil
	case p.isKeyword("null"):
		tok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LiteralNull, Posn: tok.Pos}, nil
	case p.curr.Kind == token.Identifier:
		return p.parseIdentifierOrCall()
	case p.isPunct("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpected("expression")
	}
}

func (p *parser) parseNumberLiteral() (ast.Expr, error) {
	tok := p.curr
	f, err := parseFloat(tok.Lexeme)
	if err != nil {
		return nil, newError(tok.Pos, "invalid numeric literal %q", tok.Lexeme)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Literal{Kind: ast.LiteralNumber, Number: f, Posn: tok.Pos}, nil
}

func (p *parser) parseIdentifierOrCall() (ast.Expr, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if !p.isPunct("(") {
		return &ast.Variable{Name: nameTok.Lexeme, Posn: nameTok.Pos}, nil
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.Call{CalleeName: nameTok.Lexeme, Args: args, Posn: nameTok.Pos}, nil
}

// parseArgumentList parses comma-separated expressions; a trailing
// comma is disallowed.
func (p *parser) parseArgumentList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.isPunct(")") {
		return args, nil
	}
	for {
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return args, nil
}
