// Package parser turns lam source into interned expressions. It builds
// every node through the Interner's construction helpers, so identical
// fragments parse to identical handles.
package parser

import (
	"lam/eval"
	"lam/lexer"
)

type (
	unaryParser  func() eval.Expr
	binaryParser func(eval.Expr) eval.Expr
)

type Parser struct {
	filename      string
	tokens        []lexer.Token
	exprs         *eval.Interner
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST = iota
	PREC_EQ     // ==
	PREC_SUM    // +
	PREC_CALL   // juxtaposition
)

// ====
// init
// ====

func New(fn string, tokens []lexer.Token, exprs *eval.Interner) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		exprs:    exprs,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.IDENTIFIER: p.identifier,
		lexer.NUMBER:     p.literal,
		lexer.TRUE:       p.literal,
		lexer.FALSE:      p.literal,
		lexer.IF:         p.ifExpr,
		lexer.LAMBDA:     p.lambda,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences. Application has no
	// operator token: any token that can start an argument applies the
	// expression to its left.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.EQUAL_EQUAL: p.eq,
		lexer.PLUS:        p.add,
		lexer.LEFT_PAREN:  p.call,
		lexer.IDENTIFIER:  p.call,
		lexer.NUMBER:      p.call,
		lexer.TRUE:        p.call,
		lexer.FALSE:       p.call,
		lexer.LAMBDA:      p.call,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.EQUAL_EQUAL: PREC_EQ,
		lexer.PLUS:        PREC_SUM,
		lexer.LEFT_PAREN:  PREC_CALL,
		lexer.IDENTIFIER:  PREC_CALL,
		lexer.NUMBER:      PREC_CALL,
		lexer.TRUE:        PREC_CALL,
		lexer.FALSE:       PREC_CALL,
		lexer.LAMBDA:      PREC_CALL,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.curr == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.curr-1]
}

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// program → expression ( ";" expression )* ";"?

// Parse parses a whole program. Expressions that fail to parse are left
// out of the result and reported in .Errors.
func (p *Parser) Parse() []eval.Expr {
	exprs := []eval.Expr{}
	for !p.isAtEnd() {
		if e, ok := p.topLevel(); ok {
			exprs = append(exprs, e)
		}
	}
	return exprs
}

func (p *Parser) topLevel() (expr eval.Expr, ok bool) {
	defer func() {
		// every top-level expression gets its own recover, so one bad
		// expression does not hide the errors in the next.
		if rv := recover(); rv != nil {
			if _, isErr := rv.(ParserError); isErr {
				p.synchronize()
				expr, ok = eval.NoExpr, false
				return
			}
			panic(rv)
		}
	}()
	expr = p.expression()
	if !p.isAtEnd() && !p.match(lexer.SEMICOLON) {
		panic(p.error(p.peek(), "unexpected %s after expression", describe(p.peek())))
	}
	return expr, true
}

// ==================
// expression parsing
// ==================
//
//   expression → "if" expression "then" expression "else" expression
//              | "lambda" IDENT "->" expression
//              | equality
//   equality   → sum ( "==" sum )?
//   sum        → call ( "+" call )*
//   call       → primary primary*         (a trailing lambda counts)
//   primary    → NUMBER | "true" | "false" | IDENT | "(" expression ")"

// expression matches a single expression.
func (p *Parser) expression() eval.Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) eval.Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		panic(p.error(p.peek(), "expected an expression, found %s", describe(p.peek())))
	}
	expr := unary()
	for prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) grouping() eval.Expr {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return expr
}

func (p *Parser) identifier() eval.Expr {
	tok := p.consume()
	return p.exprs.Var(tok.Lexeme)
}

func (p *Parser) literal() eval.Expr {
	tok := p.consume()
	switch tok.Type {
	case lexer.TRUE:
		return p.exprs.Bool(true)
	case lexer.FALSE:
		return p.exprs.Bool(false)
	}
	return p.exprs.Int(tok.Literal.(int32))
}

func (p *Parser) ifExpr() eval.Expr {
	p.consume()
	cond := p.expression()
	p.expect(lexer.THEN, "expected then after if condition")
	then := p.expression()
	p.expect(lexer.ELSE, "expected else after then branch")
	els := p.expression()
	return p.exprs.If(cond, then, els)
}

func (p *Parser) lambda() eval.Expr {
	p.consume()
	param := p.expect(lexer.IDENTIFIER, "expected a parameter name after lambda")
	p.expect(lexer.ARROW, "expected -> after lambda parameter")
	body := p.expression()
	return p.exprs.Lambda(param.Lexeme, body)
}

func (p *Parser) add(left eval.Expr) eval.Expr {
	p.consume()
	return p.exprs.Add(left, p.precedence(PREC_SUM))
}

func (p *Parser) eq(left eval.Expr) eval.Expr {
	p.consume()
	right := p.precedence(PREC_EQ)
	if p.check(lexer.EQUAL_EQUAL) {
		panic(p.error(p.peek(), "== does not chain; parenthesise one side"))
	}
	return p.exprs.Eq(left, right)
}

// call applies left to one argument; the loop in precedence() makes
// application left-associative.
func (p *Parser) call(left eval.Expr) eval.Expr {
	return p.exprs.Call(left, p.precedence(PREC_CALL))
}
