package parser

import (
	"fmt"
	"lam/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some expression -- the panic is
// recovered at the top level of Parse.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (e ParserError) Error() string { return e.String() }
func (e ParserError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Token.Line, e.Token.Column, e.Message)
}

func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) ParserError {
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	return err
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.check(typ) {
		panic(p.error(p.peek(), s, args...))
	}
	return p.consume()
}

// synchronize discards tokens up to and including the next ';', so
// cascading errors inside one expression are not reported.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.consume().Type == lexer.SEMICOLON {
			return
		}
	}
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}
