package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

//go:generate stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	PLUS
	SEMICOLON
	// two-character tokens
	EQUAL_EQUAL
	ARROW
	// literals
	IDENTIFIER
	NUMBER
	// keywords
	TRUE
	FALSE
	IF
	THEN
	ELSE
	LAMBDA
	// meta
	EOF
)

var keywords = map[string]TokenType{
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"lambda": LAMBDA,
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int32 for NUMBER, string for IDENTIFIER
	Line    int
	Column  int
}

// EndsOperand reports whether an operand can end with this token, which
// decides if a following '+' is an operator or a sign.
func (t Token) EndsOperand() bool {
	switch t.Type {
	case NUMBER, IDENTIFIER, TRUE, FALSE, RIGHT_PAREN:
		return true
	}
	return false
}

type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

type Lexer struct {
	Filename string  // filename
	source   string  // the complete source code
	Tokens   []Token // list of tokens produced
	Errors   []Error // list of lexer errors
	current  int     // where are we in the input?
	line     int     // line and column positions
	column   int     // NB: column position is in terms of runes
	start    int     // the first char of the lexeme being scanned
	startLn  int     // starting line number
	startCol int     // starting col number
	stop     bool    // whether we have met a fatal error and cannot advance any more
}

func New(filename string, source string) *Lexer {
	return &Lexer{
		Filename: filename,
		source:   source,
		Tokens:   []Token{},
		line:     1,
		column:   1,
		startLn:  1,
		startCol: 1,
	}
}

// utils

// isAtEnd lets us know if we've reached the end of the input.
func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

// advance consumes one rune and returns the consumed rune.
// current is incremented by the width of the returned rune.
func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.current:])
	if r == utf8.RuneError && w == 1 {
		l.error("invalid utf8 input at byte %d", l.current)
		l.stop = true
	}
	l.current += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// peek is the same as advance, but does not advance .current.
func (l *Lexer) peek() rune {
	if l.stop || l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) match(ch rune) bool {
	if l.peek() != ch {
		return false
	}
	l.advance()
	return true
}

// previous returns the last emitted token, if any.
func (l *Lexer) previous() (Token, bool) {
	if len(l.Tokens) == 0 {
		return Token{}, false
	}
	return l.Tokens[len(l.Tokens)-1], true
}

// public api, actual lexing

func (l *Lexer) ScanTokens() {
	for !l.stop && !l.isAtEnd() && len(l.Errors) <= 10 {
		l.start = l.current
		l.scanToken()
	}
	l.Tokens = append(l.Tokens, Token{EOF, "", nil, l.line, l.column})
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	if l.stop {
		// invalid utf8 char
		return
	}
	switch ch {
	// Ignore whitespace
	case ' ', '\t', '\r', '\n':
		for isWhiteSpace(l.peek()) {
			l.advance()
		}
		l.ignore()
	case ';':
		l.emit(SEMICOLON)
	case '(':
		l.emit(LEFT_PAREN)
	case ')':
		l.emit(RIGHT_PAREN)
	case '+':
		// "+1" is a literal unless it follows an operand: "x +1" adds.
		prev, ok := l.previous()
		if isDigit(l.peek()) && (!ok || !prev.EndsOperand()) {
			l.lexNumber()
		} else {
			l.emit(PLUS)
		}
	case '-':
		switch {
		case l.match('>'):
			l.emit(ARROW)
		case isDigit(l.peek()):
			// there is no subtraction; '-' only ever signs a literal.
			l.lexNumber()
		default:
			l.error("unexpected '-' (negative literals are written -n, there is no subtraction)")
			l.ignore()
		}
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.stop && !l.isAtEnd() {
				l.advance()
			}
			l.ignore()
		} else {
			l.error("unexpected character %U %q", ch, ch)
			l.ignore()
		}
	case '=':
		if l.match('=') {
			l.emit(EQUAL_EQUAL)
		} else {
			l.error("invalid operator '=' (did you mean '=='?)")
			l.ignore()
		}
	default:
		if isDigit(ch) {
			l.lexNumber()
		} else if isAlpha(ch) {
			l.lexIdentifier()
		} else {
			l.error("unexpected character %U %q", ch, ch)
			l.ignore()
		}
	}
}

func (l *Lexer) lexIdentifier() {
	for isIdentifier(l.peek()) {
		l.advance()
	}
	word := l.source[l.start:l.current]
	if typ, ok := keywords[word]; ok {
		l.emit(typ)
	} else {
		l.emitLiteral(IDENTIFIER, word)
	}
}

// lexNumber scans the rest of an integer literal, whose sign (if any) has
// already been consumed.
func (l *Lexer) lexNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if isAlpha(l.peek()) {
		// 42x is neither a number nor an identifier.
		for isIdentifier(l.peek()) {
			l.advance()
		}
		l.error("invalid number literal %q", l.source[l.start:l.current])
		l.ignore()
		return
	}
	lexeme := l.source[l.start:l.current]
	num, err := strconv.ParseInt(lexeme, 10, 32)
	if err != nil {
		l.error("integer literal %s does not fit in 32 bits", lexeme)
		l.ignore()
		return
	}
	l.emitLiteral(NUMBER, int32(num))
}

// ignore ignores the currently scanned lexeme
func (l *Lexer) ignore() {
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
}

func (l *Lexer) emit(typ TokenType) { l.emitLiteral(typ, nil) }
func (l *Lexer) emitLiteral(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.source[l.start:l.current],
		Literal: lit,
		Line:    l.startLn,
		Column:  l.startCol,
	})
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
}

// error records a problem with the lexeme being scanned.
func (l *Lexer) error(s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.startLn,
		Column:   l.startCol,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isWhiteSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
