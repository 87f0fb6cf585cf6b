package parser

import (
	"errors"
	"fmt"
	"lam/eval"
	"lam/lexer"
	"strings"
)

// ParseString lexes and parses src. Lexer errors stop before parsing.
func ParseString(exprs *eval.Interner, filename, src string) ([]eval.Expr, []error) {
	l := lexer.New(filename, src)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		errs := make([]error, len(l.Errors))
		for i := range l.Errors {
			errs[i] = &l.Errors[i]
		}
		return nil, errs
	}
	p := New(filename, l.Tokens, exprs)
	out := p.Parse()
	if len(p.Errors) != 0 {
		errs := make([]error, len(p.Errors))
		for i, err := range p.Errors {
			errs[i] = err
		}
		return nil, errs
	}
	return out, nil
}

// ParseExpr parses src, which must hold exactly one expression.
func ParseExpr(exprs *eval.Interner, src string) (eval.Expr, error) {
	out, errs := ParseString(exprs, "<expr>", src)
	if len(errs) != 0 {
		return eval.NoExpr, errors.Join(errs...)
	}
	if len(out) != 1 {
		return eval.NoExpr, fmt.Errorf("expected one expression, found %d", len(out))
	}
	return out[0], nil
}

// Report renders lexer and parser errors with a caret under the
// offending column of src. Other errors are printed as they are.
func Report(src string, errs []error) string {
	var b strings.Builder
	for _, err := range errs {
		var lexErr *lexer.Error
		var parseErr ParserError
		switch {
		case errors.As(err, &lexErr):
			snippet(&b, src, "lexical error", lexErr.Line, lexErr.Column, lexErr.Message)
		case errors.As(err, &parseErr):
			snippet(&b, src, "parse error", parseErr.Token.Line, parseErr.Token.Column, parseErr.Message)
		default:
			fmt.Fprintf(&b, "%s\n", err)
		}
	}
	return b.String()
}

// snippet shows the offending line with one line of context either side.
// Coordinates are 1-based and clamped to the source.
func snippet(b *strings.Builder, src, header string, line, col int, msg string) {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(b, "%s at %d:%d: %s\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(b, "%4d | %s\n", line+1, lines[line])
	}
}
