package eval

import (
	"bytes"
	"strconv"
)

// This file renders expressions back into lam source. Unevaluated
// expressions print with just enough parentheses to parse back into the
// same handle; evaluated closures print as <closure x>, which does not
// parse.

// binding strength of a printed form, loosest first.
const (
	lvlOpen = iota // if, lambda: extend as far right as possible
	lvlEq
	lvlSum
	lvlCall
	lvlAtom
)

func level(t NodeType) int {
	switch t {
	case NT_IF:
		return lvlOpen
	case NT_CLOSURE:
		return lvlOpen
	case NT_EQ:
		return lvlEq
	case NT_ADD:
		return lvlSum
	case NT_CALL:
		return lvlCall
	}
	return lvlAtom
}

// String renders e as source text.
func (in *Interner) String(e Expr) string {
	var buf bytes.Buffer
	in.write(&buf, e, lvlOpen)
	return buf.String()
}

// write prints e, parenthesised if it binds looser than min.
func (in *Interner) write(buf *bytes.Buffer, e Expr, min int) {
	n := in.Node(e)
	if n.Type == NT_CLOSURE && n.Env != NoEnv {
		buf.WriteString("<closure ")
		buf.WriteString(in.syms.Name(n.Sym))
		buf.WriteString(">")
		return
	}
	if level(n.Type) < min {
		buf.WriteString("(")
		defer buf.WriteString(")")
	}
	switch n.Type {
	case NT_INT:
		buf.WriteString(strconv.FormatInt(int64(n.Int), 10))
	case NT_BOOL:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case NT_VAR:
		buf.WriteString(in.syms.Name(n.Sym))
	case NT_ADD:
		in.write(buf, n.X, lvlSum)
		buf.WriteString(" + ")
		in.write(buf, n.Y, lvlCall)
	case NT_EQ:
		// == does not chain, so both sides must bind tighter.
		in.write(buf, n.X, lvlSum)
		buf.WriteString(" == ")
		in.write(buf, n.Y, lvlSum)
	case NT_IF:
		buf.WriteString("if ")
		in.write(buf, n.X, lvlOpen)
		buf.WriteString(" then ")
		in.write(buf, n.Y, lvlOpen)
		buf.WriteString(" else ")
		in.write(buf, n.Z, lvlOpen)
	case NT_CALL:
		in.write(buf, n.X, lvlCall)
		buf.WriteString(" ")
		in.write(buf, n.Y, lvlAtom)
	case NT_CLOSURE:
		buf.WriteString("lambda ")
		buf.WriteString(in.syms.Name(n.Sym))
		buf.WriteString(" -> ")
		in.write(buf, n.X, lvlOpen)
	}
}
