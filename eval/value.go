package eval

import "lam/symbol"

//go:generate stringer -type=NodeType

type NodeType uint8

const (
	_ = NodeType(iota)
	// unevaluated
	NT_VAR
	NT_ADD
	NT_EQ
	NT_IF
	NT_CALL
	// values
	NT_INT
	NT_BOOL
	// a closure is syntactic until it carries an Env
	NT_CLOSURE
)

// Expr is a handle to an interned expression. Two structurally equal
// expressions interned by the same Interner have the same handle.
type Expr uint32

// Env is a handle to an environment snapshot in an Arena.
type Env uint32

const (
	NoExpr Expr = 0
	NoEnv  Env  = 0
)

// Node is the canonical form of one expression. Fields that the node's
// Type does not use are always zero:
//
//   NT_VAR      Sym
//   NT_INT      Int
//   NT_BOOL     Bool
//   NT_ADD      X + Y
//   NT_EQ       X == Y
//   NT_IF       if X then Y else Z
//   NT_CALL     X Y
//   NT_CLOSURE  lambda Sym -> X, captured Env (NoEnv while syntactic)
//
// Children are handles, so Node is comparable and hashing it never walks
// a subtree.
type Node struct {
	Type NodeType
	Sym  symbol.Symbol
	Int  int32
	Bool bool
	X    Expr
	Y    Expr
	Z    Expr
	Env  Env
}

// Lambda is the part of a closure shared by its syntactic and evaluated
// forms.
type Lambda struct {
	Param symbol.Symbol
	Body  Expr
}

func (n Node) Lambda() Lambda { return Lambda{Param: n.Sym, Body: n.X} }

// IsValue reports whether the node is irreducible.
func (n Node) IsValue() bool {
	switch n.Type {
	case NT_INT, NT_BOOL:
		return true
	case NT_CLOSURE:
		return n.Env != NoEnv
	}
	return false
}

// canonical zeroes every field the node type does not use.
func (n Node) canonical() Node {
	c := Node{Type: n.Type}
	switch n.Type {
	case NT_VAR:
		c.Sym = n.Sym
	case NT_INT:
		c.Int = n.Int
	case NT_BOOL:
		c.Bool = n.Bool
	case NT_ADD, NT_EQ, NT_CALL:
		c.X, c.Y = n.X, n.Y
	case NT_IF:
		c.X, c.Y, c.Z = n.X, n.Y, n.Z
	case NT_CLOSURE:
		c.Sym, c.X, c.Env = n.Sym, n.X, n.Env
	}
	return c
}

// kindName names a value kind the way error messages spell it.
func kindName(t NodeType) string {
	switch t {
	case NT_INT:
		return "int"
	case NT_BOOL:
		return "bool"
	case NT_CLOSURE:
		return "function"
	case 0:
		return "nothing"
	}
	return "expression"
}

// opName names an operator node the way error messages spell it.
func opName(t NodeType) string {
	switch t {
	case NT_ADD:
		return "+"
	case NT_EQ:
		return "=="
	case NT_IF:
		return "if"
	case NT_CALL:
		return "call"
	}
	return t.String()
}
