package eval

import (
	"fmt"
	"lam/symbol"
	"sync"
)

// Interner hash-conses expression nodes. It only ever grows, and every
// handle it returns stays valid for its lifetime.
type Interner struct {
	syms  *symbol.Table
	mu    sync.RWMutex
	ids   map[Node]Expr
	nodes []Node // nodes[0] is reserved for NoExpr
}

func NewInterner(syms *symbol.Table) *Interner {
	return &Interner{
		syms:  syms,
		ids:   map[Node]Expr{},
		nodes: []Node{{}},
	}
}

// Symbols returns the table variable names are interned into.
func (in *Interner) Symbols() *symbol.Table { return in.syms }

// Intern returns the canonical handle for n. Children of n must already
// be interned. Closures carrying an Env are only ever produced by the
// evaluator.
func (in *Interner) Intern(n Node) Expr {
	n = n.canonical()
	in.mu.RLock()
	e, ok := in.ids[n]
	in.mu.RUnlock()
	if ok {
		return e
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if e, ok := in.ids[n]; ok {
		return e
	}
	e = Expr(len(in.nodes))
	in.nodes = append(in.nodes, n)
	in.ids[n] = e
	return e
}

// Node returns the node behind e. It panics on a handle this interner
// did not produce.
func (in *Interner) Node(e Expr) Node {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if e == NoExpr || int(e) >= len(in.nodes) {
		panic(fmt.Sprintf("eval: unknown expression handle %d", uint32(e)))
	}
	return in.nodes[e]
}

func (in *Interner) Type(e Expr) NodeType { return in.Node(e).Type }

// Len returns the number of distinct nodes interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.nodes) - 1
}

// ============
// construction
// ============

func (in *Interner) Int(i int32) Expr { return in.Intern(Node{Type: NT_INT, Int: i}) }
func (in *Interner) Bool(b bool) Expr { return in.Intern(Node{Type: NT_BOOL, Bool: b}) }

func (in *Interner) Var(name string) Expr { return in.varSym(in.syms.Intern(name)) }
func (in *Interner) varSym(sym symbol.Symbol) Expr {
	return in.Intern(Node{Type: NT_VAR, Sym: sym})
}

func (in *Interner) Add(left, right Expr) Expr {
	return in.Intern(Node{Type: NT_ADD, X: left, Y: right})
}

func (in *Interner) Eq(left, right Expr) Expr {
	return in.Intern(Node{Type: NT_EQ, X: left, Y: right})
}

func (in *Interner) If(cond, then, els Expr) Expr {
	return in.Intern(Node{Type: NT_IF, X: cond, Y: then, Z: els})
}

func (in *Interner) Call(fn, arg Expr) Expr {
	return in.Intern(Node{Type: NT_CALL, X: fn, Y: arg})
}

// Lambda builds a syntactic closure, one without a captured environment.
func (in *Interner) Lambda(param string, body Expr) Expr {
	return in.lambdaSym(in.syms.Intern(param), body)
}

func (in *Interner) lambdaSym(param symbol.Symbol, body Expr) Expr {
	return in.Intern(Node{Type: NT_CLOSURE, Sym: param, X: body})
}

// capture re-interns a lambda as a closure over env.
func (in *Interner) capture(l Lambda, env Env) Expr {
	return in.Intern(Node{Type: NT_CLOSURE, Sym: l.Param, X: l.Body, Env: env})
}

// =========
// accessors
// =========

func (in *Interner) AsInt(e Expr) (int32, bool) {
	n := in.Node(e)
	return n.Int, n.Type == NT_INT
}

func (in *Interner) AsBool(e Expr) (bool, bool) {
	n := in.Node(e)
	return n.Bool, n.Type == NT_BOOL
}

// AsClosure returns the lambda and captured environment of a closure.
// The environment is NoEnv for a closure that has not been evaluated.
func (in *Interner) AsClosure(e Expr) (Lambda, Env, bool) {
	n := in.Node(e)
	if n.Type != NT_CLOSURE {
		return Lambda{}, NoEnv, false
	}
	return n.Lambda(), n.Env, true
}

func (in *Interner) IsValue(e Expr) bool { return in.Node(e).IsValue() }
