// Package resolver implements free-variable analysis over interned
// expressions. A free variable is not necessarily an error -- it may sit
// in a branch that never runs -- so the resolver's findings are reported
// as warnings by the REPL rather than refusing to evaluate.
package resolver

import (
	"errors"
	"fmt"
	"lam/eval"
	"lam/symbol"
)

var TooManyErrors = errors.New("too many errors")

type ResolverError struct {
	Filename string
	Name     string
	Message  string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	return fmt.Sprintf("%s: %s: %s", re.Filename, re.Name, re.Message)
}

// Scope is the set of names bound outside the expression being resolved.
type Scope map[symbol.Symbol]bool

type Resolver struct {
	filename string
	exprs    *eval.Interner
	globals  Scope
	// free variables of every node seen so far; interned subtrees are
	// shared, so each node is only ever analysed once.
	free   map[eval.Expr][]symbol.Symbol
	Errors []error
}

func New(filename string, exprs *eval.Interner) *Resolver {
	return &Resolver{
		filename: filename,
		exprs:    exprs,
		globals:  Scope{},
		free:     map[eval.Expr][]symbol.Symbol{},
		Errors:   []error{},
	}
}

func (r *Resolver) AddGlobals(globals []symbol.Symbol) {
	for _, x := range globals {
		r.globals[x] = true
	}
}

// Clean up frees memory used by the resolver -- this can only be done
// after reporting errors, as it clears the errors as well.
func (r *Resolver) Cleanup() {
	r.free = map[eval.Expr][]symbol.Symbol{}
	r.Errors = []error{}
}

// ResolveOne records an error for every free variable of e that is not
// a global.
func (r *Resolver) ResolveOne(e eval.Expr) {
	for _, sym := range r.Free(e) {
		if r.globals[sym] {
			continue
		}
		if len(r.Errors) >= 10 {
			r.Errors = append(r.Errors, TooManyErrors)
			return
		}
		r.Errors = append(r.Errors, ResolverError{
			Filename: r.filename,
			Name:     r.exprs.Symbols().Name(sym),
			Message:  "free variable",
		})
	}
}

// Free returns the free variables of e, each once, in order of first
// occurrence (left to right).
func (r *Resolver) Free(e eval.Expr) []symbol.Symbol {
	if fv, ok := r.free[e]; ok {
		return fv
	}
	n := r.exprs.Node(e)
	var fv []symbol.Symbol
	switch n.Type {
	case eval.NT_VAR:
		fv = []symbol.Symbol{n.Sym}
	case eval.NT_ADD, eval.NT_EQ, eval.NT_CALL:
		fv = union(r.Free(n.X), r.Free(n.Y))
	case eval.NT_IF:
		fv = union(union(r.Free(n.X), r.Free(n.Y)), r.Free(n.Z))
	case eval.NT_CLOSURE:
		if n.Env != eval.NoEnv {
			// a closure's free names live in its captured environment.
			break
		}
		for _, sym := range r.Free(n.X) {
			if sym != n.Sym {
				fv = append(fv, sym)
			}
		}
	}
	r.free[e] = fv
	return fv
}

func union(a, b []symbol.Symbol) []symbol.Symbol {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := append([]symbol.Symbol{}, a...)
	for _, sym := range b {
		if !contains(a, sym) {
			out = append(out, sym)
		}
	}
	return out
}

func contains(syms []symbol.Symbol, sym symbol.Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
