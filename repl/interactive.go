// Package repl runs lam source interactively: lex, parse, resolve and
// evaluate against a session environment that :let extends.
package repl

import (
	"fmt"
	"lam/eval"
	"lam/parser"
	"lam/resolver"
	"lam/symbol"
	"sort"
	"strings"
)

type InteractiveContext struct {
	Filename string
	// Warn receives free-variable warnings; nil drops them.
	Warn func(error)

	ctx *eval.Context
	res *resolver.Resolver
	env eval.Env
}

func NewInteractiveContext(ctx *eval.Context) *InteractiveContext {
	fn := "<stdin>"
	return &InteractiveContext{
		Filename: fn,
		ctx:      ctx,
		res:      resolver.New(fn, ctx.Exprs),
		env:      ctx.Empty(),
	}
}

// Env returns the session environment.
func (ic *InteractiveContext) Env() eval.Env { return ic.env }

func (ic *InteractiveContext) Inspect(e eval.Expr) string { return ic.ctx.Inspect(e) }

// Run evaluates every expression in input and returns the value of the
// last one. Syntax errors are all reported and nothing runs; evaluation
// stops at the first runtime error.
func (ic *InteractiveContext) Run(input string) (eval.Expr, []error) {
	exprs, errs := parser.ParseString(ic.ctx.Exprs, ic.Filename, input)
	if len(errs) != 0 {
		return eval.NoExpr, errs
	}
	ic.warn(exprs...)
	rv := eval.NoExpr
	for _, e := range exprs {
		v, err := ic.ctx.Eval(e, ic.env)
		if err != nil {
			return eval.NoExpr, []error{err}
		}
		rv = v
	}
	return rv, nil
}

func (ic *InteractiveContext) warn(exprs ...eval.Expr) {
	if ic.Warn == nil {
		return
	}
	for _, e := range exprs {
		ic.res.ResolveOne(e)
	}
	for _, err := range ic.res.Errors {
		ic.Warn(err)
	}
	ic.res.Errors = ic.res.Errors[:0]
}

// Let evaluates src and binds the result to name in the session
// environment.
func (ic *InteractiveContext) Let(name, src string) (eval.Expr, []error) {
	v, errs := ic.Run(src)
	if len(errs) != 0 {
		return eval.NoExpr, errs
	}
	if v == eval.NoExpr {
		return eval.NoExpr, []error{fmt.Errorf(":let %s needs an expression", name)}
	}
	ic.env = ic.ctx.Envs.InsertName(ic.ctx.Symbols, ic.env, name, v)
	sym, _ := ic.ctx.Symbols.Lookup(name)
	ic.res.AddGlobals([]symbol.Symbol{sym})
	return v, nil
}

// Bindings lists the session environment as "name = value" lines,
// sorted by name.
func (ic *InteractiveContext) Bindings() []string {
	var out []string
	for _, b := range ic.ctx.Envs.Bindings(ic.env) {
		out = append(out, fmt.Sprintf("%s = %s", ic.ctx.Symbols.Name(b.Sym), ic.Inspect(b.Value)))
	}
	sort.Strings(out)
	return out
}

// Free lists the free variables of src.
func (ic *InteractiveContext) Free(src string) ([]string, error) {
	e, err := parser.ParseExpr(ic.ctx.Exprs, src)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, sym := range ic.res.Free(e) {
		names = append(names, ic.ctx.Symbols.Name(sym))
	}
	return names, nil
}

// Stats reports the sizes of the shared stores.
func (ic *InteractiveContext) Stats() string {
	return strings.Join([]string{
		fmt.Sprintf("symbols:      %d", ic.ctx.Symbols.Len()),
		fmt.Sprintf("expressions:  %d", ic.ctx.Exprs.Len()),
		fmt.Sprintf("environments: %d", ic.ctx.Envs.Len()),
	}, "\n")
}
