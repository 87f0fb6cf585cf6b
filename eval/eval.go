// Package eval implements the lam core: an expression interner, an arena
// of persistent environments, and a call-by-value evaluator over both.
package eval

import (
	"fmt"
	"lam/symbol"

	"github.com/npillmayer/schuko/tracing"
)

// Context bundles the three shared stores. A Context is safe for
// concurrent Eval calls.
type Context struct {
	Symbols *symbol.Table
	Exprs   *Interner
	Envs    *Arena

	maxDepth int
	tracer   tracing.Trace
	trace    bool
}

type Option func(*Context)

// WithMaxDepth bounds the evaluator's recursion depth; n <= 0 means no
// bound.
func WithMaxDepth(n int) Option { return func(ctx *Context) { ctx.maxDepth = n } }

// WithTracer sends closure capture and application traces to t. They
// are only produced while t is at debug level.
func WithTracer(t tracing.Trace) Option { return func(ctx *Context) { ctx.tracer = t } }

func NewContext(opts ...Option) *Context {
	syms := symbol.NewTable()
	ctx := &Context{
		Symbols: syms,
		Exprs:   NewInterner(syms),
		Envs:    NewArena(),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	ctx.trace = ctx.tracer != nil && ctx.tracer.GetTraceLevel() == tracing.LevelDebug
	return ctx
}

func (ctx *Context) Empty() Env { return ctx.Envs.Empty() }

// Inspect renders e as source text.
func (ctx *Context) Inspect(e Expr) string { return ctx.Exprs.String(e) }

// Eval reduces e under env to a value.
func (ctx *Context) Eval(e Expr, env Env) (Expr, error) {
	return ctx.eval(e, env, 0)
}

func (ctx *Context) eval(e Expr, env Env, depth int) (Expr, error) {
	if ctx.maxDepth > 0 && depth > ctx.maxDepth {
		return NoExpr, &Error{Kind: DepthExceeded, Depth: ctx.maxDepth}
	}
	n := ctx.Exprs.Node(e)
	switch n.Type {
	case NT_INT, NT_BOOL:
		return e, nil
	case NT_VAR:
		// environments only ever hold evaluated arguments.
		v, ok := ctx.Envs.Get(env, n.Sym)
		if !ok {
			return NoExpr, ctx.errUnbound(n)
		}
		return v, nil
	case NT_ADD:
		return ctx.evalAdd(n, env, depth)
	case NT_EQ:
		return ctx.evalEq(n, env, depth)
	case NT_IF:
		return ctx.evalIf(n, env, depth)
	case NT_CALL:
		return ctx.evalCall(n, env, depth)
	case NT_CLOSURE:
		if n.Env != NoEnv {
			return e, nil
		}
		closure := ctx.Exprs.capture(n.Lambda(), env)
		if ctx.trace {
			ctx.tracer.Debugf("capture param=%s env=%d bindings=%d",
				ctx.Symbols.Name(n.Sym), env, ctx.Envs.Size(env))
		}
		return closure, nil
	}
	panic(fmt.Sprintf("unhandled node %#+v", n))
}

// operands evaluates the two children of a binary node, left first.
func (ctx *Context) operands(n Node, env Env, depth int) (Expr, Expr, error) {
	left, err := ctx.eval(n.X, env, depth+1)
	if err != nil {
		return NoExpr, NoExpr, err
	}
	right, err := ctx.eval(n.Y, env, depth+1)
	if err != nil {
		return NoExpr, NoExpr, err
	}
	return left, right, nil
}

func (ctx *Context) evalAdd(n Node, env Env, depth int) (Expr, error) {
	left, right, err := ctx.operands(n, env, depth)
	if err != nil {
		return NoExpr, err
	}
	l, lok := ctx.Exprs.AsInt(left)
	r, rok := ctx.Exprs.AsInt(right)
	if !lok || !rok {
		return NoExpr, ctx.errMismatch(NT_ADD, NT_INT, left, right)
	}
	// int32 addition wraps.
	return ctx.Exprs.Int(l + r), nil
}

func (ctx *Context) evalEq(n Node, env Env, depth int) (Expr, error) {
	left, right, err := ctx.operands(n, env, depth)
	if err != nil {
		return NoExpr, err
	}
	lt, rt := ctx.Exprs.Type(left), ctx.Exprs.Type(right)
	if lt != rt || (lt != NT_INT && lt != NT_BOOL) {
		return NoExpr, ctx.errMismatch(NT_EQ, 0, left, right)
	}
	// values are interned, so equal values share a handle.
	return ctx.Exprs.Bool(left == right), nil
}

func (ctx *Context) evalIf(n Node, env Env, depth int) (Expr, error) {
	cond, err := ctx.eval(n.X, env, depth+1)
	if err != nil {
		return NoExpr, err
	}
	b, ok := ctx.Exprs.AsBool(cond)
	if !ok {
		return NoExpr, ctx.errMismatch(NT_IF, NT_BOOL, cond)
	}
	if b {
		return ctx.eval(n.Y, env, depth+1)
	}
	return ctx.eval(n.Z, env, depth+1)
}

func (ctx *Context) evalCall(n Node, env Env, depth int) (Expr, error) {
	fn, err := ctx.eval(n.X, env, depth+1)
	if err != nil {
		return NoExpr, err
	}
	lambda, captured, ok := ctx.Exprs.AsClosure(fn)
	if !ok {
		return NoExpr, ctx.errCall(NotAFunction, fn)
	}
	if captured == NoEnv {
		return NoExpr, ctx.errCall(UnboundClosureEnv, fn)
	}
	arg, err := ctx.eval(n.Y, env, depth+1)
	if err != nil {
		return NoExpr, err
	}
	inner := ctx.Envs.Insert(captured, lambda.Param, arg)
	if ctx.trace {
		ctx.tracer.Debugf("apply param=%s arg=%s env=%d depth=%d",
			ctx.Symbols.Name(lambda.Param), ctx.Inspect(arg), inner, depth)
	}
	return ctx.eval(lambda.Body, inner, depth+1)
}
