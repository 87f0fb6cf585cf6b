package eval_test

import (
	"errors"
	"fmt"
	"lam/eval"
	"lam/parser"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
)

// evalEq evaluates e under the empty environment and compares the result
// to expected by handle.
func evalEq(t *testing.T, ctx *eval.Context, e, expected eval.Expr) {
	t.Helper()
	got, err := ctx.Eval(e, ctx.Empty())
	if err != nil {
		t.Errorf("%s: unexpected error: %s", ctx.Inspect(e), err)
		return
	}
	if got != expected {
		t.Errorf("%s: expected=%s, got=%s", ctx.Inspect(e), ctx.Inspect(expected), ctx.Inspect(got))
	}
}

// evalErr evaluates e under the empty environment and expects an error
// matching target.
func evalErr(t *testing.T, ctx *eval.Context, e eval.Expr, target error) *eval.Error {
	t.Helper()
	got, err := ctx.Eval(e, ctx.Empty())
	if err == nil {
		t.Errorf("%s: expected %s, got value %s", ctx.Inspect(e), target, ctx.Inspect(got))
		return nil
	}
	if !errors.Is(err, target) {
		t.Errorf("%s: expected %s, got %s", ctx.Inspect(e), target, err)
	}
	var rerr *eval.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("%s: expected *eval.Error, got %T", ctx.Inspect(e), err)
	}
	return rerr
}

func TestIntAddition(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	evalEq(t, ctx, x.Add(x.Int(2), x.Int(3)), x.Int(5))
	evalEq(t, ctx, x.Add(x.Add(x.Int(-2), x.Int(3)), x.Int(10)), x.Int(11))
}

func TestIntAdditionWraps(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	evalEq(t, ctx, x.Add(x.Int(math.MaxInt32), x.Int(1)), x.Int(math.MinInt32))
	evalEq(t, ctx, x.Add(x.Int(math.MinInt32), x.Int(-1)), x.Int(math.MaxInt32))
}

func TestIntAdditionTypeMismatch(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	err := evalErr(t, ctx, x.Add(x.Int(2), x.Bool(true)), eval.ErrTypeMismatch)
	if err != nil && (err.Op != eval.NT_ADD || err.Expected != eval.NT_INT) {
		t.Errorf("expected op=+ expected=int, got op=%s expected=%s", err.Op, err.Expected)
	}
	evalErr(t, ctx, x.Add(x.Lambda("x", x.Var("x")), x.Int(1)), eval.ErrTypeMismatch)
}

func TestBoolEquality(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	evalEq(t, ctx, x.Eq(x.Bool(true), x.Bool(true)), x.Bool(true))
	evalEq(t, ctx, x.Eq(x.Bool(true), x.Bool(false)), x.Bool(false))
}

func TestIntEquality(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	evalEq(t, ctx, x.Eq(x.Int(10), x.Int(10)), x.Bool(true))
	evalEq(t, ctx, x.Eq(x.Int(10), x.Int(20)), x.Bool(false))
	evalEq(t, ctx, x.Eq(x.Add(x.Int(5), x.Int(5)), x.Int(10)), x.Bool(true))
}

func TestEqualityIsStrict(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	err := evalErr(t, ctx, x.Eq(x.Int(1), x.Bool(true)), eval.ErrTypeMismatch)
	if err != nil && err.Op != eval.NT_EQ {
		t.Errorf("expected op ==, got %s", err.Op)
	}
	if err != nil && !strings.Contains(err.Error(), "int (1) with bool (true)") {
		t.Errorf("unexpected message: %s", err)
	}
	id := x.Lambda("x", x.Var("x"))
	evalErr(t, ctx, x.Eq(id, id), eval.ErrTypeMismatch)
}

func TestIfThenElse(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	evalEq(t, ctx, x.If(x.Bool(true), x.Int(42), x.Int(7)), x.Int(42))
	evalEq(t, ctx, x.If(x.Bool(false), x.Int(42), x.Int(7)), x.Int(7))

	err := evalErr(t, ctx, x.If(x.Int(1), x.Int(2), x.Int(3)), eval.ErrTypeMismatch)
	if err != nil && (err.Op != eval.NT_IF || err.Expected != eval.NT_BOOL) {
		t.Errorf("expected op=if expected=bool, got op=%s expected=%s", err.Op, err.Expected)
	}
}

func TestIfShortCircuits(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	illTyped := x.Add(x.Int(1), x.Bool(true))
	unbound := x.Var("nowhere")
	evalEq(t, ctx, x.If(x.Bool(true), x.Int(42), illTyped), x.Int(42))
	evalEq(t, ctx, x.If(x.Bool(false), unbound, x.Int(7)), x.Int(7))
}

func TestCombinedExpression(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	// (5 + 3 == 8) && (2 + 2 == 4), spelled with if.
	cond1 := x.Eq(x.Add(x.Int(5), x.Int(3)), x.Int(8))
	cond2 := x.Eq(x.Add(x.Int(2), x.Int(2)), x.Int(4))
	evalEq(t, ctx, x.If(cond1, cond2, x.Bool(false)), x.Bool(true))
}

func TestLambdaAndApplication(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	inc := x.Lambda("x", x.Add(x.Var("x"), x.Int(1)))
	evalEq(t, ctx, x.Call(inc, x.Int(41)), x.Int(42))
}

func TestClosureCapture(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	lam := x.Lambda("x", x.Var("y"))
	env := ctx.Envs.InsertName(ctx.Symbols, ctx.Empty(), "y", x.Int(3))

	closure, err := ctx.Eval(lam, env)
	if err != nil {
		t.Fatal(err)
	}
	l, captured, ok := x.AsClosure(closure)
	if !ok || captured != env || l.Body != x.Var("y") {
		t.Fatalf("expected a closure over env %d, got %+v over %d", env, l, captured)
	}
	// an evaluated closure is a value and evaluates to itself.
	again, err := ctx.Eval(closure, ctx.Empty())
	if err != nil || again != closure {
		t.Fatalf("closure re-evaluated to %d (err=%v)", again, err)
	}
	if ctx.Inspect(closure) != "<closure x>" {
		t.Errorf("unexpected rendering %q", ctx.Inspect(closure))
	}
	evalEq(t, ctx, x.Call(closure, x.Int(0)), x.Int(3))
}

func TestFunctionComposition(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	f := x.Lambda("x", x.Add(x.Var("x"), x.Int(1)))
	g := x.Lambda("x", x.Add(x.Var("x"), x.Int(10)))

	r, err := ctx.Eval(x.Call(g, x.Int(5)), ctx.Empty())
	if err != nil {
		t.Fatal(err)
	}
	evalEq(t, ctx, x.Call(f, r), x.Int(16))

	h := x.Lambda("x", x.Call(f, x.Call(g, x.Var("x"))))
	evalEq(t, ctx, x.Call(h, x.Int(5)), x.Int(16))
}

func TestNestedLambdas(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	outer := x.Lambda("x", x.Lambda("y", x.Add(x.Var("x"), x.Var("y"))))

	g, err := ctx.Eval(x.Call(outer, x.Int(10)), ctx.Empty())
	if err != nil {
		t.Fatal(err)
	}
	evalEq(t, ctx, x.Call(g, x.Int(5)), x.Int(15))
	evalEq(t, ctx, x.Call(x.Call(outer, x.Int(20)), x.Int(6)), x.Int(26))
}

func TestLexicalScope(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	// (lambda x -> lambda y -> x) 1, then applied where x is 99.
	k := x.Lambda("x", x.Lambda("y", x.Var("x")))
	f, err := ctx.Eval(x.Call(k, x.Int(1)), ctx.Empty())
	if err != nil {
		t.Fatal(err)
	}
	env := ctx.Envs.InsertName(ctx.Symbols, ctx.Empty(), "x", x.Int(99))
	got, err := ctx.Eval(x.Call(f, x.Int(2)), env)
	if err != nil {
		t.Fatal(err)
	}
	if got != x.Int(1) {
		t.Fatalf("free x resolved dynamically: got %s", ctx.Inspect(got))
	}
}

// triangular builds Z (lambda f -> lambda n -> if n == 0 then 0 else n + f (n + -1)).
func triangular(x *eval.Interner) eval.Expr {
	v := x.Var
	// Z = λf. (λx. f (λv. (x x) v)) (λx. f (λv. (x x) v))
	inner := x.Lambda("v", x.Call(x.Call(v("x"), v("x")), v("v")))
	half := x.Lambda("x", x.Call(v("f"), inner))
	z := x.Lambda("f", x.Call(half, half))

	sum := x.Add(v("n"), x.Call(v("tri_rec"), x.Add(v("n"), x.Int(-1))))
	tri := x.Lambda("tri_rec", x.Lambda("n", x.If(x.Eq(v("n"), x.Int(0)), x.Int(0), sum)))
	return x.Call(z, x.Lambda("f", x.Call(tri, v("f"))))
}

func TestTriangularWithZCombinator(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	tri := triangular(x)
	evalEq(t, ctx, x.Call(tri, x.Int(3)), x.Int(6))
	evalEq(t, ctx, x.Call(tri, x.Int(53)), x.Int(1431))
}

func TestTriangularFromSource(t *testing.T) {
	ctx := eval.NewContext()
	src := `
(lambda f -> (lambda x -> f (lambda v -> x x v)) (lambda x -> f (lambda v -> x x v)))
  (lambda f -> (lambda tri_rec -> lambda n -> if n == 0 then 0 else n + tri_rec (n + -1)) f)
  53`
	e, err := parser.ParseExpr(ctx.Exprs, src)
	if err != nil {
		t.Fatal(err)
	}
	evalEq(t, ctx, e, ctx.Exprs.Int(1431))
	// the parsed function is the very same node the helpers build.
	if e != ctx.Exprs.Call(triangular(ctx.Exprs), ctx.Exprs.Int(53)) {
		t.Errorf("parsed and constructed triangular differ")
	}
}

func TestUnboundVariable(t *testing.T) {
	ctx := eval.NewContext()
	err := evalErr(t, ctx, ctx.Exprs.Var("q"), eval.ErrUnboundVariable)
	if err != nil && (err.Name != "q" || err.Error() != "unbound variable q") {
		t.Errorf("unexpected error %q (name %q)", err, err.Name)
	}
}

func TestNotAFunction(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	err := evalErr(t, ctx, x.Call(x.Int(42), x.Int(1)), eval.ErrNotAFunction)
	if err != nil && err.Error() != "not a function: int (42)" {
		t.Errorf("unexpected message %q", err)
	}
	// the argument is not evaluated once the callee is known to be bad.
	evalErr(t, ctx, x.Call(x.Bool(true), x.Var("nowhere")), eval.ErrNotAFunction)
}

func TestUnboundClosureEnv(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	// smuggle a syntactic lambda into an environment; variable lookup
	// does not evaluate it, so it reaches application without an env.
	env := ctx.Envs.InsertName(ctx.Symbols, ctx.Empty(), "f", x.Lambda("x", x.Var("x")))
	_, err := ctx.Eval(x.Call(x.Var("f"), x.Int(1)), env)
	if !errors.Is(err, eval.ErrUnboundClosureEnv) {
		t.Fatalf("expected %s, got %v", eval.ErrUnboundClosureEnv, err)
	}
}

func TestErrorsPropagate(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	inc := x.Lambda("x", x.Add(x.Var("x"), x.Var("oops")))
	evalErr(t, ctx, x.Add(x.Int(1), x.Call(inc, x.Int(1))), eval.ErrUnboundVariable)
	evalErr(t, ctx, x.Call(inc, x.Var("missing")), eval.ErrUnboundVariable)
}

func TestMaxDepth(t *testing.T) {
	ctx := eval.NewContext(eval.WithMaxDepth(500))
	x := ctx.Exprs
	self := x.Lambda("x", x.Call(x.Var("x"), x.Var("x")))
	err := evalErr(t, ctx, x.Call(self, self), eval.ErrDepthExceeded)
	if err != nil && err.Depth != 500 {
		t.Errorf("expected depth 500, got %d", err.Depth)
	}
	// bounded programs are unaffected.
	evalEq(t, ctx, x.Call(triangular(x), x.Int(10)), x.Int(55))
}

// recordingTracer keeps debug lines; the embedded Trace is never called.
type recordingTracer struct {
	tracing.Trace
	level tracing.TraceLevel
	lines []string
}

func (r *recordingTracer) GetTraceLevel() tracing.TraceLevel { return r.level }
func (r *recordingTracer) Debugf(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestTracing(t *testing.T) {
	tracer := &recordingTracer{level: tracing.LevelDebug}
	ctx := eval.NewContext(eval.WithTracer(tracer))
	x := ctx.Exprs
	evalEq(t, ctx, x.Call(x.Lambda("x", x.Var("x")), x.Int(1)), x.Int(1))
	out := strings.Join(tracer.lines, "\n")
	if !strings.Contains(out, "capture param=x") || !strings.Contains(out, "apply param=x arg=1") {
		t.Errorf("expected capture and apply traces, got:\n%s", out)
	}

	quiet := &recordingTracer{level: tracing.LevelInfo}
	ctx = eval.NewContext(eval.WithTracer(quiet))
	x = ctx.Exprs
	evalEq(t, ctx, x.Call(x.Lambda("x", x.Var("x")), x.Int(1)), x.Int(1))
	if len(quiet.lines) != 0 {
		t.Errorf("expected no traces below debug level, got %v", quiet.lines)
	}
}

func TestConcurrentEval(t *testing.T) {
	ctx := eval.NewContext()
	x := ctx.Exprs
	tri := triangular(x)
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(n int32) {
			defer wg.Done()
			got, err := ctx.Eval(x.Call(tri, x.Int(n)), ctx.Empty())
			if err != nil {
				errs <- err
				return
			}
			if got != x.Int(n*(n+1)/2) {
				errs <- errors.New("wrong sum for " + ctx.Inspect(x.Int(n)) + ": " + ctx.Inspect(got))
			}
		}(int32(20 + w))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
