package eval

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=ErrorKind

type ErrorKind uint8

const (
	_ = ErrorKind(iota)
	UnboundVariable
	TypeMismatch
	NotAFunction
	// a closure without a captured environment reached application;
	// this means the evaluator itself is broken.
	UnboundClosureEnv
	DepthExceeded
)

// Error is a runtime error. Every Error aborts the Eval call it occurs in.
type Error struct {
	Kind ErrorKind
	// Op is the node whose operands were rejected (NT_ADD, NT_EQ, NT_IF,
	// NT_CALL), zero for UnboundVariable and DepthExceeded.
	Op NodeType
	// Expected is the value kind Op needed, zero when any matching pair
	// would do (==).
	Expected NodeType
	// Found holds the kinds of the offending values, Values their text.
	Found  []NodeType
	Values []string
	// Name is the unbound variable.
	Name  string
	Depth int
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrUnboundVariable   = &Error{Kind: UnboundVariable}
	ErrTypeMismatch      = &Error{Kind: TypeMismatch}
	ErrNotAFunction      = &Error{Kind: NotAFunction}
	ErrUnboundClosureEnv = &Error{Kind: UnboundClosureEnv}
	ErrDepthExceeded     = &Error{Kind: DepthExceeded}
)

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnboundVariable:
		return fmt.Sprintf("unbound variable %s", e.Name)
	case TypeMismatch:
		if e.Expected == 0 {
			return fmt.Sprintf("type mismatch in %s: cannot compare %s", opName(e.Op), e.found(" with "))
		}
		return fmt.Sprintf("type mismatch in %s: expected %s, found %s",
			opName(e.Op), kindName(e.Expected), e.found(" and "))
	case NotAFunction:
		return fmt.Sprintf("not a function: %s", e.found(""))
	case UnboundClosureEnv:
		return fmt.Sprintf("closure %s applied without a captured environment", e.found(""))
	case DepthExceeded:
		return fmt.Sprintf("evaluation exceeded maximum depth %d", e.Depth)
	}
	return e.Kind.String()
}

func (e *Error) found(sep string) string {
	parts := make([]string, len(e.Found))
	for i, t := range e.Found {
		if i < len(e.Values) {
			parts[i] = fmt.Sprintf("%s (%s)", kindName(t), e.Values[i])
		} else {
			parts[i] = kindName(t)
		}
	}
	return strings.Join(parts, sep)
}

// ============
// constructors
// ============

func (ctx *Context) errUnbound(n Node) *Error {
	return &Error{Kind: UnboundVariable, Name: ctx.Symbols.Name(n.Sym)}
}

func (ctx *Context) errMismatch(op, expected NodeType, values ...Expr) *Error {
	err := &Error{Kind: TypeMismatch, Op: op, Expected: expected}
	for _, v := range values {
		err.Found = append(err.Found, ctx.Exprs.Type(v))
		err.Values = append(err.Values, ctx.Inspect(v))
	}
	return err
}

func (ctx *Context) errCall(kind ErrorKind, fn Expr) *Error {
	return &Error{
		Kind:   kind,
		Op:     NT_CALL,
		Found:  []NodeType{ctx.Exprs.Type(fn)},
		Values: []string{ctx.Inspect(fn)},
	}
}
