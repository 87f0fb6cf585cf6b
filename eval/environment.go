package eval

import (
	"fmt"
	"lam/symbol"
	"sort"
	"sync"

	"github.com/benbjohnson/immutable"
)

// bindings is one immutable environment snapshot. Set returns a new map
// sharing structure with the old one.
type bindings = immutable.Map[symbol.Symbol, Expr]

type symbolHasher struct{}

// Hash spreads sequential symbol ids over the trie's 32 bits.
func (symbolHasher) Hash(s symbol.Symbol) uint32 { return uint32(s) * 0x9E3779B1 }
func (symbolHasher) Equal(a, b symbol.Symbol) bool { return a == b }

// Arena stores environment snapshots behind Env handles. Snapshots are
// never mutated or evicted, so a handle always denotes the same mapping.
type Arena struct {
	mu    sync.RWMutex
	snaps []*bindings // snaps[0] is reserved for NoEnv
	empty Env
}

func NewArena() *Arena {
	a := &Arena{snaps: []*bindings{nil}}
	a.empty = a.register(immutable.NewMap[symbol.Symbol, Expr](symbolHasher{}))
	return a
}

func (a *Arena) register(m *bindings) Env {
	a.mu.Lock()
	defer a.mu.Unlock()
	env := Env(len(a.snaps))
	a.snaps = append(a.snaps, m)
	return env
}

func (a *Arena) snapshot(env Env) *bindings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if env == NoEnv || int(env) >= len(a.snaps) {
		panic(fmt.Sprintf("eval: unknown environment handle %d", uint32(env)))
	}
	return a.snaps[env]
}

// Empty returns the environment with no bindings. It is the same handle
// on every call.
func (a *Arena) Empty() Env { return a.empty }

// Insert returns a new environment that is env with sym bound to value.
// env itself is left untouched.
func (a *Arena) Insert(env Env, sym symbol.Symbol, value Expr) Env {
	return a.register(a.snapshot(env).Set(sym, value))
}

// InsertName is Insert with the name interned into syms first.
func (a *Arena) InsertName(syms *symbol.Table, env Env, name string, value Expr) Env {
	return a.Insert(env, syms.Intern(name), value)
}

// Get looks sym up in env.
func (a *Arena) Get(env Env, sym symbol.Symbol) (Expr, bool) {
	return a.snapshot(env).Get(sym)
}

// Binding is one entry of an environment.
type Binding struct {
	Sym   symbol.Symbol
	Value Expr
}

// Bindings lists env's entries ordered by symbol.
func (a *Arena) Bindings(env Env) []Binding {
	m := a.snapshot(env)
	out := make([]Binding, 0, m.Len())
	for it := m.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		out = append(out, Binding{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sym < out[j].Sym })
	return out
}

// Size returns the number of bindings in env.
func (a *Arena) Size(env Env) int { return a.snapshot(env).Len() }

// Len returns the number of snapshots registered so far.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.snaps) - 1
}
