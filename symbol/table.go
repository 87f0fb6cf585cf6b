// Package symbol interns identifier names into small comparable handles.
// A Table only ever grows; handles stay valid for the lifetime of the table.
package symbol

import (
	"fmt"
	"sync"
)

// Symbol is an interned name. The zero Symbol is never handed out.
type Symbol uint32

// None is the zero Symbol.
const None Symbol = 0

func (s Symbol) IsValid() bool { return s != None }

type Table struct {
	mu     sync.RWMutex
	byName map[string]Symbol
	byID   []string // byID[0] is reserved for None
}

func NewTable() *Table {
	return &Table{
		byName: map[string]Symbol{},
		byID:   []string{""},
	}
}

// Intern returns the symbol for name, allocating one on first use.
func (t *Table) Intern(name string) Symbol {
	t.mu.RLock()
	sym, ok := t.byName[name]
	t.mu.RUnlock()
	if ok {
		return sym
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// someone may have won the race between the two locks.
	if sym, ok := t.byName[name]; ok {
		return sym
	}
	sym = Symbol(len(t.byID))
	t.byName[name] = sym
	t.byID = append(t.byID, name)
	return sym
}

// Lookup reports the symbol for name without interning it.
func (t *Table) Lookup(name string) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sym, ok := t.byName[name]
	return sym, ok
}

// Name returns the string a symbol was interned from. It panics on a
// symbol that did not come from this table.
func (t *Table) Name(sym Symbol) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if sym == None || int(sym) >= len(t.byID) {
		panic(fmt.Sprintf("symbol: unknown symbol %d", uint32(sym)))
	}
	return t.byID[sym]
}

// Len returns the number of interned names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID) - 1
}
