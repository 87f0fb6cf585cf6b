package repl

import (
	"errors"
	"fmt"
	"lam/eval"
	"regexp"
	"strings"
)

// ErrQuit is returned by Execute for :quit.
var ErrQuit = errors.New("quit")

const help = `expressions are evaluated and printed; ';' separates several.
commands:
  :let name = expr   bind name in the session
  :env               list session bindings
  :free expr         list the free variables of expr
  :stats             sizes of the symbol, expression and environment stores
  :help              this text
  :quit              leave`

var letForm = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*(.*)$`)

// Execute runs one line of REPL input, which is either a command or
// source, and returns the text to print.
func (ic *InteractiveContext) Execute(line string) (string, []error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	if !strings.HasPrefix(line, ":") {
		v, errs := ic.Run(line)
		if len(errs) != 0 || v == eval.NoExpr {
			return "", errs
		}
		return ic.Inspect(v), nil
	}

	cmd, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "let":
		m := letForm.FindStringSubmatch(rest)
		if m == nil {
			return "", []error{fmt.Errorf("usage: :let name = expr")}
		}
		v, errs := ic.Let(m[1], m[2])
		if len(errs) != 0 {
			return "", errs
		}
		return fmt.Sprintf("%s = %s", m[1], ic.Inspect(v)), nil
	case "env":
		return strings.Join(ic.Bindings(), "\n"), nil
	case "free":
		names, err := ic.Free(rest)
		if err != nil {
			return "", []error{err}
		}
		return strings.Join(names, " "), nil
	case "stats":
		return ic.Stats(), nil
	case "help":
		return help, nil
	case "quit", "q":
		return "", []error{ErrQuit}
	}
	return "", []error{fmt.Errorf("unknown command :%s (try :help)", cmd)}
}
