package main

// implements the lam repl and file runner

import (
	"errors"
	"flag"
	"fmt"
	"lam/config"
	"lam/eval"
	"lam/parser"
	"lam/repl"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var VERSION string
var LOGO = `
  |                   |
  |  .-.  .--.-.--.   | lam
  |  (  | |  |  |  |  | version: $VERSION
  |_ '-'-'|  |  |  |  | :help for commands
`

func sliceVersion(v string) string {
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

func reportErrors(src string, errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	fmt.Fprint(os.Stderr, parser.Report(src, errs))
	return true
}

func main() {
	configPath := flag.String("config", "", "configuration file (default ~/"+config.FileName+")")
	expr := flag.String("e", "", "evaluate an expression and exit")
	trace := flag.Bool("trace", false, "log closure capture and application to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts := []eval.Option{eval.WithMaxDepth(cfg.Depth())}
	if *trace || cfg.Trace {
		tracer := gologadapter.New()
		tracer.SetTraceLevel(tracing.LevelDebug)
		opts = append(opts, eval.WithTracer(tracer))
	}
	ic := repl.NewInteractiveContext(eval.NewContext(opts...))
	if !cfg.Quiet {
		ic.Warn = func(err error) { fmt.Fprintf(os.Stderr, "warning: %s\n", err) }
	}

	switch {
	case *expr != "":
		ic.Filename = "<expr>"
		os.Exit(runSource(ic, *expr))
	case flag.NArg() > 0:
		src, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		ic.Filename = flag.Arg(0)
		os.Exit(runSource(ic, string(src)))
	}
	interactive(ic, cfg)
}

// runSource evaluates src and prints the value of its last expression.
func runSource(ic *repl.InteractiveContext, src string) int {
	v, errs := ic.Run(src)
	if reportErrors(src, errs) {
		return 1
	}
	if v != eval.NoExpr {
		fmt.Println(ic.Inspect(v))
	}
	return 0
}

func interactive(ic *repl.InteractiveContext, cfg *config.Config) {
	fmt.Println(strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			break
		}
		out, errs := ic.Execute(line)
		if len(errs) == 1 && errors.Is(errs[0], repl.ErrQuit) {
			break
		}
		if reportErrors(line, errs) {
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
