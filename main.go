package main

// implements the lox command: runs a script, or starts a repl

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"lox/config"
	"lox/eval"
	"lox/parser"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lox.cli'
func tracer() tracing.Trace {
	return tracing.Select("lox.cli")
}

var VERSION string

// exit codes
const (
	EX_USAGE    = 64
	EX_DATAERR  = 65
	EX_SOFTWARE = 70
)

var traceKeys = []string{"lox.cli", "lox.lexer", "lox.parser", "lox.resolver", "lox.eval"}

func sliceVersion(v string) string {
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	cfgPath := flag.String("config", config.DefaultPath, "Configuration file")
	dump := flag.Bool("dump", false, "Print the syntax tree of every program before running it")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: lox [flags] [script]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(EX_USAGE)
	}
	if *tlevel != "" {
		cfg.Trace = *tlevel
	}
	setTraceLevel(cfg.Trace)
	initDisplay(cfg.Color)

	session := eval.NewSession("<stdin>", os.Stdout, report)
	session.Interpreter().MaxDepth = cfg.MaxCallDepth
	if *dump {
		session.Dump = dumpTree
	}

	switch flag.NArg() {
	case 0:
		session.Echo = cfg.Echo
		repl(session, cfg)
	case 1:
		os.Exit(runFile(session, flag.Arg(0)))
	default:
		flag.Usage()
		os.Exit(EX_USAGE)
	}
}

func setTraceLevel(name string) {
	level := tracing.TraceLevelFromString(name)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", name)
}

// We use pterm for moderately fancy output.
func initDisplay(color bool) {
	pterm.EnableDebugMessages()
	infoStyle := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	errorStyle := pterm.NewStyle(pterm.BgRed, pterm.FgBlack)
	if !color {
		infoStyle, errorStyle = pterm.NewStyle(), pterm.NewStyle()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: infoStyle,
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: errorStyle,
	}
}

// report is the diagnostics sink of the session.
func report(err error) {
	pterm.Error.Println(err.Error())
}

func runFile(session *eval.Session, path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err.Error())
		return EX_USAGE
	}
	session.Filename = path
	switch session.Run(string(source)) {
	case eval.STATUS_STATIC_ERROR:
		return EX_DATAERR
	case eval.STATUS_RUNTIME_ERROR:
		return EX_SOFTWARE
	}
	return 0
}

func repl(session *eval.Session, cfg *config.Config) {
	pterm.Info.Println("lox " + sliceVersion(VERSION))
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.History,
	})
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(EX_SOFTWARE)
	}
	defer rl.Close()
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		session.Run(line)
	}
}

func dumpTree(stmts []parser.Stmt) {
	ll := leveledProgram(stmts)
	tracer().Debugf("|ll| = %d", len(ll))
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}
