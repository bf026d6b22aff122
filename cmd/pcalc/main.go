package main

import (
	"flag"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/procalc/builtins"
	"github.com/npillmayer/procalc/envstore"
	"github.com/npillmayer/procalc/runtime"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI, where users may enter statements of the
// calculator language. Every complete input is run and its value printed.
// Variables and functions live on between inputs, until the machine is reset
// by a runtime error or by the :reset command.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	conff := flag.String("config", "", "YAML configuration file")
	dbf := flag.String("db", "", "SQLite database for saved environments")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	conf, err := loadConfig(*conff)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if *tlevel != "" {
		conf.Trace = *tlevel
	}
	if *dbf != "" {
		conf.Store = *dbf
	}
	tracer().SetTraceLevel(traceLevel(conf.Trace)) // now set the user supplied level
	tracer().Infof("Trace level is %s", conf.Trace)
	//
	// set up machine and environment store
	opts := append(conf.machineOptions(), runtime.WithCapabilities(builtins.Default()))
	machine := runtime.NewMachine(opts...)
	var store envstore.Store = envstore.NewFileStore("")
	if conf.Store != "" {
		db, err := envstore.OpenSQLStore(conf.Store)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		defer db.Close()
		store = db
	}
	intp := NewIntp(machine, store)
	intp.loadInitFile(*initf) // init file name provided by flag
	//
	// batch mode if input is not a terminal
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		intp.Batch(os.Stdin)
		return
	}
	repl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: conf.HistoryFile,
	})
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Welcome to pcalc") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")    // inform user how to stop the CLI
	intp.REPL()                            // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  =",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
