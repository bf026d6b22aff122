package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/calclang"
	"github.com/npillmayer/procalc/envstore"
	"github.com/npillmayer/procalc/runtime"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pterm/pterm"
)

// maxTrace is the number of trace entries shown for a runtime error.
const maxTrace = 5

const (
	prompt     = "pcalc> "
	contPrompt = "  ...> "
)

// Intp is our interpreter object
type Intp struct {
	machine    *runtime.Machine
	repl       *readline.Instance // nil in batch mode
	store      envstore.Store
	source     strings.Builder // source of all successful runs since the last reset
	pending    strings.Builder // input waiting for braces to close
	lastValue  ast.Value
	savedPrint string // environment fingerprint at the last save/load
	quitWarned bool
}

// NewIntp creates an interpreter for a machine, saving environments to store.
func NewIntp(m *runtime.Machine, store envstore.Store) *Intp {
	intp := &Intp{
		machine: m,
		store:   store,
	}
	intp.savedPrint = intp.fingerprint()
	return intp
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	intp.Batch(f)
	tracer().Infof("Loaded init file %s", filename)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			intp.pending.Reset()
			intp.repl.SetPrompt(prompt)
			continue
		} else if err != nil { // io.EOF
			break
		}
		if intp.Feed(line) {
			break
		}
		if intp.pending.Len() > 0 {
			intp.repl.SetPrompt(contPrompt)
		} else {
			intp.repl.SetPrompt(prompt)
		}
	}
	println("Good bye!")
}

// Batch reads input line by line from r, until EOF or a :quit command.
func (intp *Intp) Batch(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if intp.Feed(scanner.Text()) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading input: %v", err)
	}
	intp.Flush()
}

// Feed accepts a line of input. Meta commands are executed immediately,
// statements are collected until all braces are closed and then run.
// Feed returns true if the user wants to quit.
func (intp *Intp) Feed(line string) bool {
	if intp.pending.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			args := strings.Fields(trimmed[1:])
			if len(args) == 0 {
				return false
			}
			quit, err := intp.Execute(args[0], trimmed, args[1:])
			if err != nil {
				pterm.Error.Println(err.Error())
			}
			return quit
		}
	}
	intp.pending.WriteString(line + "\n")
	if balanced(intp.pending.String()) {
		intp.Flush()
	}
	return false
}

// Flush runs pending input, if any.
func (intp *Intp) Flush() {
	input := intp.pending.String()
	intp.pending.Reset()
	if strings.TrimSpace(input) != "" {
		intp.Eval(input)
	}
}

// Eval parses and runs input as a program. Results are printed. Every run
// starts with the configured block scoping. After a runtime error the
// machine is reset.
func (intp *Intp) Eval(input string) error {
	head, err := calclang.Parse(input)
	if err != nil {
		intp.report(err)
		return err
	}
	intp.machine.RestoreScoping()
	v, err := intp.machine.Eval(head)
	if err != nil {
		intp.report(err)
		if gconf.GetBool("panic-on-runtime-error") {
			panic(err)
		}
		intp.reset()
		return err
	}
	intp.source.WriteString(input)
	intp.lastValue = v
	if v != nil {
		pterm.Info.Println(v.String())
	}
	return nil
}

// report prints an error with its source location and a capped trace.
func (intp *Intp) report(err error) {
	var e *procalc.Error
	if !errors.As(err, &e) {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Error.Printfln("line %d: %s", e.Line, e.Msg)
	if e.Source != "" {
		pterm.Println("> " + e.Source)
	}
	if trace := e.TraceString(maxTrace); trace != "" {
		pterm.Println("Trace (innermost first):")
		pterm.Println(trace)
	}
}

func (intp *Intp) reset() {
	intp.machine.Reset()
	intp.source.Reset()
	intp.lastValue = nil
}

// Execute executes a meta command. line is the complete command line.
func (intp *Intp) Execute(cmd string, line string, args []string) (bool, error) {
	tracer().Debugf("command %s %v", cmd, args)
	if cmd != "quit" {
		intp.quitWarned = false
	}
	globals := intp.machine.Globals()
	switch cmd {
	case "quit", "q":
		if !intp.quitWarned && intp.fingerprint() != intp.savedPrint {
			intp.quitWarned = true
			pterm.Warning.Println("environment has unsaved changes, :quit again to leave")
			return false, nil
		}
		return true, nil
	case "vars":
		for _, name := range sorted(globals.Tags().Each) {
			v, _ := globals.Variable(name)
			pterm.Printfln("%-16s %v", name, v)
		}
	case "funcs":
		names := treeset.NewWithStringComparator()
		globals.EachFunction(func(name string, _ *ast.Function) {
			names.Add(name)
		})
		for _, name := range names.Values() {
			fn := globals.Function(name.(string))
			pterm.Printfln("%s(%s)", fn.Name, strings.Join(fn.ParameterNames(), ", "))
		}
	case "del":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :del NAME")
		}
		if !globals.Unbind(args[0]) && !globals.DeleteFunction(args[0]) {
			return false, fmt.Errorf("%s is neither a variable nor a function", args[0])
		}
	case "set":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: :set NAME EXPR")
		}
		expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":set"))
		expr = strings.TrimSpace(strings.TrimPrefix(expr, args[0]))
		return false, intp.set(args[0], expr)
	case "tree":
		src := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":tree"))
		head, err := calclang.Parse(src)
		if err != nil {
			return false, err
		}
		printTree(head)
	case "save":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :save NAME")
		}
		snap := envstore.Capture(intp.machine, intp.source.String())
		if err := intp.store.Save(args[0], snap); err != nil {
			return false, err
		}
		intp.savedPrint = intp.fingerprint()
		pterm.Success.Printfln("saved environment %s", args[0])
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :load NAME")
		}
		snap, err := intp.store.Load(args[0])
		if err != nil {
			return false, err
		}
		if err = envstore.Restore(intp.machine, snap); err != nil {
			intp.report(err)
			intp.reset()
			return false, nil
		}
		intp.source.Reset()
		intp.source.WriteString(snap.Source)
		intp.savedPrint = intp.fingerprint()
		pterm.Success.Printfln("loaded environment %s", args[0])
	case "reset":
		intp.reset()
	case "help", "h":
		pterm.Println("commands: :vars :funcs :del :set :tree :save :load :reset :quit")
	default:
		return false, fmt.Errorf("unknown command :%s", cmd)
	}
	return false, nil
}

// set assigns the value of an expression to a variable, with the usual
// assignment rules.
func (intp *Intp) set(name, expr string) error {
	x, err := calclang.ParseExpression(expr)
	if err != nil {
		return err
	}
	v, err := intp.machine.Eval(ast.Chain(x))
	if err != nil {
		return err
	}
	return intp.machine.SetVariable(name, v, false)
}

// fingerprint hashes the global environment, without the source block.
func (intp *Intp) fingerprint() string {
	fp, err := envstore.Capture(intp.machine, "").Fingerprint()
	if err != nil {
		tracer().Errorf("cannot compute environment fingerprint: %v", err)
	}
	return fp
}

// balanced tells if all braces and parentheses of input are closed.
// Comments and commands are not considered.
func balanced(input string) bool {
	depth := 0
	for _, line := range strings.Split(input, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			if j := strings.IndexByte(line[i:], ';'); j >= 0 {
				line = line[:i] + line[i+j:]
			} else {
				line = line[:i]
			}
		}
		for _, c := range line {
			switch c {
			case '{', '(':
				depth++
			case '}', ')':
				depth--
			}
		}
	}
	return depth <= 0
}

// sorted collects the names of set tags in order.
func sorted(each func(func(string, *runtime.Tag))) []string {
	set := treeset.NewWithStringComparator()
	each(func(name string, tag *runtime.Tag) {
		if tag.IsSet() {
			set.Add(name)
		}
	})
	names := make([]string, 0, set.Size())
	for _, n := range set.Values() {
		names = append(names, n.(string))
	}
	return names
}
