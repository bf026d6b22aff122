package envstore

import (
	"fmt"
	"math"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/calclang"
	"github.com/npillmayer/procalc/runtime"
)

// Snapshot is the global environment of a machine, rendered to source text.
type Snapshot struct {
	Source    string            // program source kept alongside, may be empty
	Variables map[string]string // variable name → rendered value
	Functions map[string]string // function name → rendered declaration
}

// Store persists snapshots under a name.
type Store interface {
	Save(name string, snap *Snapshot) error
	Load(name string) (*Snapshot, error)
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot(source string) *Snapshot {
	return &Snapshot{
		Source:    source,
		Variables: make(map[string]string),
		Functions: make(map[string]string),
	}
}

// Capture renders the global variables and functions of a machine.
// Variables holding values without a source representation (NaN, ±Inf)
// are skipped.
func Capture(m *runtime.Machine, source string) *Snapshot {
	snap := NewSnapshot(source)
	m.Globals().Tags().Each(func(name string, tag *runtime.Tag) {
		if !tag.IsSet() {
			return
		}
		if n, ok := tag.Value.(ast.Number); ok && (math.IsNaN(float64(n)) || math.IsInf(float64(n), 0)) {
			tracer().Infof("variable %s = %v cannot be saved", name, n)
			return
		}
		snap.Variables[name] = tag.Value.String()
	})
	m.Globals().EachFunction(func(name string, fn *ast.Function) {
		snap.Functions[name] = fn.String()
	})
	tracer().Debugf("captured %d variables, %d functions", len(snap.Variables), len(snap.Functions))
	return snap
}

// Declarations renders the snapshot as a program: assignments first, then
// function declarations, each in name order.
func (snap *Snapshot) Declarations() string {
	var b strings.Builder
	for _, name := range sortedKeys(snap.Variables) {
		fmt.Fprintf(&b, "%s = %s;\n", name, snap.Variables[name])
	}
	for _, name := range sortedKeys(snap.Functions) {
		fmt.Fprintf(&b, "\n%s\n", snap.Functions[name])
	}
	return b.String()
}

// Fingerprint is a hash over the complete snapshot. Two snapshots of equal
// content have equal fingerprints.
func (snap *Snapshot) Fingerprint() (string, error) {
	return structhash.Hash(snap, 1)
}

// Restore parses the declarations of a snapshot and runs them in the global
// scope of m. Existing bindings of equal names are overwritten.
func Restore(m *runtime.Machine, snap *Snapshot) error {
	head, err := calclang.Parse(snap.Declarations())
	if err != nil {
		return err
	}
	if _, err = m.Eval(head); err != nil {
		return err
	}
	tracer().Infof("restored %d variables, %d functions", len(snap.Variables), len(snap.Functions))
	return nil
}

// ParseDeclarations reads declarations as produced by Declarations into a
// snapshot. Statements other than assignments and function declarations
// are ignored.
func ParseDeclarations(source, declarations string) (*Snapshot, error) {
	snap := NewSnapshot(source)
	head, err := calclang.Parse(declarations)
	if err != nil {
		return nil, err
	}
	for _, stmt := range ast.Statements(head.Next()) {
		switch d := stmt.(type) {
		case *ast.Assign:
			snap.Variables[d.Name()] = d.Right().String()
		case *ast.FunctionDeclaration:
			snap.Functions[d.Func.Name] = d.Func.String()
		default:
			tracer().Infof("line %d: ignoring %s statement in declarations", d.Line(), d.Label())
		}
	}
	return snap, nil
}

func sortedKeys(m map[string]string) []string {
	set := treeset.NewWithStringComparator()
	for k := range m {
		set.Add(k)
	}
	keys := make([]string, 0, set.Size())
	for _, k := range set.Values() {
		keys = append(keys, k.(string))
	}
	return keys
}
