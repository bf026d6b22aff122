package envstore

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/calclang"
	"github.com/npillmayer/procalc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const program = `y = 2;
z = -0.5;
ok = 1 < 2;
function scale(a) {
    return a * y;
}
function pow2(n) {
    if (n <= 0) {
        return 1;
    }
    return 2 * pow2(n - 1);
}`

func prepare(t *testing.T) *runtime.Machine {
	t.Helper()
	m := runtime.NewMachine()
	head, err := calclang.Parse(program)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = m.Eval(head); err != nil {
		t.Fatal(err)
	}
	return m
}

func call(t *testing.T, m *runtime.Machine, source string) ast.Value {
	t.Helper()
	head, err := calclang.Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	v, err := m.Eval(head)
	if err != nil {
		t.Fatalf("%s: %v", source, err)
	}
	return v
}

func checkRestored(t *testing.T, snap *Snapshot) {
	t.Helper()
	m := runtime.NewMachine()
	if err := Restore(m, snap); err != nil {
		t.Fatal(err)
	}
	if v := call(t, m, "scale(3) + pow2(4) + z;"); v != ast.Number(21.5) {
		t.Errorf("expected restored environment to compute 21.5, have %v", v)
	}
	if v := call(t, m, "ok;"); v != ast.Bool(true) {
		t.Errorf("expected restored ok = true, have %v", v)
	}
}

func TestCapture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	m := prepare(t)
	call(t, m, "nan = 0 / false;")
	snap := Capture(m, "")
	if len(snap.Variables) != 3 || len(snap.Functions) != 2 {
		t.Errorf("expected 3 variables and 2 functions, have %v / %v", snap.Variables, snap.Functions)
	}
	if snap.Variables["z"] != "-0.5" || snap.Variables["ok"] != "true" {
		t.Errorf("unexpected rendering of values: %v", snap.Variables)
	}
	decl := snap.Declarations()
	if !strings.HasPrefix(decl, "ok = true;\ny = 2;\nz = -0.5;\n\nfunction pow2(n) {") {
		t.Errorf("expected declarations in name order, have\n%s", decl)
	}
	checkRestored(t, snap)
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	m := prepare(t)
	fp1, err := Capture(m, "").Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fp2, _ := Capture(m, "").Fingerprint()
	if fp1 != fp2 {
		t.Errorf("expected equal environments to have equal fingerprints")
	}
	call(t, m, "y = 3;")
	if fp3, _ := Capture(m, "").Fingerprint(); fp3 == fp1 {
		t.Errorf("expected changed environment to change the fingerprint")
	}
}

func TestEncodeDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	snap := Capture(prepare(t), "x = 1;\nx + 1;\n")
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if !strings.HasPrefix(text, SourceBlockStart+"\nx = 1;\nx + 1;\n"+SourceBlockEnd+"\n\n") {
		t.Errorf("unexpected environment file format:\n%s", text)
	}
	loaded, err := Decode(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Source != "x = 1;\nx + 1;" {
		t.Errorf("unexpected source block %q", loaded.Source)
	}
	fp1, _ := snap.Fingerprint()
	loaded.Source = snap.Source
	if fp2, _ := loaded.Fingerprint(); fp1 != fp2 {
		t.Errorf("expected decoded declarations to equal the captured ones")
	}
	checkRestored(t, loaded)
}

func TestDecodeWithoutSourceBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	snap, err := Decode(strings.NewReader("a = 1;\nprint(a);\nfunction f() {\n}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Source != "" || snap.Variables["a"] != "1" || snap.Functions["f"] == "" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestFileStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	dir := t.TempDir()
	store := NewFileStore(dir)
	if err := store.Save("calc.env", Capture(prepare(t), "")); err != nil {
		t.Fatal(err)
	}
	snap, err := NewFileStore("").Load(filepath.Join(dir, "calc.env"))
	if err != nil {
		t.Fatal(err)
	}
	checkRestored(t, snap)
	if _, err = store.Load("missing.env"); err == nil {
		t.Errorf("expected loading a missing file to fail")
	}
}

func TestSQLStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.envstore")
	defer teardown()
	//
	store, err := OpenSQLStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	snap := Capture(prepare(t), "y;")
	if err = store.Save("work", snap); err != nil {
		t.Fatal(err)
	}
	if err = store.Save("empty", NewSnapshot("")); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load("work")
	if err != nil {
		t.Fatal(err)
	}
	fp1, _ := snap.Fingerprint()
	if fp2, _ := loaded.Fingerprint(); fp1 != fp2 {
		t.Errorf("expected loaded snapshot to equal the saved one")
	}
	checkRestored(t, loaded)
	snap.Variables = map[string]string{"y": "2"}
	snap.Functions = map[string]string{}
	if err = store.Save("work", snap); err != nil {
		t.Fatal(err)
	}
	if loaded, _ = store.Load("work"); len(loaded.Functions) != 0 || len(loaded.Variables) != 1 {
		t.Errorf("expected saving to replace the previous environment, have %+v", loaded)
	}
	names, err := store.Names()
	if err != nil || len(names) != 2 || names[0] != "empty" || names[1] != "work" {
		t.Errorf("unexpected environment names %v / %v", names, err)
	}
	if _, err = store.Load("nothing"); err == nil {
		t.Errorf("expected loading an unknown environment to fail")
	}
}
