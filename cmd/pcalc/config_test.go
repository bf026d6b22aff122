package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/procalc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefaultConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.repl")
	defer teardown()
	//
	conf, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.Trace != "Info" || conf.MaxDepth != runtime.DefaultMaxDepth || conf.Scoping != nil {
		t.Errorf("unexpected default configuration %+v", conf)
	}
	if len(conf.machineOptions()) != 1 {
		t.Errorf("expected default configuration to set the depth limit only")
	}
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.repl")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "pcalc.yaml")
	yml := "trace: Debug\nmax_depth: 100\nscoping: false\nstore: envs.db\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Trace != "Debug" || conf.MaxDepth != 100 || conf.Store != "envs.db" {
		t.Errorf("unexpected configuration %+v", conf)
	}
	m := runtime.NewMachine(conf.machineOptions()...)
	if m.MaxDepth() != 100 || m.Scoping() {
		t.Errorf("expected configuration to be applied to the machine")
	}
	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, nil, 0o644)
	if conf, err = loadConfig(empty); err != nil || conf.MaxDepth != runtime.DefaultMaxDepth {
		t.Errorf("expected empty config file to yield defaults, have %+v / %v", conf, err)
	}
	if _, err = loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected missing config file to fail")
	}
}
