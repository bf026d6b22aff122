package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/procalc/runtime"
	"gopkg.in/yaml.v3"
)

// Config is the content of a pcalc configuration file:
//
//	trace: Info
//	max_depth: 512
//	scoping: true
//	history_file: /tmp/pcalc.history
//	store: envs.db
type Config struct {
	Trace       string `yaml:"trace"`
	MaxDepth    int    `yaml:"max_depth"`
	Scoping     *bool  `yaml:"scoping"`
	HistoryFile string `yaml:"history_file"`
	Store       string `yaml:"store"` // SQLite database for environments
}

func defaultConfig() *Config {
	return &Config{
		Trace:    "Info",
		MaxDepth: runtime.DefaultMaxDepth,
	}
}

// loadConfig reads a YAML configuration file. Settings missing from the file
// keep their defaults. An empty path yields the default configuration.
func loadConfig(path string) (*Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open config file: %w", err)
	}
	defer f.Close()
	if err = yaml.NewDecoder(f).Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	return conf, nil
}

// machineOptions translates the configuration into machine options.
func (conf *Config) machineOptions() []runtime.Option {
	opts := []runtime.Option{runtime.WithMaxDepth(conf.MaxDepth)}
	if conf.Scoping != nil {
		opts = append(opts, runtime.WithScoping(*conf.Scoping))
	}
	return opts
}
