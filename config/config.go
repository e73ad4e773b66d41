// SPDX-License-Identifier: MIT

// Package config loads the engine settings from YAML and applies them to the
// process-wide Parallel-For pool, the log level and the default matrix
// options.
//
// A complete file:
//
//	threads: 8            # 0 means runtime.NumCPU()
//	policy: block         # block | equidistant
//	storage: dense        # dense | sparse
//	value_kind: double    # double | bigdecimal | biginteger | object | string
//	sparse_capacity: 0    # 0 means unbounded
//	layout: row           # row | column
//	log_level: info       # any logrus level
//
// Omitted keys keep the values of Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/katalvlaran/lvmatrix/parallel"
	"github.com/katalvlaran/lvmatrix/storage"
)

// ErrInvalid is returned for malformed files and out-of-range settings.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the decoded configuration file.
type Config struct {
	Threads        int    `yaml:"threads"`
	Policy         string `yaml:"policy"`
	Storage        string `yaml:"storage"`
	ValueKind      string `yaml:"value_kind"`
	SparseCapacity int    `yaml:"sparse_capacity"`
	Layout         string `yaml:"layout"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Policy:    parallel.Block.String(),
		Storage:   matrix.DefaultStorage.String(),
		ValueKind: matrix.DefaultValueKind.String(),
		Layout:    "row",
		LogLevel:  log.InfoLevel.String(),
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML document from r over Default. Unknown keys are
// rejected; an empty document yields Default.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks every field; all problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Threads < 0 {
		errs = append(errs, fmt.Errorf("threads %d < 0", c.Threads))
	}
	if _, ok := parallel.ParsePolicy(c.Policy); !ok {
		errs = append(errs, fmt.Errorf("policy %q", c.Policy))
	}
	if _, err := matrix.ParseStorageKind(c.Storage); err != nil {
		errs = append(errs, err)
	}
	if _, err := matrix.ParseValueKind(c.ValueKind); err != nil {
		errs = append(errs, err)
	}
	if c.SparseCapacity < 0 {
		errs = append(errs, fmt.Errorf("sparse_capacity %d < 0", c.SparseCapacity))
	}
	if _, err := parseLayout(c.Layout); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

func parseLayout(s string) (storage.Layout, error) {
	switch strings.ToLower(s) {
	case "", "row", "row-major":
		return storage.RowMajor, nil
	case "column", "col", "column-major":
		return storage.ColumnMajor, nil
	default:
		return storage.RowMajor, fmt.Errorf("layout %q", s)
	}
}

// Pool builds a Parallel-For pool from Threads and Policy.
func (c *Config) Pool() *parallel.Pool {
	threads := c.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	policy, _ := parallel.ParsePolicy(c.Policy)

	return parallel.NewPool(parallel.WithThreads(threads), parallel.WithPolicy(policy))
}

// Apply installs the log level and a fresh default pool. c must be valid.
func (c *Config) Apply() {
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	parallel.SetDefault(c.Pool())
	log.WithFields(log.Fields{
		"threads": parallel.Default().Threads(),
		"policy":  c.Policy,
	}).Debug("config: applied")
}

// MatrixOptions converts the storage settings to matrix options. c must be
// valid.
func (c *Config) MatrixOptions() []matrix.Option {
	kind, _ := matrix.ParseValueKind(c.ValueKind)
	sk, _ := matrix.ParseStorageKind(c.Storage)
	layout, _ := parseLayout(c.Layout)
	opts := []matrix.Option{
		matrix.WithValueKind(kind),
		matrix.WithStorage(sk),
		matrix.WithLayout(layout),
	}
	if c.SparseCapacity > 0 {
		opts = append(opts, matrix.WithCapacity(c.SparseCapacity))
	}

	return opts
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
