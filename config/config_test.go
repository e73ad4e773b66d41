// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatrix/config"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/katalvlaran/lvmatrix/parallel"
	"github.com/katalvlaran/lvmatrix/storage"
)

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "dense", c.Storage)
	require.Equal(t, "double", c.ValueKind)
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
threads: 3
policy: equidistant
storage: sparse
sparse_capacity: 16
layout: column
log_level: debug
`))
	require.NoError(t, err)
	require.Equal(t, 3, c.Threads)
	require.Equal(t, "equidistant", c.Policy)
	require.Equal(t, "double", c.ValueKind, "omitted key keeps the default")

	m, err := matrix.New(coords.Size{4, 4}, c.MatrixOptions()...)
	require.NoError(t, err)
	require.Equal(t, matrix.SparseStorage, m.StorageKind())
	ss, ok := m.(matrix.SparseStore)
	require.True(t, ok)
	require.Equal(t, 16, ss.Capacity())

	p := c.Pool()
	defer p.Close()
	require.Equal(t, 3, p.Threads())
	require.Equal(t, parallel.Equidistant, p.Policy())
}

func TestParseEmptyDocument(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "thread: 2"},
		{"negative threads", "threads: -1"},
		{"bad policy", "policy: random"},
		{"bad storage", "storage: cloud"},
		{"bad kind", "value_kind: complex"},
		{"bad capacity", "sparse_capacity: -4"},
		{"bad layout", "layout: diagonal"},
		{"bad level", "log_level: loud"},
		{"not yaml", "threads: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 2\nlog_level: warn\n"), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)

	prev := log.GetLevel()
	t.Cleanup(func() {
		log.SetLevel(prev)
		parallel.SetDefault(parallel.NewPool())
	})
	c.Apply()
	require.Equal(t, log.WarnLevel, log.GetLevel())
	require.Equal(t, 2, parallel.Default().Threads())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := config.Default()
	c.Threads = 5
	c.Layout = "column"
	data, err := c.Marshal()
	require.NoError(t, err)

	back, err := config.Parse(data)
	require.NoError(t, err)
	require.Equal(t, c, back)

	m, err := matrix.New(coords.Size{2, 2}, back.MatrixOptions()...)
	require.NoError(t, err)
	_, layout, ok := matrix.AsDoubleArray(m)
	require.True(t, ok)
	require.Equal(t, storage.ColumnMajor, layout)
}
