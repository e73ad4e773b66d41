// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(&out, append(args, "--width", "0")...)

	return out.String(), err
}

func TestParseMatrix(t *testing.T) {
	settings.Storage = "dense"
	tests := []struct {
		lit  string
		size coords.Size
	}{
		{"[[1,2],[3,4]]", coords.Size{2, 2}},
		{"[1, 2, 3]", coords.Size{1, 3}},
		{"7.5", coords.Size{1, 1}},
		{"[[1e3, -2]]", coords.Size{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			m, err := parseMatrix(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.size, m.Size())
		})
	}

	for _, bad := range []string{"", "[]", "[[1,2],[3]]", "[a, b]", "{x: 1}", "[[1,2"} {
		_, err := parseMatrix(bad)
		require.Error(t, err, bad)
	}
}

func TestCalcPlus(t *testing.T) {
	out, err := execute(t, "calc", "plus", "[[1,2],[3,4]]", "[[1,1],[1,1]]")
	require.NoError(t, err)
	require.Equal(t, "2x2 double dense\n2  3\n4  5\n", out)
}

func TestCalcLink(t *testing.T) {
	out, err := execute(t, "calc", "transpose", "[[1,2,3]]", "--ret", "link")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "3x1 double calculation\n"), out)
}

func TestCalcDistance(t *testing.T) {
	out, err := execute(t, "calc", "distance.euclidean", "[[0,0],[3,4]]")
	require.NoError(t, err)
	require.Equal(t, "2x2 double dense\n0  5\n5  0\n", out)
}

func TestCalcErrors(t *testing.T) {
	_, err := execute(t, "calc", "no-such-kernel", "[1]")
	require.ErrorIs(t, err, matrix.ErrUnknownKernel)

	_, err = execute(t, "calc", "plus", "[[1,2]]", "[[1],[2]]")
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	_, err = execute(t, "calc", "plus", "[1]", "[1]", "--ret", "sideways")
	require.Error(t, err)

	_, err = execute(t, "calc", "plus")
	require.Error(t, err)
}

func TestInverseAndMtimes(t *testing.T) {
	out, err := execute(t, "inverse", "[[2,0],[0,4]]")
	require.NoError(t, err)
	require.Contains(t, out, "0.25")

	out, err = execute(t, "mtimes", "[[1,2]]", "[[3],[4]]")
	require.NoError(t, err)
	require.Equal(t, "1x1 double dense\n11\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: sparse\nthreads: 2\n"), 0o600))

	out, err := execute(t, "--config", path, "calc", "minus", "[[1,0],[0,0]]", "[[0,0],[0,2]]")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "2x2 double sparse\n"), out)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "kernels")
	require.Error(t, err)
}

func TestKernelsAndVersion(t *testing.T) {
	out, err := execute(t, "kernels")
	require.NoError(t, err)
	for _, name := range []string{"plus", "transpose", "mtimes", "inv", "distance.dtw"} {
		require.Contains(t, out, name+"\n")
	}

	out, err = execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "lvmatrix "), out)
}
