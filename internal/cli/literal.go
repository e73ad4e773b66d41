// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatrix/matrix"
)

var errLiteral = errors.New("matrix literal must be a rectangular sequence of numbers")

// parseMatrix decodes a YAML/JSON flow literal: "[[1,2],[3,4]]" is 2×2,
// "[1,2,3]" is 1×3 and "5" is 1×1. Storage follows the configuration.
func parseMatrix(lit string) (matrix.Matrix, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(lit), &node); err != nil {
		return nil, fmt.Errorf("%q: %w", lit, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("%q: %w", lit, errLiteral)
	}
	var rows [][]float64
	switch top := node.Content[0]; {
	case top.Kind == yaml.ScalarNode:
		var v float64
		if err := top.Decode(&v); err != nil {
			return nil, fmt.Errorf("%q: %w", lit, errLiteral)
		}
		rows = [][]float64{{v}}
	case top.Kind == yaml.SequenceNode && len(top.Content) > 0 && top.Content[0].Kind == yaml.SequenceNode:
		if err := top.Decode(&rows); err != nil {
			return nil, fmt.Errorf("%q: %w", lit, errLiteral)
		}
	case top.Kind == yaml.SequenceNode:
		var row []float64
		if err := top.Decode(&row); err != nil {
			return nil, fmt.Errorf("%q: %w", lit, errLiteral)
		}
		rows = [][]float64{row}
	default:
		return nil, fmt.Errorf("%q: %w", lit, errLiteral)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%q: %w", lit, errLiteral)
	}

	m, err := matrix.FromRows(rows, settings.MatrixOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", lit, err)
	}

	return m, nil
}

// outputWidth resolves --width: -1 asks the terminal behind stdout, and
// falls back to no clipping when stdout is not a terminal.
func outputWidth(flag int) int {
	if flag >= 0 {
		return flag
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return w
}
