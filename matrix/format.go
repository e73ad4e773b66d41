// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/lvmatrix/coords"
)

// Format renders m as text: 2-D matrices as right-aligned rows, other shapes
// as one "coordinates value" line per cell. Unreadable cells render as "?".
func Format(m Matrix) string {
	return FormatWidth(m, 0)
}

// FormatWidth is Format with every line clipped to width runes (0 = no clip).
// Clipped lines end in "…".
func FormatWidth(m Matrix, width int) string {
	if m == nil {
		return "<nil>"
	}
	var lines []string
	s := m.Size()
	if s.Dims() == 2 {
		lines = format2D(m)
	} else {
		for c := range m.AllCoordinates() {
			lines = append(lines, fmt.Sprintf("%s %s", c, cellText(m, c)))
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", s, m.ValueKind(), m.StorageKind())
	for _, l := range lines {
		b.WriteString(clip(l, width))
		b.WriteByte('\n')
	}

	return b.String()
}

func format2D(m Matrix) []string {
	s := m.Size()
	rows, cols := int(s.Rows()), int(s.Columns())
	cell := make([][]string, rows)
	widths := make([]int, cols)
	for i := 0; i < rows; i++ {
		cell[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			t := cellText(m, coords.Of2(int64(i), int64(j)))
			cell[i][j] = t
			if n := utf8.RuneCountInString(t); n > widths[j] {
				widths[j] = n
			}
		}
	}
	lines := make([]string, rows)
	for i, r := range cell {
		var b strings.Builder
		for j, t := range r {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strings.Repeat(" ", widths[j]-utf8.RuneCountInString(t)))
			b.WriteString(t)
		}
		lines[i] = b.String()
	}

	return lines
}

func cellText(m Matrix, c coords.Coordinates) string {
	t, err := m.Text(c)
	if err != nil {
		return "?"
	}

	return t
}

func clip(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)

	return string(r[:width-1]) + "…"
}
