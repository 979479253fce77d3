package render

import (
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

const (
	columnGap     = 2
	minColumnW    = 6
	moreInfoWidth = 10
)

// preferredWidths sizes known columns; others default to 16.
var preferredWidths = map[string]int{
	directory.ColumnName:           24,
	directory.ColumnBransch:        28,
	directory.ColumnAICapabilities: 36,
	directory.ColumnWebsite:        28,
	directory.ColumnDescription:    40,
	"location_city":                14,
	"sectors":                      20,
}

// ColumnWidths distributes width across the table columns, the trailing
// Mer info column included. Oversized layouts shrink proportionally down
// to a minimum; spare width goes to the description or the first column.
func ColumnWidths(cols []directory.Column, width int) []int {
	n := len(cols) + 1
	avail := width - columnGap*(n-1)

	widths := make([]int, n)
	total := 0
	for i, c := range cols {
		w, ok := preferredWidths[c.Name]
		if !ok {
			w = 16
		}
		widths[i] = w
		total += w
	}
	widths[n-1] = moreInfoWidth
	total += moreInfoWidth

	switch {
	case total > avail:
		flexible := total - moreInfoWidth
		budget := max(avail-moreInfoWidth, minColumnW*(n-1))
		used := 0
		for i := range n - 1 {
			widths[i] = max(minColumnW, widths[i]*budget/flexible)
			used += widths[i]
		}
		// Hand rounding leftovers to the first column.
		if rest := budget - used; rest > 0 && n > 1 {
			widths[0] += rest
		}
	case total < avail:
		grow := 0
		for i, c := range cols {
			if c.Name == directory.ColumnDescription {
				grow = i
			}
		}
		widths[grow] += avail - total
	}
	return widths
}

// Table draws the desktop listing. Only rows from p.Offset that fit in
// height lines below the header are drawn.
func Table(p Page, width, height int) string {
	if len(p.Rows) == 0 {
		return ""
	}

	cols := make([]directory.Column, 0, len(p.Rows[0].Cells)-1)
	for _, c := range p.Rows[0].Cells[:len(p.Rows[0].Cells)-1] {
		cols = append(cols, c.Column)
	}
	widths := ColumnWidths(cols, width)

	lines := make([]string, 0, height)
	header := make([]string, len(p.Headers))
	for i, h := range p.Headers {
		header[i] = styles.TableHeaderStyle.Render(fit(h, widths[i]))
	}
	lines = append(lines, joinCells(header, widths))

	end := min(len(p.Rows), p.Offset+max(height-1, 1))
	for _, row := range p.Rows[p.Offset:end] {
		lines = append(lines, drawRow(row, widths, width))
	}
	return strings.Join(lines, "\n")
}

// VisibleRows returns how many table rows fit in height lines.
func VisibleRows(height int) int {
	return max(height-1, 1)
}

func drawRow(row Row, widths []int, width int) string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = drawCell(c, widths[i], row.Selected)
	}
	line := ansi.Truncate(joinCells(cells, widths), width, "")
	if row.Selected {
		return styles.TableRowSelectedStyle.Width(width).Render(line)
	}
	return line
}

func drawCell(c Cell, w int, selected bool) string {
	switch {
	case len(c.Chips) > 0:
		parts := make([]string, 0, len(c.Chips)+1)
		for _, chip := range c.Chips {
			parts = append(parts, drawChip(chip))
		}
		if c.More > 0 {
			parts = append(parts, styles.TextMutedStyle.Render("+"+strconv.Itoa(c.More)))
		}
		return fit(strings.Join(parts, " "), w)
	case c.Column.Name == "more_info":
		style := styles.ModalButtonStyle
		if selected {
			style = styles.ModalButtonSelectedStyle
		}
		return fit(style.Render(c.Text), w)
	case c.Truncate:
		return styles.TableCellStyle.Render(fit(directory.Truncate(c.Text, max(w-3, 1)), w))
	case c.Link:
		return fit(styles.LinkStyle.Render(c.Text), w)
	default:
		return styles.TableCellStyle.Render(fit(c.Text, w))
	}
}

func drawChip(c Chip) string {
	if c.Focused {
		return styles.ChipFocusedStyle.Render("[" + c.Value + "]")
	}
	return styles.ChipStyle.Render("[" + c.Value + "]")
}

// fit truncates s to w cells with an ellipsis. ANSI styling is preserved.
func fit(s string, w int) string {
	if ansi.StringWidth(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = lipgloss.NewStyle().Width(widths[i]).MaxWidth(widths[i]).Render(c)
	}
	return strings.Join(padded, strings.Repeat(" ", columnGap))
}

// StringWidth is the display width of s ignoring ANSI sequences.
func StringWidth(s string) int {
	return ansi.StringWidth(s)
}
