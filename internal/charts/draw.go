package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	barHeight     = 8
	minWidth      = 20
	maxLabelWidth = 24
)

var eighths = []rune(" ▁▂▃▄▅▆▇█")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	noDataStyle = lipgloss.NewStyle().Italic(true).Faint(true)
)

// NoData is shown for a chart without data points.
const NoData = "Ingen data"

// Draw renders spec to fit within width terminal columns.
func Draw(spec Spec, width int) string {
	width = max(width, minWidth)

	var body string
	switch {
	case spec.Len() == 0 || spec.Sum() == 0:
		body = noDataStyle.Render(NoData)
	case spec.Kind == KindHorizontalBar:
		body = drawHorizontal(spec, width)
	case spec.Kind == KindDoughnut || spec.Kind == KindPie:
		body = drawSegments(spec, width)
	default:
		body = drawVertical(spec, width)
	}

	return titleStyle.Render(spec.Title) + "\n" + body
}

func maxValue(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

// drawVertical renders numbered block columns with a legend underneath.
func drawVertical(spec Spec, width int) string {
	n := spec.Len()
	values := spec.Values[:n]
	peak := maxValue(values)

	axisW := len(strconv.Itoa(peak)) + 1
	colW := max(1, min(4, (width-axisW)/n-1))
	if (colW+1)*n+axisW > width {
		// Too many points for the width; keep the largest that fit.
		n = max(1, (width-axisW)/2)
		colW = 1
		values = values[:n]
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(accentOr(spec.Accent)))

	// Height of each column in eighths of a row.
	heights := make([]int, n)
	for i, v := range values {
		heights[i] = int(math.Round(float64(v) / float64(peak) * barHeight * 8))
	}

	var b strings.Builder
	for row := barHeight - 1; row >= 0; row-- {
		axis := ""
		if row == barHeight-1 {
			axis = strconv.Itoa(peak)
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%*s│", axisW-1, axis)))

		for _, h := range heights {
			fill := h - row*8
			var r rune
			switch {
			case fill >= 8:
				r = eighths[8]
			case fill <= 0:
				r = ' '
			default:
				r = eighths[fill]
			}
			b.WriteString(bar.Render(strings.Repeat(string(r), colW)))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString(mutedStyle.Render(strings.Repeat(" ", axisW-1) + "└" + strings.Repeat("─", n*(colW+1))))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat(" ", axisW))
	for i := range n {
		b.WriteString(mutedStyle.Render(ansi.Truncate(fmt.Sprintf("%-*d", colW, i+1), colW, "")))
		b.WriteByte(' ')
	}

	for i := range n {
		b.WriteString("\n")
		b.WriteString(legendLine(fmt.Sprintf("%2d", i+1), spec.Labels[i], values[i], width))
	}
	return b.String()
}

// drawHorizontal renders one labelled bar per row.
func drawHorizontal(spec Spec, width int) string {
	n := spec.Len()
	peak := maxValue(spec.Values[:n])

	labelW := 0
	for _, l := range spec.Labels[:n] {
		labelW = max(labelW, ansi.StringWidth(l))
	}
	labelW = min(labelW, maxLabelWidth, width/3)
	countW := len(strconv.Itoa(peak))
	barW := max(1, width-labelW-countW-2)

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(accentOr(spec.Accent)))

	lines := make([]string, n)
	for i := range n {
		label := ansi.Truncate(spec.Labels[i], labelW, "…")
		pad := strings.Repeat(" ", labelW-ansi.StringWidth(label))
		cells := float64(spec.Values[i]) / float64(peak) * float64(barW)
		lines[i] = label + pad + " " + bar.Render(blocks(cells)) + " " + mutedStyle.Render(strconv.Itoa(spec.Values[i]))
	}
	return strings.Join(lines, "\n")
}

// blocks renders a horizontal run of cells with eighth-block precision.
func blocks(cells float64) string {
	full := int(cells)
	frac := int(math.Round((cells - float64(full)) * 8))
	if frac == 8 {
		full++
		frac = 0
	}
	s := strings.Repeat("█", full)
	if frac > 0 {
		s += string([]rune("▏▎▍▌▋▊▉")[frac-1])
	}
	if s == "" {
		s = "▏"
	}
	return s
}

// drawSegments renders a proportional bar of coloured segments, which is
// the terminal form of doughnut and pie charts, followed by a legend with
// percentages.
func drawSegments(spec Spec, width int) string {
	n := spec.Len()
	colors := Palette(n)
	widths := SegmentWidths(spec.Values[:n], width)

	glyph := "█"
	if spec.Kind == KindDoughnut {
		glyph = "▄"
	}

	var ring strings.Builder
	for i, w := range widths {
		ring.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat(glyph, w)))
	}

	rows := []string{ring.String()}
	if spec.Kind == KindPie {
		rows = append(rows, ring.String())
	}

	sum := spec.Sum()
	for i := range n {
		swatch := lipgloss.NewStyle().Foreground(colors[i]).Render("■")
		pct := float64(spec.Values[i]) / float64(sum) * 100
		rows = append(rows, legendLine(swatch, spec.Labels[i], spec.Values[i], width-9)+mutedStyle.Render(fmt.Sprintf(" (%.1f%%)", pct)))
	}
	return strings.Join(rows, "\n")
}

// SegmentWidths splits width columns proportionally to values using the
// largest remainder method. The widths always sum to width when any value
// is positive.
func SegmentWidths(values []int, width int) []int {
	out := make([]int, len(values))
	sum := 0
	for _, v := range values {
		sum += max(v, 0)
	}
	if sum == 0 || width <= 0 {
		return out
	}

	type rem struct {
		i    int
		frac float64
	}
	rems := make([]rem, 0, len(values))
	used := 0
	for i, v := range values {
		exact := float64(max(v, 0)) / float64(sum) * float64(width)
		out[i] = int(exact)
		used += out[i]
		rems = append(rems, rem{i: i, frac: exact - float64(out[i])})
	}

	for left := width - used; left > 0; left-- {
		best := 0
		for j := range rems {
			if rems[j].frac > rems[best].frac {
				best = j
			}
		}
		out[rems[best].i]++
		rems[best].frac = -1
	}
	return out
}

func legendLine(marker, label string, value, width int) string {
	count := strconv.Itoa(value)
	labelW := max(4, width-ansi.StringWidth(marker)-len(count)-2)
	return marker + " " + ansi.Truncate(label, labelW, "…") + " " + mutedStyle.Render(count)
}

func accentOr(hex string) string {
	if hex == "" {
		return PrimaryColor
	}
	return hex
}
