// Package charts turns the directory statistics into terminal charts.
//
// Build derives one Spec per canvas from the statistics endpoint. Draw
// renders a Spec at a given width, and Registry tracks rendered instances
// by canvas id so a re-render replaces the previous instance.
package charts

import (
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// Kind is the chart type.
type Kind int

const (
	KindBar Kind = iota
	KindHorizontalBar
	KindDoughnut
	KindPie
)

func (k Kind) String() string {
	switch k {
	case KindHorizontalBar:
		return "horizontal-bar"
	case KindDoughnut:
		return "doughnut"
	case KindPie:
		return "pie"
	default:
		return "bar"
	}
}

// Canvas ids, one per chart on the insights dashboard.
const (
	CanvasGeographic   = "geographicChart"
	CanvasBransch      = "branschChart"
	CanvasApplications = "applicationsChart"
	CanvasRevenue      = "revenueChart"
	CanvasEmployees    = "employeesChart"
)

// BranschLimit is the number of sectors shown.
const BranschLimit = 10

// Spec describes one chart.
type Spec struct {
	CanvasID string
	Title    string
	Kind     Kind
	Labels   []string
	Values   []int
	// Accent is the single bar colour of bar charts as #rrggbb.
	Accent string
}

// Len returns the number of data points.
func (s Spec) Len() int {
	return min(len(s.Labels), len(s.Values))
}

// Sum returns the total of all values.
func (s Spec) Sum() int {
	total := 0
	for _, v := range s.Values[:s.Len()] {
		total += v
	}
	return total
}

// Build derives the five dashboard charts from the statistics, in
// dashboard order.
func Build(stats directory.DatabaseStats) []Spec {
	return []Spec{
		fromCounts(CanvasGeographic, "Geografisk fördelning", KindBar, PrimaryColor, stats.Geographic),
		fromCounts(CanvasBransch, "Branscher (topp 10)", KindHorizontalBar, SecondaryColor, directory.TopN(stats.Bransch, BranschLimit)),
		fromCounts(CanvasApplications, "AI-tillämpningar", KindDoughnut, "", stats.Applications),
		fromCounts(CanvasRevenue, "Omsättning", KindPie, "", stats.Revenue),
		fromCounts(CanvasEmployees, "Antal anställda", KindBar, PrimaryColor, stats.Employees),
	}
}

func fromCounts(id, title string, kind Kind, accent string, counts []directory.Count) Spec {
	s := Spec{
		CanvasID: id,
		Title:    title,
		Kind:     kind,
		Accent:   accent,
		Labels:   make([]string, len(counts)),
		Values:   make([]int, len(counts)),
	}
	for i, c := range counts {
		s.Labels[i] = c.Label
		s.Values[i] = c.Count
	}
	return s
}
