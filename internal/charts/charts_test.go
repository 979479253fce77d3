package charts

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

func sampleStats() directory.DatabaseStats {
	bransch := make([]directory.Count, 12)
	for i := range bransch {
		bransch[i] = directory.Count{Label: string(rune('A' + i)), Count: i + 1}
	}
	return directory.DatabaseStats{
		TotalCompanies: 900,
		Geographic:     []directory.Count{{Label: "Stockholm", Count: 400}, {Label: "Göteborg", Count: 120}},
		Bransch:        bransch,
		Applications:   []directory.Count{{Label: "Visuell AI", Count: 30}, {Label: "Språk & Ljud", Count: 10}},
		Revenue:        []directory.Count{{Label: "0-1 MSEK", Count: 5}, {Label: directory.UnknownLabel, Count: 5}},
		Employees:      []directory.Count{{Label: "1-9", Count: 50}},
	}
}

func TestBuild(t *testing.T) {
	specs := Build(sampleStats())
	require.Len(t, specs, 5)

	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.CanvasID
	}
	assert.Equal(t, []string{CanvasGeographic, CanvasBransch, CanvasApplications, CanvasRevenue, CanvasEmployees}, ids)

	assert.Equal(t, KindBar, specs[0].Kind)
	assert.Equal(t, KindHorizontalBar, specs[1].Kind)
	assert.Equal(t, KindDoughnut, specs[2].Kind)
	assert.Equal(t, KindPie, specs[3].Kind)
	assert.Equal(t, KindBar, specs[4].Kind)

	bransch := specs[1]
	assert.Len(t, bransch.Labels, BranschLimit)
	assert.Equal(t, "L", bransch.Labels[0], "largest sector first")
	assert.Equal(t, SecondaryColor, bransch.Accent)
}

func TestPalette(t *testing.T) {
	colors := Palette(len(BasePalette) + 2)
	require.Len(t, colors, len(BasePalette)+2)

	first, ok := colorful.MakeColor(colors[0])
	require.True(t, ok)
	assert.Equal(t, "#00401a", first.Hex())

	second, ok := colorful.MakeColor(colors[len(BasePalette)])
	require.True(t, ok)
	assert.NotEqual(t, first.Hex(), second.Hex())

	_, _, lFirst := first.Hcl()
	_, _, lSecond := second.Hcl()
	assert.Greater(t, lSecond, lFirst, "second pass is lighter")
}

func TestSegmentWidths(t *testing.T) {
	tests := []struct {
		values []int
		width  int
		want   []int
	}{
		{values: []int{1, 1}, width: 10, want: []int{5, 5}},
		{values: []int{1, 1, 1}, width: 10, want: []int{4, 3, 3}},
		{values: []int{3, 0, 1}, width: 8, want: []int{6, 0, 2}},
		{values: []int{0, 0}, width: 8, want: []int{0, 0}},
	}

	for _, tt := range tests {
		got := SegmentWidths(tt.values, tt.width)
		assert.Equal(t, tt.want, got, "values %v", tt.values)
	}
}

func TestDraw(t *testing.T) {
	specs := Build(sampleStats())

	for _, s := range specs {
		t.Run(s.CanvasID, func(t *testing.T) {
			out := ansi.Strip(Draw(s, 60))
			assert.True(t, strings.HasPrefix(out, s.Title))
			for _, line := range strings.Split(out, "\n") {
				assert.LessOrEqual(t, ansi.StringWidth(line), 60, "line %q", line)
			}
		})
	}

	t.Run("legend percentages", func(t *testing.T) {
		out := ansi.Strip(Draw(specs[3], 60))
		assert.Contains(t, out, "(50.0%)")
		assert.Contains(t, out, directory.UnknownLabel)
	})

	t.Run("empty", func(t *testing.T) {
		out := ansi.Strip(Draw(Spec{Title: "Tom", Kind: KindPie}, 40))
		assert.Contains(t, out, NoData)
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	specs := Build(sampleStats())

	first := r.Render(specs[0], 60)
	assert.NotEmpty(t, first.View())

	second := r.Render(specs[0], 60)
	assert.True(t, first.Disposed(), "re-render disposes the previous instance")
	assert.False(t, second.Disposed())
	assert.Equal(t, 1, r.Len())

	for _, s := range specs[1:] {
		r.Render(s, 60)
	}
	assert.Equal(t, 5, r.Len())

	r.Resize(40)
	got, ok := r.Get(CanvasBransch)
	require.True(t, ok)
	assert.NotEmpty(t, got.View())

	r.DestroyAll()
	assert.Equal(t, 0, r.Len())
	assert.True(t, second.Disposed())
	assert.Empty(t, second.View())
}
