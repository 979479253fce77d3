package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
)

// filterDimensions are the pickable dimensions in tab order.
var filterDimensions = []struct {
	Dim   directory.Dimension
	Label string
}{
	{directory.DimBransch, "Bransch"},
	{directory.DimTillampning, "Tillämpning"},
	{directory.DimAIInriktning, "AI-inriktning"},
	{directory.DimAnstallda, "Anställda"},
	{directory.DimOmsattning, "Omsättning"},
}

const filterMaxRows = 12

// FilterModal lists the option values of each filter dimension with their
// selection state.
type FilterModal struct {
	options directory.Options
	filters directory.Filters
	tab     int
	cursor  int
	offset  int
}

// NewFilterModal returns the picker opened on the first dimension.
func NewFilterModal(options directory.Options, filters directory.Filters) *FilterModal {
	return &FilterModal{options: options, filters: filters}
}

// Dimension returns the dimension of the active tab.
func (f *FilterModal) Dimension() directory.Dimension {
	return filterDimensions[f.tab].Dim
}

// SetFilters refreshes the selection marks.
func (f *FilterModal) SetFilters(filters directory.Filters) {
	f.filters = filters
}

func (f *FilterModal) values() []string {
	return f.options.For(f.Dimension())
}

func (f *FilterModal) selected(v string) bool {
	d := f.Dimension()
	if d == directory.DimAIInriktning {
		return f.filters.AIInriktning == v
	}
	return f.filters.Has(d, v)
}

// Current returns the highlighted value.
func (f *FilterModal) Current() (string, bool) {
	vals := f.values()
	if f.cursor < 0 || f.cursor >= len(vals) {
		return "", false
	}
	return vals[f.cursor], true
}

func (f *FilterModal) switchTab(delta int) {
	n := len(filterDimensions)
	f.tab = (f.tab + delta + n) % n
	f.cursor, f.offset = 0, 0
}

func (f *FilterModal) move(delta int) {
	n := len(f.values())
	if n == 0 {
		return
	}
	f.cursor = min(max(f.cursor+delta, 0), n-1)
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+filterMaxRows {
		f.offset = f.cursor - filterMaxRows + 1
	}
}

type filterAction int

const (
	filterNone filterAction = iota
	filterClose
	filterToggle
)

// Update handles a key. filterToggle means the highlighted value of the
// active dimension should be toggled.
func (f *FilterModal) Update(msg tea.Msg) filterAction {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return filterNone
	}
	switch k.String() {
	case "esc", "q", "f":
		return filterClose
	case "tab", "right", "l":
		f.switchTab(1)
	case "shift+tab", "left", "h":
		f.switchTab(-1)
	case "down", "j":
		f.move(1)
	case "up", "k":
		f.move(-1)
	case "space", " ", "enter", "x":
		if _, ok := f.Current(); ok {
			return filterToggle
		}
	}
	return filterNone
}

// Overlay renders the picker over background.
func (f *FilterModal) Overlay(background string, width, height int) (string, components.Rect) {
	tabs := make([]string, len(filterDimensions))
	for i, d := range filterDimensions {
		style := styles.TextMutedStyle
		if i == f.tab {
			style = styles.TextPrimaryBoldStyle.Underline(true)
		}
		tabs[i] = style.Render(d.Label)
	}

	var rows []string
	vals := f.values()
	if len(vals) == 0 {
		rows = append(rows, styles.TextMutedStyle.Render("Inga alternativ"))
	}
	single := f.Dimension() == directory.DimAIInriktning
	end := min(len(vals), f.offset+filterMaxRows)
	for i := f.offset; i < end; i++ {
		mark := "[ ]"
		switch {
		case single && f.selected(vals[i]):
			mark = "(•)"
		case single:
			mark = "( )"
		case f.selected(vals[i]):
			mark = "[x]"
		}
		line := mark + " " + vals[i]
		if i == f.cursor {
			line = styles.SelectFieldItemSelectedStyle.Render("> " + line)
		} else {
			line = "  " + styles.TextForegroundStyle.Render(line)
		}
		rows = append(rows, line)
	}
	if len(vals) > filterMaxRows {
		rows = append(rows, styles.TextMutedStyle.Render("  "+strconv.Itoa(f.cursor+1)+"/"+strconv.Itoa(len(vals))))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Filtrera"),
		"",
		strings.Join(tabs, "  "),
		"",
		strings.Join(rows, "\n"),
		"",
		styles.ModalHelpStyle.Render("←/→: dimension  ↑/↓: välj  mellanslag: markera  esc: stäng"),
	)
	modal := styles.ModalStyle.Width(min(formModalWidth, max(width-4, 30))).Render(content)
	return components.Overlay(background, modal, width, height)
}
