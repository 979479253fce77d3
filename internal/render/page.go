// Package render binds the browsing state to a typed, draw-ready view model
// and lays it out as terminal text. Bind is pure; the Draw functions only
// turn a Page into strings.
package render

import (
	"strings"

	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/pkg/htmltext"
)

// Mode is what the list area shows.
type Mode int

const (
	ModeLoading Mode = iota
	ModeError
	ModeEmpty
	ModeTable
	ModeCards
)

// Fixed texts.
const (
	ErrorTitle     = "Kunde inte ladda företag"
	EmptyText      = "Inga företag hittades"
	LoadingText    = "Laddar företag..."
	MoreInfoButton = "Mer info"
	NoApplications = "—"
	maxAppChips    = 3
	desktopURLMax  = 40
	mobileURLMax   = 30
)

// Chip is a selectable filter value inside a cell.
type Chip struct {
	Dim     directory.Dimension
	Value   string
	Focused bool
}

// Cell is one rendered table field.
type Cell struct {
	Column directory.Column
	Text   string
	Link   bool
	Chips  []Chip
	// More counts chips left out of Chips, shown as +N.
	More int
	// Truncate marks free text that is cut to the column width with "...".
	Truncate bool
}

// Row is one company in the desktop table.
type Row struct {
	Company  directory.Company
	Cells    []Cell
	Selected bool
}

// Field is one labelled value on a mobile card.
type Field struct {
	Label string
	Value string
	Link  bool
	Chips []Chip
}

// Card is one company in the mobile layout.
type Card struct {
	Company  directory.Company
	Title    string
	Link     bool
	Fields   []Field
	Selected bool
}

// PillView is a removable filter summary.
type PillView struct {
	directory.Pill
	Focused bool
}

// Pagination is the page navigation line.
type Pagination struct {
	Label       string
	PrevEnabled bool
	NextEnabled bool
}

// Page is the complete list view model.
type Page struct {
	Mode    Mode
	Device  directory.Device
	Stats   string
	Pills   []PillView
	Headers []string
	Rows    []Row
	Cards   []Card
	Err     string

	Pagination     Pagination
	BatteryPercent float64
	Offset         int
}

// ChipFocus locates the focused chip of the selected company. Index is -1
// when no chip is focused.
type ChipFocus struct {
	Dim   directory.Dimension
	Index int
}

// NoChipFocus is the zero focus.
var NoChipFocus = ChipFocus{Index: -1}

// Options are the UI-side inputs of Bind that are not part of the state.
type Options struct {
	Selected  int
	Offset    int
	ChipFocus ChipFocus
	// PillFocus is the index of the focused pill, or -1.
	PillFocus int
	// Count overrides the headline count while it animates; -1 uses the state.
	Count int
	// BatteryPercent overrides the fill while it animates; -1 uses the state.
	BatteryPercent float64
}

// DefaultOptions selects the first row with nothing focused or animating.
func DefaultOptions() Options {
	return Options{ChipFocus: NoChipFocus, PillFocus: -1, Count: -1, BatteryPercent: -1}
}

// Bind computes the Page for a state.
func Bind(s appstate.State, o Options) Page {
	filtered := s.HasActiveFilters()

	count := o.Count
	if count < 0 {
		count = s.Battery.HeadlineCount(filtered)
	}
	battery := o.BatteryPercent
	if battery < 0 {
		battery = s.Battery.FillPercent()
	}

	p := Page{
		Device:         s.Device,
		Stats:          directory.StatsText(count, filtered),
		BatteryPercent: battery,
		Offset:         o.Offset,
	}

	for i, pill := range s.Pills() {
		p.Pills = append(p.Pills, PillView{Pill: pill, Focused: i == o.PillFocus})
	}

	switch {
	case s.Status == appstate.StatusError:
		p.Mode = ModeError
		if s.Err != nil {
			p.Err = s.Err.Error()
		}
		return p
	case s.Status != appstate.StatusReady:
		p.Mode = ModeLoading
		return p
	case len(s.Companies) == 0:
		p.Mode = ModeEmpty
		return p
	}

	p.Pagination = Pagination{
		Label:       s.Cursor.Label(),
		PrevEnabled: s.Cursor.CanPrev(),
		NextEnabled: s.Cursor.CanNext(),
	}

	if s.Device == directory.DeviceMobile {
		p.Mode = ModeCards
		for i, c := range s.Companies {
			p.Cards = append(p.Cards, bindCard(c, s.Columns, i == o.Selected, focusFor(i, o)))
		}
		return p
	}

	p.Mode = ModeTable
	for _, col := range s.Columns {
		p.Headers = append(p.Headers, col.Header())
	}
	p.Headers = append(p.Headers, directory.MoreInfoHeader)
	for i, c := range s.Companies {
		p.Rows = append(p.Rows, bindRow(c, s.Columns, i == o.Selected, focusFor(i, o)))
	}
	return p
}

func focusFor(i int, o Options) ChipFocus {
	if i != o.Selected {
		return NoChipFocus
	}
	return o.ChipFocus
}

// RowChips returns the selectable chips of a company in the given
// dimension, the same values the row or card renders. It is nil when cols
// has no column drawing that dimension.
func RowChips(c directory.Company, cols []directory.Column, d directory.Dimension) []string {
	if !hasColumn(cols, chipColumn[d]) {
		return nil
	}
	return chipValues(c, d)
}

// chipColumn maps a chip dimension to the column that draws it.
var chipColumn = map[directory.Dimension]string{
	directory.DimBransch:     directory.ColumnBransch,
	directory.DimTillampning: directory.ColumnAICapabilities,
}

func hasColumn(cols []directory.Column, name string) bool {
	if name == "" {
		return false
	}
	for _, col := range cols {
		if col.Name == name {
			return true
		}
	}
	return false
}

func chipValues(c directory.Company, d directory.Dimension) []string {
	switch d {
	case directory.DimBransch:
		return c.BranschTags()
	case directory.DimTillampning:
		apps := c.Applications()
		return apps[:min(len(apps), maxAppChips)]
	default:
		return nil
	}
}

func chips(d directory.Dimension, values []string, focus ChipFocus) []Chip {
	out := make([]Chip, len(values))
	for i, v := range values {
		out[i] = Chip{Dim: d, Value: v, Focused: focus.Dim == d && focus.Index == i}
	}
	return out
}

func bindRow(c directory.Company, cols []directory.Column, selected bool, focus ChipFocus) Row {
	row := Row{Company: c, Selected: selected}

	for _, col := range cols {
		cell := Cell{Column: col}
		switch col.Name {
		case directory.ColumnName:
			cell.Text = c.DisplayName()
			cell.Link = c.Website != ""
		case directory.ColumnBransch:
			cell.Chips = chips(directory.DimBransch, c.BranschTags(), focus)
			if len(cell.Chips) == 0 {
				cell.Text = directory.Placeholder
			}
		case directory.ColumnAICapabilities:
			apps := c.Applications()
			if len(apps) == 0 {
				cell.Text = NoApplications
				break
			}
			cell.Chips = chips(directory.DimTillampning, chipValues(c, directory.DimTillampning), focus)
			cell.More = len(apps) - len(cell.Chips)
		case directory.ColumnWebsite:
			if c.Website == "" {
				cell.Text = directory.Placeholder
				break
			}
			cell.Text = directory.Truncate(directory.DisplayURL(c.Website), desktopURLMax)
			cell.Link = true
		case directory.ColumnDescription:
			cell.Text = singleLine(htmltext.Flatten(c.Description))
			cell.Truncate = true
		default:
			v, _ := c.Field(col.Name)
			cell.Text = singleLine(directory.FormatCellValue(v))
		}
		row.Cells = append(row.Cells, cell)
	}

	row.Cells = append(row.Cells, Cell{Column: directory.Column{Name: "more_info"}, Text: MoreInfoButton})
	return row
}

// singleLine collapses whitespace, newlines included, so a value fits one
// table line. Empty results become the placeholder.
func singleLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return directory.Placeholder
	}
	return s
}

func bindCard(c directory.Company, cols []directory.Column, selected bool, focus ChipFocus) Card {
	card := Card{
		Company:  c,
		Title:    c.DisplayName(),
		Link:     c.Website != "",
		Selected: selected,
	}

	for _, col := range cols {
		if col.Name == directory.ColumnName {
			continue
		}

		f := Field{Label: col.Header()}
		switch col.Name {
		case directory.ColumnBransch:
			tags := c.BranschTags()
			if len(tags) == 0 {
				continue
			}
			f.Chips = chips(directory.DimBransch, tags, focus)
			f.Value = c.Bransch
		case directory.ColumnAICapabilities:
			apps := chipValues(c, directory.DimTillampning)
			if len(apps) == 0 {
				continue
			}
			f.Chips = chips(directory.DimTillampning, apps, focus)
			f.Value = c.AICapabilities
		case directory.ColumnWebsite:
			if c.Website == "" {
				continue
			}
			f.Value = directory.Truncate(directory.DisplayURL(c.Website), mobileURLMax)
			f.Link = true
		default:
			v, _ := c.Field(col.Name)
			f.Value = directory.FormatCellValue(v)
			if f.Value == "" || f.Value == directory.Placeholder {
				continue
			}
		}
		card.Fields = append(card.Fields, f)
	}
	return card
}
