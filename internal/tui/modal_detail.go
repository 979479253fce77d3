package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
	"github.com/Spruttybangbang/aim25s-website/pkg/htmltext"
)

const (
	noDescription  = "Ingen beskrivning tillgänglig"
	registryTitle  = "Företagsinformation (Bolagsverket)"
	reportButton   = "Rapportera fel"
	detailHelpText = "tab/1-9: välj  enter: filtrera  e: rapportera fel  ↑/↓: scrolla  q/esc: stäng"
)

// detailChip is a selectable filter value shown in the detail modal.
type detailChip struct {
	Dim   directory.Dimension
	Value string
}

type detailAction int

const (
	detailNone detailAction = iota
	detailClose
	detailApplyChip
	detailReport
)

// DetailModal shows everything known about one company.
type DetailModal struct {
	company directory.Company
	chips   []detailChip
	focus   int
	dialog  *components.ScrollDialog
}

// NewDetailModal builds the modal for c on a width x height screen.
func NewDetailModal(c directory.Company, width, height int) *DetailModal {
	d := &DetailModal{
		company: c,
		chips:   detailChips(c),
		focus:   -1,
	}
	d.dialog = components.NewScrollDialog(c.DisplayName(), "", detailHelpText, width, height)
	d.refresh()
	return d
}

func detailChips(c directory.Company) []detailChip {
	var chips []detailChip
	for _, v := range c.BranschTags() {
		chips = append(chips, detailChip{Dim: directory.DimBransch, Value: v})
	}
	for _, v := range c.Applications() {
		chips = append(chips, detailChip{Dim: directory.DimTillampning, Value: v})
	}
	for _, v := range directory.ParseTags(c.AICapabilities) {
		chips = append(chips, detailChip{Dim: directory.DimTag, Value: v})
	}
	return chips
}

// Company returns the company shown.
func (d *DetailModal) Company() directory.Company { return d.company }

// Focused returns the focused chip.
func (d *DetailModal) Focused() (detailChip, bool) {
	if d.focus < 0 || d.focus >= len(d.chips) {
		return detailChip{}, false
	}
	return d.chips[d.focus], true
}

// SetSize adapts the modal to a new screen size.
func (d *DetailModal) SetSize(width, height int) {
	offset := d.dialog.YOffset()
	d.dialog.SetSize(width, height)
	d.refresh()
	d.dialog.SetYOffset(offset)
}

func (d *DetailModal) refresh() {
	offset := d.dialog.YOffset()
	d.dialog.SetContent(detailContent(d.company, d.chips, d.focus, d.dialog.ContentWidth()))
	d.dialog.SetYOffset(offset)
}

func (d *DetailModal) setFocus(i int) {
	if len(d.chips) == 0 {
		return
	}
	d.focus = (i + len(d.chips)) % len(d.chips)
	d.refresh()
}

// Update handles a key press and reports what the model should do.
func (d *DetailModal) Update(msg tea.Msg) (detailAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return detailNone, d.dialog.Update(msg)
	}

	switch s := keyMsg.String(); s {
	case "q", "esc":
		return detailClose, nil
	case "e":
		return detailReport, nil
	case "tab":
		d.setFocus(d.focus + 1)
	case "shift+tab":
		if d.focus < 0 {
			d.setFocus(-1)
		} else {
			d.setFocus(d.focus - 1)
		}
	case "enter":
		if _, ok := d.Focused(); ok {
			return detailApplyChip, nil
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if n := int(s[0] - '1'); n < len(d.chips) {
			d.setFocus(n)
		}
	default:
		return detailNone, d.dialog.Update(msg)
	}
	return detailNone, nil
}

// Overlay renders the modal over background.
func (d *DetailModal) Overlay(background string, width, height int) (string, components.Rect) {
	return d.dialog.Overlay(background, width, height)
}

func detailContent(c directory.Company, chips []detailChip, focus, width int) string {
	var lines []string

	if c.LogoURL != "" {
		lines = append(lines, styles.TextMutedStyle.Render("Logotyp: "+c.LogoURL), "")
	}

	lines = append(lines, styles.TextForegroundBoldStyle.Render(c.DisplayName()))

	site := "-"
	if c.Website != "" {
		site = styles.LinkStyle.Render(styles.IconLink + " " + c.Website)
	}
	lines = append(lines, styles.FieldLabelStyle.Render("Webbplats:")+" "+site)

	groups := []struct {
		label string
		dim   directory.Dimension
	}{
		{"Bransch:", directory.DimBransch},
		{"Tillämpningar:", directory.DimTillampning},
		{"AI-inriktning:", directory.DimTag},
	}
	for _, g := range groups {
		var rendered []string
		for i, chip := range chips {
			if chip.Dim != g.dim {
				continue
			}
			style := styles.ChipStyle
			if i == focus {
				style = styles.ChipFocusedStyle
			}
			rendered = append(rendered, style.Render(chipLabel(i, chip.Value)))
		}
		if len(rendered) == 0 {
			continue
		}
		lines = append(lines, "", styles.FieldLabelStyle.Render(g.label), wrapJoined(rendered, width))
	}

	description := htmltext.Flatten(c.Description)
	if description == "" {
		description = styles.TextMutedStyle.Render(noDescription)
	}
	lines = append(lines,
		"",
		styles.SectionStyle.Render("Om företaget"),
		lipgloss.NewStyle().Width(width).Render(description),
	)

	if rows := c.Registry(); len(rows) > 0 {
		items := make([]components.InfoItem, len(rows))
		for i, r := range rows {
			items[i] = components.InfoItem{Label: r.Label, Value: r.Value}
		}
		lines = append(lines, "", components.RenderSections([]components.InfoSection{{Title: registryTitle, Items: items}}, width))
	}

	lines = append(lines, "", styles.ModalButtonStyle.Render("[e] "+reportButton))
	return strings.Join(lines, "\n")
}

func chipLabel(i int, value string) string {
	if i < 9 {
		return fmt.Sprintf("%d %s", i+1, value)
	}
	return value
}

// wrapJoined joins rendered parts with spaces, breaking lines at width.
func wrapJoined(parts []string, width int) string {
	var (
		lines []string
		line  string
	)
	for _, p := range parts {
		switch {
		case line == "":
			line = p
		case lipgloss.Width(line)+1+lipgloss.Width(p) > width:
			lines = append(lines, line)
			line = p
		default:
			line += " " + p
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
