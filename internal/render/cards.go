package render

import (
	"strings"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// DrawCard renders one mobile card at width cells including its border.
func DrawCard(c Card, width int) string {
	inner := max(width-4, 8)

	title := styles.CardTitleStyle.Render(fit(c.Title, inner))
	if c.Link {
		title = styles.CardTitleStyle.Underline(true).Render(fit(c.Title, inner))
	}

	lines := []string{title}
	for _, f := range c.Fields {
		label := styles.FieldLabelStyle.Render(f.Label + ": ")
		var value string
		switch {
		case len(f.Chips) > 0:
			parts := make([]string, len(f.Chips))
			for i, chip := range f.Chips {
				parts[i] = drawChip(chip)
			}
			value = strings.Join(parts, " ")
		case f.Link:
			value = styles.LinkStyle.Render(f.Value)
		default:
			value = f.Value
		}
		lines = append(lines, fit(label+value, inner))
	}

	style := styles.CardStyle
	if c.Selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// Cards draws the mobile listing from p.Offset, stopping before the card
// that would overflow height. It returns the rendered text and the number
// of cards drawn.
func Cards(p Page, width, height int) (string, int) {
	var (
		out   []string
		used  int
		drawn int
	)
	for _, c := range p.Cards[min(p.Offset, len(p.Cards)):] {
		card := DrawCard(c, width)
		h := strings.Count(card, "\n") + 1
		if drawn > 0 && used+h > height {
			break
		}
		out = append(out, card)
		used += h
		drawn++
	}
	return strings.Join(out, "\n"), drawn
}

// CardHeight returns the rendered height of a card.
func CardHeight(c Card, width int) int {
	return strings.Count(DrawCard(c, width), "\n") + 1
}
