package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// Pills draws the active filter pills on one line, wrapping to further
// lines when they do not fit. It returns "" when no filter is active.
func Pills(pills []PillView, width int) string {
	if len(pills) == 0 {
		return ""
	}

	var (
		lines []string
		line  string
	)
	for _, p := range pills {
		style := styles.PillStyle
		if p.Focused {
			style = styles.PillFocusedStyle
		}
		pill := style.Render(p.Label + " ×")
		switch {
		case line == "":
			line = pill
		case StringWidth(line)+1+StringWidth(pill) > width:
			lines = append(lines, line)
			line = pill
		default:
			line += " " + pill
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// PaginationLine draws "‹ Föregående  Sida X av Y  Nästa ›" with the
// unavailable directions dimmed.
func PaginationLine(p Pagination) string {
	prev := styles.PaginationStyle.Render("‹ Föregående")
	if !p.PrevEnabled {
		prev = styles.PaginationDisabledStyle.Render("‹ Föregående")
	}
	next := styles.PaginationStyle.Render("Nästa ›")
	if !p.NextEnabled {
		next = styles.PaginationDisabledStyle.Render("Nästa ›")
	}
	return prev + "  " + styles.TextBoldStyle.Render(p.Label) + "  " + next
}

// BatteryBar draws a horizontal gauge of percent 0..100 in width cells.
func BatteryBar(percent float64, width int) string {
	percent = math.Max(0, math.Min(100, percent))
	label := fmt.Sprintf(" %3.0f%%", percent)

	inner := max(width-2-len(label), 4)
	filled := int(math.Round(percent / 100 * float64(inner)))

	return styles.BatteryFrameStyle.Render("▕") +
		styles.BatteryFillStyle.Render(strings.Repeat("█", filled)) +
		styles.BatteryEmptyStyle.Render(strings.Repeat("░", inner-filled)) +
		styles.BatteryFrameStyle.Render("▏") +
		styles.TextMutedStyle.Render(label)
}

// StatsLine draws the headline sentence with the battery gauge to its right.
func StatsLine(p Page, width int) string {
	text := styles.StatsStyle.Render(p.Stats)
	gauge := BatteryBar(p.BatteryPercent, min(30, max(width/3, 12)))
	gap := width - StringWidth(text) - StringWidth(gauge)
	if gap < 2 {
		return text + "\n" + gauge
	}
	return text + strings.Repeat(" ", gap) + gauge
}

// List draws the list area: the listing and its pagination in the ready
// modes, or a single state message otherwise. spinner is the current
// spinner frame used while loading.
func List(p Page, width, height int, spinner string) string {
	switch p.Mode {
	case ModeLoading:
		return styles.EmptyStateStyle.Render(strings.TrimSpace(spinner + " " + LoadingText))
	case ModeError:
		msg := ErrorTitle
		if p.Err != "" {
			msg += "\n" + styles.TextMutedStyle.Render(p.Err)
		}
		return styles.ErrorStateStyle.Render(msg)
	case ModeEmpty:
		return styles.EmptyStateStyle.Render(EmptyText)
	}

	bodyHeight := max(height-2, 1)
	var body string
	if p.Mode == ModeCards {
		body, _ = Cards(p, width, bodyHeight)
	} else {
		body = Table(p, width, bodyHeight)
	}
	return body + "\n\n" + PaginationLine(p.Pagination)
}
