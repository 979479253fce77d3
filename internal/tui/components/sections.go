package components

import (
	"strings"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// InfoItem is a single labeled row in an info section.
type InfoItem struct {
	Label string
	Value string
}

// InfoSection groups related info items under a section title.
type InfoSection struct {
	Title string
	Items []InfoItem
}

// RenderSections draws titled label/value sections with aligned values.
// Sections without items are skipped.
func RenderSections(sections []InfoSection, width int) string {
	separator := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(width, 1)))

	var lines []string
	for _, section := range sections {
		if len(section.Items) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, styles.SectionStyle.Render(section.Title), separator)
		}

		labelW := 0
		for _, item := range section.Items {
			labelW = max(labelW, len([]rune(item.Label)))
		}
		for _, item := range section.Items {
			pad := strings.Repeat(" ", labelW-len([]rune(item.Label)))
			lines = append(lines, styles.FieldLabelStyle.Render(item.Label+pad)+"  "+styles.TextForegroundStyle.Render(item.Value))
		}
	}
	return strings.Join(lines, "\n")
}
