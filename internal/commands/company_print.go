package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/pkg/htmltext"
)

// printCompany writes the detail view of c as plain terminal text.
func printCompany(out io.Writer, c directory.Company) {
	_, _ = fmt.Fprintln(out, styles.TextForegroundBoldStyle.Render(c.DisplayName()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value == "" {
			value = directory.Placeholder
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", styles.FieldLabelStyle.Render(label), value)
	}

	row("ID", fmt.Sprint(c.ID))
	row("Webbplats", c.Website)
	row("Ort", c.LocationCity)
	row("Bransch", strings.Join(c.BranschTags(), ", "))
	row("Tillämpningar", strings.Join(c.Applications(), ", "))
	row("AI-inriktning", strings.Join(directory.ParseTags(c.AICapabilities), ", "))
	_ = w.Flush()

	description := htmltext.Flatten(c.Description)
	if description == "" {
		description = styles.TextMutedStyle.Render("Ingen beskrivning tillgänglig")
	}
	_, _ = fmt.Fprintf(out, "\n%s\n%s\n", styles.SectionStyle.Render("Om företaget"), description)

	if rows := c.Registry(); len(rows) > 0 {
		_, _ = fmt.Fprintf(out, "\n%s\n", styles.SectionStyle.Render("Företagsinformation (Bolagsverket)"))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", styles.FieldLabelStyle.Render(r.Label), r.Value)
		}
		_ = w.Flush()
	}
}
