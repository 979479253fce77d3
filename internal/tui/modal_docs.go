package tui

import (
	_ "embed"

	tea "charm.land/bubbletea/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
)

var (
	//go:embed docs/help.md
	helpMarkdown string

	//go:embed docs/release_notes.md
	releaseNotesMarkdown string
)

// DocModal is a read-only markdown document such as the help or the
// release notes.
type DocModal struct {
	markdown string
	dialog   *components.ScrollDialog
}

// NewDocModal renders markdown in a scrollable dialog.
func NewDocModal(title, markdown string, width, height int) *DocModal {
	d := &DocModal{markdown: markdown}
	d.dialog = components.NewScrollDialog(title, "", "↑/↓: scrolla  q/esc: stäng", width, height)
	d.dialog.SetContent(components.RenderMarkdown(markdown, d.dialog.ContentWidth()))
	return d
}

// SetSize re-renders the document for a new screen size.
func (d *DocModal) SetSize(width, height int) {
	d.dialog.SetSize(width, height)
	d.dialog.SetContent(components.RenderMarkdown(d.markdown, d.dialog.ContentWidth()))
}

// Update scrolls the document. It returns true when it should close.
func (d *DocModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "q", "esc":
			return true, nil
		}
	}
	return false, d.dialog.Update(msg)
}

// Overlay renders the document over background.
func (d *DocModal) Overlay(background string, width, height int) (string, components.Rect) {
	return d.dialog.Overlay(background, width, height)
}

// helpDocument returns the help text followed by the key reference.
func helpDocument(keys KeyMap) string {
	return helpMarkdown + "\n## Tangentbord\n\n" + keyTable(keys)
}
