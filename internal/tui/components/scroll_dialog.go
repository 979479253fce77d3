package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

const (
	scrollModalMaxWidth  = 100
	scrollModalMaxHeight = 36
	scrollModalMargin    = 4
	scrollModalChrome    = 8 // border + padding + title + divider + help
	scrollModalMinWidth  = 40
	scrollModalPadding   = 6
)

// ScrollDialog is a titled modal with a scrollable body.
type ScrollDialog struct {
	title    string
	help     string
	content  string
	viewport viewport.Model
	width    int
	height   int
}

// DialogSize returns the modal width and height for a screen, and the
// width available to its content.
func DialogSize(width, height int) (modalW, modalH, contentW int) {
	modalW = min(max(int(float64(width)*0.8), scrollModalMinWidth), width-scrollModalMargin, scrollModalMaxWidth)
	modalH = min(height-scrollModalMargin, scrollModalMaxHeight)
	return modalW, modalH, max(modalW-scrollModalPadding, 10)
}

// NewScrollDialog creates a dialog sized for a width x height screen.
func NewScrollDialog(title, content, help string, width, height int) *ScrollDialog {
	d := &ScrollDialog{title: title, help: help, content: content}
	d.SetSize(width, height)
	return d
}

// SetSize resizes the dialog for a new screen size, keeping its content.
func (d *ScrollDialog) SetSize(width, height int) {
	d.width, d.height = width, height
	_, modalH, contentW := DialogSize(width, height)

	d.viewport = viewport.New(
		viewport.WithWidth(contentW),
		viewport.WithHeight(max(modalH-scrollModalChrome, 3)),
	)
	d.viewport.SetContent(d.content)
}

// ContentWidth returns the width available to the body.
func (d *ScrollDialog) ContentWidth() int {
	_, _, w := DialogSize(d.width, d.height)
	return w
}

// SetContent replaces the body and scrolls to the top.
func (d *ScrollDialog) SetContent(content string) {
	d.content = content
	d.viewport.SetContent(content)
	d.viewport.GotoTop()
}

// SetTitle replaces the title.
func (d *ScrollDialog) SetTitle(title string) { d.title = title }

// SetHelp replaces the help line.
func (d *ScrollDialog) SetHelp(help string) { d.help = help }

// Title returns the dialog title.
func (d *ScrollDialog) Title() string { return d.title }

// ScrollUp scrolls the viewport up.
func (d *ScrollDialog) ScrollUp() { d.viewport.ScrollUp(1) }

// ScrollDown scrolls the viewport down.
func (d *ScrollDialog) ScrollDown() { d.viewport.ScrollDown(1) }

// YOffset returns the first visible body line.
func (d *ScrollDialog) YOffset() int { return d.viewport.YOffset() }

// SetYOffset scrolls so line n is the first visible body line.
func (d *ScrollDialog) SetYOffset(n int) { d.viewport.SetYOffset(n) }

// Update forwards paging keys and mouse wheel events to the viewport.
func (d *ScrollDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the boxed dialog.
func (d *ScrollDialog) View() string {
	modalW, _, contentW := DialogSize(d.width, d.height)

	scrollInfo := ""
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", contentW))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(d.title)+scrollInfo,
		divider,
		d.viewport.View(),
		styles.ModalHelpStyle.Render(d.help),
	)

	return styles.ModalStyle.Width(modalW).Render(content)
}

// Overlay renders the dialog centred over background.
func (d *ScrollDialog) Overlay(background string, width, height int) (string, Rect) {
	return Overlay(background, d.View(), width, height)
}
