package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/render"
)

const (
	brandTitle = " AI-företag i Sverige "
	brandColor = "#1c1c1c"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.size()
	page := m.page()
	header := m.renderHeader(page, w)
	listH := m.listHeight(header)

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Height(listH).MaxHeight(listH).Render(render.List(page, w, listH, m.spinner.View())),
		helpBar(m.keys.ShortHelp(), w),
	)

	content := mainView
	if m.modals.IsOpen() {
		content = m.modals.Overlay(mainView)
	}

	if m.confetti.Active() {
		layers := append([]*lipgloss.Layer{lipgloss.NewLayer(content)}, m.confetti.Layers(2)...)
		content = lipgloss.NewCompositor(layers...).Render()
	}

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	if m.cfg.UI.MouseEnabled() {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return w, h
}

// renderHeader draws everything above the list: title, search, stats and
// the active filter pills, followed by a blank line.
func (m Model) renderHeader(page render.Page, width int) string {
	var title string
	if m.gradient.Active() {
		title = m.gradient.Render(brandTitle, width, brandColor)
	} else {
		title = styles.HeaderBrandStyle.Render(strings.TrimSpace(brandTitle))
	}

	parts := []string{title, m.search.View(), render.StatsLine(page, width)}
	if pills := render.Pills(page.Pills, width); pills != "" {
		parts = append(parts, pills)
	}
	return strings.Join(parts, "\n") + "\n"
}

// listHeight is the number of lines left for the list once the header and
// the help bar are drawn.
func (m Model) listHeight(header string) int {
	_, h := m.size()
	return max(h-lipgloss.Height(header)-1, 3)
}

// listBodyHeight is the height available to rows or cards, excluding the
// pagination line and its spacing.
func (m Model) listBodyHeight() int {
	page := m.page()
	w, _ := m.size()
	return max(m.listHeight(m.renderHeader(page, w))-2, 1)
}

// rowAt maps a screen line to the index of the company drawn on it.
func (m Model) rowAt(y int) (int, bool) {
	if len(m.state.Companies) == 0 {
		return 0, false
	}
	w, _ := m.size()
	page := m.page()
	top := lipgloss.Height(m.renderHeader(page, w))
	body := m.listBodyHeight()

	if m.state.Device != directory.DeviceMobile {
		// The first line of the table is its header.
		k := y - top - 1
		if k < 0 || k >= render.VisibleRows(body) {
			return 0, false
		}
		i := m.offset + k
		return i, i < len(m.state.Companies)
	}

	line := top
	for i := m.offset; i < len(page.Cards); i++ {
		ch := render.CardHeight(page.Cards[i], w)
		if line+ch > top+body && i > m.offset {
			break
		}
		if y >= line && y < line+ch {
			return i, true
		}
		line += ch
	}
	return 0, false
}
