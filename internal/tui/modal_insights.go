package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/charts"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
)

// InsightsModal shows the database statistics as charts. Charts are bound
// to the registry while the modal is open.
type InsightsModal struct {
	registry *charts.Registry
	stats    *directory.DatabaseStats
	err      error
	dialog   *components.ScrollDialog
	spinner  string
}

// NewInsightsModal returns the modal in its loading state.
func NewInsightsModal(registry *charts.Registry, width, height int) *InsightsModal {
	m := &InsightsModal{registry: registry}
	m.dialog = components.NewScrollDialog(styles.IconDatabase+" Databasinsikter", "", "↑/↓: scrolla  q/esc: stäng", width, height)
	m.refresh()
	return m
}

// SetStats draws the charts for stats.
func (m *InsightsModal) SetStats(stats directory.DatabaseStats) {
	m.stats = &stats
	m.err = nil
	for _, spec := range charts.Build(stats) {
		m.registry.Render(spec, m.dialog.ContentWidth())
	}
	m.refresh()
}

// SetError shows a load failure.
func (m *InsightsModal) SetError(err error) {
	m.err = err
	m.refresh()
}

// SetSpinner updates the loading indicator frame.
func (m *InsightsModal) SetSpinner(frame string) {
	if m.stats == nil && m.err == nil && frame != m.spinner {
		m.spinner = frame
		m.refresh()
	}
}

// SetSize redraws the charts for a new screen size.
func (m *InsightsModal) SetSize(width, height int) {
	m.dialog.SetSize(width, height)
	if m.stats != nil {
		m.registry.Resize(m.dialog.ContentWidth())
	}
	m.refresh()
}

// Close disposes every chart.
func (m *InsightsModal) Close() {
	m.registry.DestroyAll()
}

// Update scrolls the modal. It returns true when the modal should close.
func (m *InsightsModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "q", "esc":
			return true, nil
		}
	}
	return false, m.dialog.Update(msg)
}

// Overlay renders the modal over background.
func (m *InsightsModal) Overlay(background string, width, height int) (string, components.Rect) {
	return m.dialog.Overlay(background, width, height)
}

func (m *InsightsModal) refresh() {
	switch {
	case m.err != nil:
		m.dialog.SetContent(styles.ErrorStateStyle.Render("Kunde inte hämta statistik\n" + styles.TextMutedStyle.Render(m.err.Error())))
		return
	case m.stats == nil:
		m.dialog.SetContent(styles.EmptyStateStyle.Render(strings.TrimSpace(m.spinner + " Laddar statistik...")))
		return
	}

	offset := m.dialog.YOffset()
	parts := []string{
		styles.StatsStyle.Render(fmt.Sprintf("Totalt %d företag", m.stats.TotalCompanies)),
	}
	for _, spec := range charts.Build(*m.stats) {
		if chart, ok := m.registry.Get(spec.CanvasID); ok {
			parts = append(parts, "", chart.View())
		}
	}
	m.dialog.SetContent(strings.Join(parts, "\n"))
	m.dialog.SetYOffset(offset)
}
