package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/notify"
	"github.com/Spruttybangbang/aim25s-website/internal/render"
)

type bootstrapLoadedMsg struct {
	device directory.Device
	boot   catalog.Bootstrap
	err    error
}

type columnsLoadedMsg struct {
	device  directory.Device
	columns []directory.Column
	err     error
}

type companiesLoadedMsg struct {
	token uint64
	page  api.CompanyPage
	err   error
}

type batteryForgottenMsg struct{ err error }

type statsLoadedMsg struct {
	gen   uint64
	stats directory.DatabaseStats
	err   error
}

type luckyPickedMsg struct {
	gen     uint64
	company directory.Company
	err     error
}

type luckyRevealMsg struct {
	gen     uint64
	company directory.Company
}

type reportSubmittedMsg struct {
	gen uint64
	err error
}

type suggestionSubmittedMsg struct {
	gen uint64
	err error
}

type searchDebounceMsg struct{ token uint64 }

// notificationMsg carries a notification from an async tea.Cmd into the Update loop.
type notificationMsg struct {
	notification notify.Notification
}

func (m Model) bootstrap(device directory.Device) tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		boot, err := cat.Bootstrap(ctx, device)
		return bootstrapLoadedMsg{device: device, boot: boot, err: err}
	}
}

func (m Model) loadColumns(device directory.Device) tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		cols, err := cat.Columns(ctx, device)
		return columnsLoadedMsg{device: device, columns: cols, err: err}
	}
}

// reload issues a list request for the current query. Issuing it
// supersedes any request still in flight.
func (m *Model) reload() tea.Cmd {
	token, ctx := m.seq.Next(m.ctx)
	m.state = appstate.BeginLoad(m.state, token)
	m.selected, m.offset = 0, 0
	m.chipFocus = render.NoChipFocus

	q := m.state.Query()
	cat := m.catalog
	m.log.Debug().Uint64("token", token).Int("page", q.Page).Str("search", q.Search).Msg("load companies")

	return func() tea.Msg {
		page, err := cat.Companies(ctx, q)
		return companiesLoadedMsg{token: token, page: page, err: err}
	}
}

// run performs the side effect of a state update.
func (m *Model) run(effect appstate.Effect) tea.Cmd {
	switch effect {
	case appstate.EffectReload:
		return m.reload()
	case appstate.EffectReloadColumns:
		return tea.Batch(m.loadColumns(m.state.Device), m.reload())
	default:
		return nil
	}
}

func (m Model) forgetBattery() tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		return batteryForgottenMsg{err: cat.ForgetBattery(ctx)}
	}
}

func (m Model) loadStats(gen uint64) tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		stats, err := cat.Stats(ctx)
		return statsLoadedMsg{gen: gen, stats: stats, err: err}
	}
}

func (m Model) pickLucky(gen uint64) tea.Cmd {
	cat, ctx, rng := m.catalog, m.ctx, m.rng
	return func() tea.Msg {
		c, err := cat.Lucky(ctx, rng)
		return luckyPickedMsg{gen: gen, company: c, err: err}
	}
}

func revealLucky(gen uint64, c directory.Company) tea.Cmd {
	return tea.Tick(luckyDelay, func(time.Time) tea.Msg {
		return luckyRevealMsg{gen: gen, company: c}
	})
}

func (m Model) submitReport(gen uint64, r directory.ErrorReport) tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		_, err := cat.SubmitErrorReport(ctx, r)
		return reportSubmittedMsg{gen: gen, err: err}
	}
}

func (m Model) submitSuggestion(gen uint64, s directory.Suggestion) tea.Cmd {
	cat, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		_, err := cat.SubmitSuggestion(ctx, s)
		return suggestionSubmittedMsg{gen: gen, err: err}
	}
}

func (m Model) debounceSearch() tea.Cmd {
	token := m.debounceToken
	return tea.Tick(m.cfg.UI.SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{token: token}
	})
}

// ensureToastTick returns a tick command when there are active toasts and
// no tick chain is running.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.toasts.HasToasts() && !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		return scheduleToastTick()
	}
	return nil
}
