package tui

import (
	"errors"
	"math"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/render"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/animation"
)

const (
	luckyEmptyText  = "Inga företag hittades i databasen."
	luckyFailedText = "Kunde inte hämta ett slumpmässigt företag."
)

// --- Window ---

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.modals.SetSize(msg.Width, msg.Height)
	m.search.SetWidth(max(msg.Width-4, 10))

	var cmds []tea.Cmd

	device := directory.DeviceForWidth(msg.Width, m.cfg.UI.MobileBreakpoint)
	next, effect := appstate.SetDevice(m.state, device)
	m.state = next
	if effect != appstate.EffectNone && m.state.Status != appstate.StatusIdle {
		m.log.Debug().Str("device", string(device)).Msg("device changed")
		cmds = append(cmds, m.run(effect))
	}

	switch {
	case m.gradientWanted() && !m.gradient.Active():
		cmds = append(cmds, m.gradient.Start(time.Now()))
	case !m.gradientWanted() && m.gradient.Active():
		m.gradient.Stop()
	}

	m.ensureVisible()
	return m, tea.Batch(cmds...)
}

// gradientWanted reports whether the animated header should run.
func (m Model) gradientWanted() bool {
	return m.animations && m.width > m.cfg.UI.MobileBreakpoint
}

// --- Data loaded ---

func (m Model) handleBootstrap(msg bootstrapLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("bootstrap")
	}
	m.state = appstate.SetColumns(m.state, msg.device, msg.boot.Columns)
	m.state = appstate.SetOptions(m.state, msg.boot.Options)
	m.state = appstate.SetBatteryTotal(m.state, msg.boot.BatteryTotal)

	cmds := []tea.Cmd{m.reload()}
	if msg.device != m.state.Device {
		cmds = append(cmds, m.loadColumns(m.state.Device))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleColumns(msg columnsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("device", string(msg.device)).Msg("load columns")
	}
	m.state = appstate.SetColumns(m.state, msg.device, msg.columns)
	return m, nil
}

func (m Model) handleCompanies(msg companiesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		next, ok := appstate.ApplyError(m.state, msg.token, msg.err)
		if !ok {
			return m, nil
		}
		m.log.Error().Err(msg.err).Uint64("token", msg.token).Msg("load companies")
		m.state = next
		m.seq.Done(msg.token)
		return m, nil
	}

	next, effect, ok := appstate.ApplyCompanies(m.state, msg.token, appstate.Page{
		Companies:  msg.page.Companies,
		Total:      msg.page.Total,
		TotalPages: msg.page.TotalPages,
	})
	if !ok {
		m.log.Debug().Uint64("token", msg.token).Msg("stale company page dropped")
		return m, nil
	}
	m.state = next
	m.seq.Done(msg.token)
	if effect != appstate.EffectNone {
		m.log.Debug().Int("page", m.state.Cursor.Page).Msg("page past the end, reloading last page")
		return m, m.run(effect)
	}
	m.clampPillFocus()
	m.ensureVisible()
	return m, m.animateStats()
}

// animateStats runs the battery fill and the headline counter towards the
// values of the current state.
func (m *Model) animateStats() tea.Cmd {
	now := time.Now()
	filtered := m.state.HasActiveFilters()
	return tea.Batch(
		m.battery.Animate(m.state.Battery.FillPercent(), now),
		m.counter.Animate(float64(m.state.Battery.HeadlineCount(filtered)), now),
	)
}

func (m Model) handleBatteryForgotten(msg batteryForgottenMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("forget battery total")
	}
	next, effect := appstate.RefreshBattery(m.state)
	m.state = next
	return m, m.run(effect)
}

func (m Model) handleStats(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.modals.Active() != ModalInsights || msg.gen != m.insightsGen {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("load stats")
		m.modals.Insights.SetError(msg.err)
		return m, nil
	}
	m.modals.Insights.SetStats(msg.stats)
	return m, nil
}

func (m Model) handleLuckyPicked(msg luckyPickedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.luckyGen {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("lucky pick")
		if errors.Is(msg.err, catalog.ErrNoCompanies) {
			m.notifyBus.Warnf("%s", luckyEmptyText)
		} else {
			m.notifyBus.Errorf("%s", luckyFailedText)
		}
		return m, m.ensureToastTick()
	}
	return m, revealLucky(msg.gen, msg.company)
}

func (m Model) handleLuckyReveal(msg luckyRevealMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.luckyGen {
		return m, nil
	}
	m.modals.OpenDetail(msg.company, m.position())
	return m, nil
}

func (m Model) handleReportSubmitted(msg reportSubmittedMsg) (tea.Model, tea.Cmd) {
	if m.modals.Active() != ModalReport || msg.gen != m.submitGen {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Int64("company", m.modals.Report.Company().ID).Msg("submit error report")
		return m, m.modals.Report.Fail(msg.err)
	}
	m.closeModal()
	m.notifyBus.Successf("%s", reportSuccess)
	return m, m.ensureToastTick()
}

func (m Model) handleSuggestionSubmitted(msg suggestionSubmittedMsg) (tea.Model, tea.Cmd) {
	if m.modals.Active() != ModalSuggest || msg.gen != m.submitGen {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("submit suggestion")
		return m, m.modals.Suggest.Fail(msg.err)
	}
	m.closeModal()
	m.notifyBus.Successf("%s", suggestSuccess)
	return m, m.ensureToastTick()
}

// --- Timers ---

func (m Model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.debounceToken {
		return m, nil
	}
	return m.applySearch()
}

func (m Model) applySearch() (Model, tea.Cmd) {
	next, effect := appstate.SetSearch(m.state, strings.TrimSpace(m.search.Value()))
	m.state = next
	return m, m.run(effect)
}

func (m Model) handleAnimationTick(msg animation.TickMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.battery.Update(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.counter.Update(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.confetti.Update(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.gradient.Update(msg); ok {
		return m, cmd
	}
	return m, nil
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.modals.Active() == ModalInsights {
		m.modals.Insights.SetSpinner(m.spinner.View())
	}
	return m, cmd
}

func (m Model) handleNotification(msg notificationMsg) (tea.Model, tea.Cmd) {
	m.notifyBus.Publish(msg.notification)
	return m, m.ensureToastTick()
}

// handleFallthrough forwards cursor blinks and similar messages to the
// focused input.
func (m Model) handleFallthrough(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modals.Active() {
	case ModalReport:
		_, cmd = m.modals.Report.Update(msg)
	case ModalSuggest:
		_, cmd = m.modals.Suggest.Update(msg)
	case ModalNone:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return m, cmd
}

// --- Input ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.modals.IsOpen() {
		return m.handleModalKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.debounceToken++
		return m.applySearch()
	case "esc", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.debounceToken++
	return m, tea.Batch(cmd, m.debounceSearch())
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.PageUp):
		m.moveCursor(-m.pageStep())
	case key.Matches(msg, k.PageDown):
		m.moveCursor(m.pageStep())
	case key.Matches(msg, k.NextPage):
		return m.update(appstate.NextPage)
	case key.Matches(msg, k.PrevPage):
		return m.update(appstate.PrevPage)

	case key.Matches(msg, k.Open):
		return m.activate()
	case key.Matches(msg, k.Bransch):
		m.cycleChip(directory.DimBransch)
	case key.Matches(msg, k.Tillampning):
		m.cycleChip(directory.DimTillampning)
	case key.Matches(msg, k.ClearFocus):
		m.chipFocus = render.NoChipFocus
		m.pillFocus = -1

	case key.Matches(msg, k.Stockholm):
		return m.update(appstate.ToggleStockholm)
	case key.Matches(msg, k.Arbetsgivare):
		return m.update(appstate.ToggleArbetsgivare)
	case key.Matches(msg, k.ClearAll):
		m.search.SetValue("")
		m.debounceToken++
		return m.update(appstate.ClearAll)
	case key.Matches(msg, k.Filter):
		m.modals.OpenFilter(m.state.Options, m.state.Filters, m.position())

	case key.Matches(msg, k.PillLeft):
		if m.pillFocus >= 0 {
			m.pillFocus--
		}
	case key.Matches(msg, k.PillRight):
		m.pillFocus = min(m.pillFocus+1, len(m.state.Pills())-1)
	case key.Matches(msg, k.RemovePill):
		return m.removeFocusedPill()

	case key.Matches(msg, k.Lucky):
		return m.startLucky()
	case key.Matches(msg, k.Insights):
		m.insightsGen++
		m.modals.OpenInsights(m.position())
		return m, m.loadStats(m.insightsGen)
	case key.Matches(msg, k.Help):
		m.modals.OpenHelp(m.position())
	case key.Matches(msg, k.ReleaseNotes):
		m.modals.OpenReleaseNotes(m.build.Version, m.position())
	case key.Matches(msg, k.Suggest):
		m.modals.OpenSuggest(m.position())
	case key.Matches(msg, k.Report):
		if c, ok := m.selectedCompany(); ok {
			m.modals.OpenReport(c, m.position())
		}
	case key.Matches(msg, k.Refresh):
		return m, m.forgetBattery()
	}
	return m, nil
}

// update applies a pure state update and runs its effect.
func (m Model) update(fn func(appstate.State) (appstate.State, appstate.Effect)) (Model, tea.Cmd) {
	next, effect := fn(m.state)
	m.state = next
	return m, m.run(effect)
}

// activate adds the focused chip to the filters, or opens the selected
// company when no chip is focused.
func (m Model) activate() (tea.Model, tea.Cmd) {
	c, ok := m.selectedCompany()
	if !ok {
		return m, nil
	}
	if m.chipFocus.Index >= 0 {
		vals := render.RowChips(c, m.state.Columns, m.chipFocus.Dim)
		if m.chipFocus.Index < len(vals) {
			dim, value := m.chipFocus.Dim, vals[m.chipFocus.Index]
			return m.update(func(s appstate.State) (appstate.State, appstate.Effect) {
				return appstate.AddValue(s, dim, value)
			})
		}
	}
	m.modals.OpenDetail(c, m.position())
	return m, nil
}

func (m *Model) cycleChip(d directory.Dimension) {
	c, ok := m.selectedCompany()
	if !ok {
		return
	}
	n := len(render.RowChips(c, m.state.Columns, d))
	if n == 0 {
		m.chipFocus = render.NoChipFocus
		return
	}
	if m.chipFocus.Dim == d && m.chipFocus.Index >= 0 {
		m.chipFocus.Index = (m.chipFocus.Index + 1) % n
		return
	}
	m.chipFocus = render.ChipFocus{Dim: d, Index: 0}
}

func (m Model) removeFocusedPill() (tea.Model, tea.Cmd) {
	pills := m.state.Pills()
	if m.pillFocus < 0 || m.pillFocus >= len(pills) {
		return m, nil
	}
	pill := pills[m.pillFocus]
	if pill.Dim == directory.DimSearch {
		m.search.SetValue("")
		m.debounceToken++
	}
	m, cmd := m.update(func(s appstate.State) (appstate.State, appstate.Effect) {
		return appstate.RemovePill(s, pill)
	})
	m.clampPillFocus()
	return m, cmd
}

func (m *Model) clampPillFocus() {
	m.pillFocus = min(m.pillFocus, len(m.state.Pills())-1)
}

func (m Model) startLucky() (tea.Model, tea.Cmd) {
	m.luckyGen++
	cmds := []tea.Cmd{m.pickLucky(m.luckyGen)}
	if m.animations {
		cmds = append(cmds, m.confetti.Burst(m.width, m.height, time.Now(), m.rng))
	}
	return m, tea.Batch(cmds...)
}

// --- Modals ---

func (m *Model) closeModal() {
	m.submitGen++
	if pos, ok := m.modals.Close(); ok {
		m.selected, m.offset = pos.Selected, pos.Offset
		m.ensureVisible()
	}
}

func (m Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.modals.Active() {
	case ModalDetail:
		return m.handleDetailKey(msg)
	case ModalReport:
		action, cmd := m.modals.Report.Update(msg)
		switch action {
		case formCancel:
			m.closeModal()
		case formSubmit:
			m.submitGen++
			return m, tea.Batch(cmd, m.submitReport(m.submitGen, m.modals.Report.Report()))
		}
		return m, cmd
	case ModalSuggest:
		action, cmd := m.modals.Suggest.Update(msg)
		switch action {
		case formCancel:
			m.closeModal()
		case formSubmit:
			m.submitGen++
			return m, tea.Batch(cmd, m.submitSuggestion(m.submitGen, m.modals.Suggest.Suggestion()))
		}
		return m, cmd
	case ModalHelp, ModalReleaseNotes:
		done, cmd := m.modals.Doc.Update(msg)
		if done {
			m.closeModal()
		}
		return m, cmd
	case ModalInsights:
		done, cmd := m.modals.Insights.Update(msg)
		if done {
			m.closeModal()
		}
		return m, cmd
	case ModalFilter:
		return m.handleFilterKey(msg)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	detail := m.modals.Detail
	action, cmd := detail.Update(msg)

	switch action {
	case detailClose:
		m.closeModal()
	case detailReport:
		m.modals.OpenReport(detail.Company(), m.position())
	case detailApplyChip:
		chip, _ := detail.Focused()
		m.closeModal()
		return m.update(func(s appstate.State) (appstate.State, appstate.Effect) {
			if chip.Dim == directory.DimTag {
				return appstate.AddTag(s, chip.Value)
			}
			return appstate.AddValue(s, chip.Dim, chip.Value)
		})
	}
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	picker := m.modals.Filter
	switch picker.Update(msg) {
	case filterClose:
		m.closeModal()
	case filterToggle:
		value, _ := picker.Current()
		dim := picker.Dimension()
		var cmd tea.Cmd
		m, cmd = m.update(func(s appstate.State) (appstate.State, appstate.Effect) {
			if dim == directory.DimAIInriktning {
				if s.Filters.AIInriktning == value {
					value = ""
				}
				return appstate.SetAIInriktning(s, value)
			}
			return appstate.ToggleValue(s, dim, value)
		})
		picker.SetFilters(m.state.Filters)
		return m, cmd
	}
	return m, nil
}

// --- Mouse ---

func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}

	if m.modals.IsOpen() {
		if r := m.modals.Rect(); !r.Empty() && !r.Contains(mouse.X, mouse.Y) {
			m.closeModal()
		}
		return m, nil
	}

	i, ok := m.rowAt(mouse.Y)
	if !ok {
		return m, nil
	}
	if i == m.selected {
		m.chipFocus = render.NoChipFocus
		return m.activate()
	}
	m.selected = i
	m.chipFocus = render.NoChipFocus
	return m, nil
}

func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch m.modals.Active() {
	case ModalDetail:
		_, cmd := m.modals.Detail.Update(msg)
		return m, cmd
	case ModalHelp, ModalReleaseNotes:
		_, cmd := m.modals.Doc.Update(msg)
		return m, cmd
	case ModalInsights:
		_, cmd := m.modals.Insights.Update(msg)
		return m, cmd
	case ModalNone:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.moveCursor(-1)
		case tea.MouseWheelDown:
			m.moveCursor(1)
		}
	}
	return m, nil
}

// --- List cursor ---

func (m Model) position() listPosition {
	return listPosition{Selected: m.selected, Offset: m.offset}
}

func (m Model) selectedCompany() (directory.Company, bool) {
	if m.state.Status != appstate.StatusReady || m.selected < 0 || m.selected >= len(m.state.Companies) {
		return directory.Company{}, false
	}
	return m.state.Companies[m.selected], true
}

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Companies)
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.chipFocus = render.NoChipFocus
	m.ensureVisible()
}

func (m Model) pageStep() int {
	return max(render.VisibleRows(m.listBodyHeight())-1, 1)
}

// ensureVisible scrolls the list so the selected company is drawn.
func (m *Model) ensureVisible() {
	n := len(m.state.Companies)
	if n == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(max(m.selected, 0), n-1)
	m.offset = min(max(m.offset, 0), n-1)
	if m.selected < m.offset {
		m.offset = m.selected
	}

	if m.state.Device != directory.DeviceMobile {
		rows := render.VisibleRows(m.listBodyHeight())
		if m.selected >= m.offset+rows {
			m.offset = m.selected - rows + 1
		}
		return
	}

	page := m.page()
	budget := m.listBodyHeight()
	for m.offset < m.selected {
		used := 0
		for i := m.offset; i <= m.selected && i < len(page.Cards); i++ {
			used += render.CardHeight(page.Cards[i], m.width)
		}
		if used <= budget {
			break
		}
		m.offset++
	}
}

// bindOptions returns the UI inputs of the page binding.
func (m Model) bindOptions() render.Options {
	o := render.DefaultOptions()
	o.Selected = m.selected
	o.Offset = m.offset
	o.ChipFocus = m.chipFocus
	o.PillFocus = m.pillFocus
	if m.counter.Animating() {
		o.Count = int(math.Round(m.counter.Current()))
	}
	if m.battery.Animating() {
		o.BatteryPercent = m.battery.Current()
	}
	return o
}

func (m Model) page() render.Page {
	return render.Bind(m.state, m.bindOptions())
}
