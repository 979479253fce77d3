package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/config"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/render"
	"github.com/Spruttybangbang/aim25s-website/pkg/tuitest"
)

// stubCatalog satisfies Catalog. Tests drive the model with result
// messages directly, so none of its methods are expected to run.
type stubCatalog struct{}

func (stubCatalog) Bootstrap(context.Context, directory.Device) (catalog.Bootstrap, error) {
	return catalog.Bootstrap{}, nil
}

func (stubCatalog) Columns(context.Context, directory.Device) ([]directory.Column, error) {
	return nil, nil
}

func (stubCatalog) Companies(context.Context, directory.Query) (api.CompanyPage, error) {
	return api.CompanyPage{}, nil
}

func (stubCatalog) ForgetBattery(context.Context) error { return nil }

func (stubCatalog) Stats(context.Context) (directory.DatabaseStats, error) {
	return directory.DatabaseStats{}, nil
}

func (stubCatalog) Lucky(context.Context, *rand.Rand) (directory.Company, error) {
	return directory.Company{}, catalog.ErrNoCompanies
}

func (stubCatalog) SubmitErrorReport(context.Context, directory.ErrorReport) (api.SubmitResult, error) {
	return api.SubmitResult{}, nil
}

func (stubCatalog) SubmitSuggestion(context.Context, directory.Suggestion) (api.SubmitResult, error) {
	return api.SubmitResult{}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	off := false
	cfg.UI.Animations = &off

	return New(&cfg, Options{
		Catalog: stubCatalog{},
		Logger:  zerolog.Nop(),
		Build:   BuildInfo{Version: "v0.3.0"},
		Rand:    rand.New(rand.NewPCG(1, 2)),
	})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func sampleCompanies() []directory.Company {
	return []directory.Company{
		testCompany(),
		{ID: 8, Name: "Solna Vision", Bransch: "Industri"},
		{ID: 9, Name: "Malmö Data", Bransch: "Retail|Logistik"},
	}
}

// ready returns a desktop model showing companies.
func ready(t *testing.T, companies []directory.Company) Model {
	t.Helper()
	m := newTestModel(t)
	m = send(t, m,
		tuitest.WindowSize(120, 40),
		bootstrapLoadedMsg{device: directory.DeviceDesktop, boot: catalog.Bootstrap{
			Options: directory.Options{Bransch: []string{"Fintech", "Hälsa"}},
		}},
	)
	require.Equal(t, appstate.StatusLoading, m.State().Status)
	return send(t, m, companiesLoadedMsg{
		token: m.State().RequestToken,
		page:  api.CompanyPage{Companies: companies, Total: len(companies)},
	})
}

func TestModel_LatestRequestWins(t *testing.T) {
	m := ready(t, sampleCompanies())
	first := m.State().RequestToken

	m = send(t, m, tuitest.Key("s"))
	second := m.State().RequestToken
	require.Greater(t, second, first)
	assert.True(t, m.State().Filters.Stockholm)

	fresh := []directory.Company{{ID: 42, Name: "Ny"}}
	m = send(t, m,
		companiesLoadedMsg{token: second, page: api.CompanyPage{Companies: fresh, Total: 1}},
		companiesLoadedMsg{token: first, page: api.CompanyPage{Companies: sampleCompanies(), Total: 3}},
	)

	assert.Equal(t, fresh, m.State().Companies, "the older response is dropped")
	assert.Equal(t, "Visar nu 1 företag", m.State().StatsText())
}

func TestModel_ShrunkResultReloadsLastPage(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, companiesLoadedMsg{
		token: m.State().RequestToken,
		page:  api.CompanyPage{Companies: sampleCompanies(), Total: 500, TotalPages: 10},
	})
	m = send(t, m, tuitest.Key("n"), tuitest.Key("n"))
	require.Equal(t, 3, m.State().Cursor.Page)
	third := m.State().RequestToken

	m = send(t, m, companiesLoadedMsg{token: third, page: api.CompanyPage{Total: 60, TotalPages: 2}})
	assert.Equal(t, 2, m.State().Cursor.Page)
	assert.Greater(t, m.State().RequestToken, third)
	assert.Equal(t, appstate.StatusLoading, m.State().Status)
}

func TestModel_ErrorResponse(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("a"))
	m = send(t, m, companiesLoadedMsg{token: m.State().RequestToken, err: errors.New("503")})

	assert.Equal(t, appstate.StatusError, m.State().Status)
	assert.Equal(t, render.ModeError, m.page().Mode)
	_, ok := m.selectedCompany()
	assert.False(t, ok)
}

func TestModel_SearchDebounce(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("/"))
	m = send(t, m, tuitest.Type("ai")...)
	require.True(t, m.searching)
	assert.Equal(t, "ai", m.search.Value())
	assert.Empty(t, m.State().Search, "typing alone does not search")

	token := m.State().RequestToken
	m = send(t, m, searchDebounceMsg{token: m.debounceToken - 1})
	assert.Equal(t, token, m.State().RequestToken, "superseded debounce is ignored")

	m = send(t, m, searchDebounceMsg{token: m.debounceToken})
	assert.Equal(t, "ai", m.State().Search)
	assert.Equal(t, 1, m.State().Cursor.Page)
	assert.Greater(t, m.State().RequestToken, token)
}

func TestModel_SearchEnterAppliesImmediately(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("/"), tuitest.Key("x"), tuitest.Key("enter"))

	assert.False(t, m.searching)
	assert.Equal(t, "x", m.State().Search)

	token := m.State().RequestToken
	m = send(t, m, searchDebounceMsg{token: m.debounceToken - 1})
	assert.Equal(t, token, m.State().RequestToken)
}

func TestModel_RowChipAddsFilter(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("b"))
	assert.Equal(t, render.ChipFocus{Dim: directory.DimBransch, Index: 0}, m.chipFocus)

	m = send(t, m, tuitest.Key("b"))
	assert.Equal(t, 1, m.chipFocus.Index)

	m = send(t, m, tuitest.Key("enter"))
	assert.Equal(t, []string{"Hälsa"}, m.State().Filters.Bransch)
	assert.Equal(t, appstate.StatusLoading, m.State().Status)
	assert.Equal(t, ModalNone, m.Modals().Active(), "a focused chip filters instead of opening the detail")
}

func TestModel_CursorResetsChipFocus(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("b"), tuitest.Key("j"))

	assert.Equal(t, 1, m.selected)
	assert.Equal(t, render.NoChipFocus, m.chipFocus)
}

func TestModel_DetailRestoresPosition(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("j"), tuitest.Key("j"), tuitest.Key("enter"))

	require.Equal(t, ModalDetail, m.Modals().Active())
	assert.Equal(t, "Malmö Data", m.Modals().Detail.Company().Name)

	m = send(t, m, tuitest.Key("esc"))
	assert.Equal(t, ModalNone, m.Modals().Active())
	assert.Equal(t, 2, m.selected)
}

func TestModel_DetailChipApplies(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("enter"), tuitest.Key("2"), tuitest.Key("enter"))

	assert.Equal(t, ModalNone, m.Modals().Active())
	assert.Equal(t, []string{"Hälsa"}, m.State().Filters.Bransch)
}

func TestModel_DetailTagChip(t *testing.T) {
	m := ready(t, sampleCompanies())
	// Fintech, Hälsa, Språk & Ljud, then the capability tags.
	m = send(t, m, tuitest.Key("enter"), tuitest.Key("4"), tuitest.Key("enter"))

	assert.Equal(t, "LLM", m.State().Filters.Tag)
}

func TestModel_ReportSubmitted(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("enter"), tuitest.Key("e"))
	require.Equal(t, ModalReport, m.Modals().Active())
	assert.Equal(t, int64(7), m.Modals().Report.Company().ID)

	m = send(t, m, tuitest.Key("enter"), tuitest.Key("ctrl+s"))
	m = send(t, m, reportSubmittedMsg{gen: m.submitGen})
	assert.Equal(t, ModalNone, m.Modals().Active())
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, reportSuccess, m.toasts.Toasts()[0].notification.Message)
}

func TestModel_ReportFailureKeepsForm(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("e"), tuitest.Key("enter"), tuitest.Key("ctrl+s"))
	m = send(t, m, reportSubmittedMsg{gen: m.submitGen, err: errors.New("boom")})

	require.Equal(t, ModalReport, m.Modals().Active())
	assert.Equal(t, submitFailed, m.Modals().Report.dialog.Error())
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_SubmitResultAfterCloseIgnored(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("N"), tuitest.Key("ctrl+s"))
	gen := m.submitGen
	m = send(t, m, tuitest.Key("esc"), suggestionSubmittedMsg{gen: gen})

	assert.Equal(t, ModalNone, m.Modals().Active())
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_StaleReportResultLeavesNextForm(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("e"), tuitest.Key("enter"), tuitest.Key("ctrl+s"))
	stale := m.submitGen
	m = send(t, m, tuitest.Key("esc"))
	require.Equal(t, ModalNone, m.Modals().Active())

	m = send(t, m, tuitest.Key("j"), tuitest.Key("e"))
	require.Equal(t, ModalReport, m.Modals().Active())
	require.Equal(t, int64(8), m.Modals().Report.Company().ID)

	t.Run("success", func(t *testing.T) {
		got := send(t, m, reportSubmittedMsg{gen: stale})
		assert.Equal(t, ModalReport, got.Modals().Active())
		assert.False(t, got.toasts.HasToasts())
	})

	t.Run("failure", func(t *testing.T) {
		got := send(t, m, reportSubmittedMsg{gen: stale, err: errors.New("boom")})
		assert.Equal(t, ModalReport, got.Modals().Active())
		assert.Empty(t, got.Modals().Report.dialog.Error())
		assert.Equal(t, 0, got.Modals().Report.Step())
	})
}

func TestModel_MobileHiddenChipOpensDetail(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.WindowSize(80, 40))
	require.Equal(t, directory.DeviceMobile, m.State().Device)
	m = send(t, m, companiesLoadedMsg{
		token: m.State().RequestToken,
		page:  api.CompanyPage{Companies: sampleCompanies(), Total: 3},
	})

	// The mobile table has no Tillämpning column, so there is nothing to focus.
	m = send(t, m, tuitest.Key("t"))
	assert.Equal(t, render.NoChipFocus, m.chipFocus)

	m = send(t, m, tuitest.Key("enter"))
	assert.Equal(t, ModalDetail, m.Modals().Active())
	assert.Empty(t, m.State().Filters.Tillampning)
}

func TestModel_Lucky(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("L"))
	require.Equal(t, uint64(1), m.luckyGen)

	winner := directory.Company{ID: 99, Name: "Turligt AB"}
	m = send(t, m, luckyRevealMsg{gen: 0, company: winner})
	assert.Equal(t, ModalNone, m.Modals().Active(), "stale reveal is ignored")

	m = send(t, m, luckyRevealMsg{gen: 1, company: winner})
	require.Equal(t, ModalDetail, m.Modals().Active())
	assert.Equal(t, "Turligt AB", m.Modals().Detail.Company().Name)
}

func TestModel_LuckyEmpty(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("L"), luckyPickedMsg{gen: 1, err: catalog.ErrNoCompanies})

	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, luckyEmptyText, m.toasts.Toasts()[0].notification.Message)
}

func TestModel_InsightsGeneration(t *testing.T) {
	m := ready(t, sampleCompanies())
	stats := directory.DatabaseStats{TotalCompanies: 3}

	m = send(t, m, statsLoadedMsg{gen: 0, stats: stats})
	assert.Equal(t, ModalNone, m.Modals().Active())

	m = send(t, m, tuitest.Key("i"))
	require.Equal(t, ModalInsights, m.Modals().Active())
	assert.Nil(t, m.Modals().Insights.stats)

	m = send(t, m, statsLoadedMsg{gen: 0, stats: stats})
	assert.Nil(t, m.Modals().Insights.stats, "results of an earlier opening are ignored")

	m = send(t, m, statsLoadedMsg{gen: m.insightsGen, stats: stats})
	require.NotNil(t, m.Modals().Insights.stats)
	assert.Equal(t, 3, m.Modals().Insights.stats.TotalCompanies)
}

func TestModel_RemovePill(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("/"), tuitest.Key("q"), tuitest.Key("enter"), tuitest.Key("s"))
	require.Len(t, m.State().Pills(), 2)

	m = send(t, m, tuitest.Key("]"), tuitest.Key("backspace"))
	assert.Empty(t, m.State().Search)
	assert.Empty(t, m.search.Value())
	assert.True(t, m.State().Filters.Stockholm)
	assert.Equal(t, 0, m.pillFocus)

	m = send(t, m, tuitest.Key("backspace"))
	assert.False(t, m.State().HasActiveFilters())
	assert.Equal(t, -1, m.pillFocus)
}

func TestModel_FilterPicker(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("f"))
	require.Equal(t, ModalFilter, m.Modals().Active())

	m = send(t, m, tuitest.Key("space"))
	assert.Equal(t, []string{"Fintech"}, m.State().Filters.Bransch)
	assert.Equal(t, ModalFilter, m.Modals().Active(), "picker stays open while toggling")

	m = send(t, m, tuitest.Key("space"))
	assert.Empty(t, m.State().Filters.Bransch)
}

func TestModel_ClickOutsideClosesModal(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("f"))
	_ = m.View()
	require.False(t, m.Modals().Rect().Empty())

	m = send(t, m, tea.MouseClickMsg{X: 0, Y: 0, Button: tea.MouseLeft})
	assert.Equal(t, ModalNone, m.Modals().Active())
}

func TestModel_ClickSelectsRow(t *testing.T) {
	m := ready(t, sampleCompanies())
	top := lipgloss.Height(m.renderHeader(m.page(), 120))

	m = send(t, m, tea.MouseClickMsg{X: 5, Y: top + 2, Button: tea.MouseLeft})
	assert.Equal(t, 1, m.selected)

	m = send(t, m, tea.MouseClickMsg{X: 5, Y: top + 2, Button: tea.MouseLeft})
	assert.Equal(t, ModalDetail, m.Modals().Active(), "clicking the selected row opens it")
}

func TestModel_ClearAll(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("s"), tuitest.Key("a"), tuitest.Key("x"))

	assert.False(t, m.State().HasActiveFilters())
	assert.Equal(t, 1, m.State().Cursor.Page)
}

func TestModel_MobileLayout(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.WindowSize(80, 40))

	assert.Equal(t, directory.DeviceMobile, m.State().Device)
	assert.Equal(t, directory.DefaultColumns(directory.DeviceMobile), m.State().Columns)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := ready(t, sampleCompanies())
	m = send(t, m, tuitest.Key("/"))

	next, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
}
