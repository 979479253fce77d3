package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/charts"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/pkg/tuitest"
)

const testBackground = "background"

func newTestCoordinator() *ModalCoordinator {
	mc := NewModalCoordinator(charts.NewRegistry(), DefaultKeyMap())
	mc.SetSize(120, 40)
	return mc
}

func testCompany() directory.Company {
	return directory.Company{
		ID:             7,
		Name:           "Norrsken AI",
		Bransch:        "Fintech|Hälsa",
		Website:        "https://norrsken.example",
		Description:    "<p>Bygger <b>språkmodeller</b>.</p>",
		LocationCity:   "Stockholm",
		AICapabilities: "LLM, NLP",
		Raw: map[string]any{
			"tillampning_sprak_ljud": true,
			"organization_number":    "556000-0000",
		},
	}
}

func TestModalCoordinator_Overlay_NoModal(t *testing.T) {
	mc := newTestCoordinator()
	assert.Equal(t, testBackground, mc.Overlay(testBackground), "no modal active should return background unchanged")
	assert.True(t, mc.Rect().Empty())
}

func TestModalCoordinator_Overlay_Detail(t *testing.T) {
	mc := newTestCoordinator()
	mc.OpenDetail(testCompany(), listPosition{})

	got := tuitest.StripANSI(mc.Overlay(testBackground))
	assert.Contains(t, got, "Norrsken AI")
	assert.Contains(t, got, "Fintech")
	assert.Contains(t, got, "Språk & Ljud")
	assert.False(t, mc.Rect().Empty(), "rect is recorded after drawing")
}

func TestModalCoordinator_SavesFirstPosition(t *testing.T) {
	mc := newTestCoordinator()
	mc.OpenDetail(testCompany(), listPosition{Selected: 3, Offset: 1})
	mc.OpenReport(testCompany(), listPosition{Selected: 9, Offset: 9})

	assert.Equal(t, ModalReport, mc.Active())
	assert.Nil(t, mc.Detail, "detail is dismissed when the report opens")

	pos, ok := mc.Close()
	require.True(t, ok)
	assert.Equal(t, listPosition{Selected: 3, Offset: 1}, pos)
	assert.Equal(t, ModalNone, mc.Active())
	assert.Nil(t, mc.Report)
}

func TestModalCoordinator_CloseWithNothingOpen(t *testing.T) {
	mc := newTestCoordinator()
	_, ok := mc.Close()
	assert.False(t, ok)
}

func TestModalCoordinator_InsightsReleasesCharts(t *testing.T) {
	mc := newTestCoordinator()
	mc.OpenInsights(listPosition{})
	mc.Insights.SetStats(directory.DatabaseStats{
		TotalCompanies: 12,
		Geographic:     []directory.Count{{Label: "Stockholm", Count: 8}, {Label: "Göteborg", Count: 4}},
	})
	assert.Positive(t, mc.Charts().Len())

	got := tuitest.StripANSI(mc.Overlay(testBackground))
	assert.Contains(t, got, "Totalt 12 företag")
	assert.Contains(t, got, "Geografisk fördelning")

	mc.Close()
	assert.Zero(t, mc.Charts().Len(), "closing insights destroys every chart")
}

func TestModalCoordinator_SuggestKeepsDraftAcrossOpens(t *testing.T) {
	mc := newTestCoordinator()
	mc.OpenSuggest(listPosition{})
	first := mc.Suggest

	mc.Close()
	mc.OpenSuggest(listPosition{})
	assert.Same(t, first, mc.Suggest)
}

func TestModalCoordinator_ReleaseNotesTitle(t *testing.T) {
	mc := newTestCoordinator()
	mc.OpenReleaseNotes("v1.2.0", listPosition{})

	got := tuitest.StripANSI(mc.Overlay(testBackground))
	assert.Contains(t, got, "Nyheter")
	assert.Contains(t, got, "v1.2.0")
}

func TestModalCoordinator_HasEditorFocus(t *testing.T) {
	mc := newTestCoordinator()
	assert.False(t, mc.HasEditorFocus())

	mc.OpenHelp(listPosition{})
	assert.False(t, mc.HasEditorFocus())

	mc.OpenSuggest(listPosition{})
	assert.True(t, mc.HasEditorFocus())
}

func TestModalKind_String(t *testing.T) {
	assert.Equal(t, "none", ModalNone.String())
	assert.Equal(t, "insights", ModalInsights.String())
}
