package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/pkg/tuitest"
)

func TestDetailModal_Chips(t *testing.T) {
	d := NewDetailModal(testCompany(), 120, 40)

	want := []detailChip{
		{Dim: directory.DimBransch, Value: "Fintech"},
		{Dim: directory.DimBransch, Value: "Hälsa"},
		{Dim: directory.DimTillampning, Value: "Språk & Ljud"},
		{Dim: directory.DimTag, Value: "LLM"},
		{Dim: directory.DimTag, Value: "NLP"},
	}
	assert.Equal(t, want, d.chips)

	_, ok := d.Focused()
	assert.False(t, ok, "nothing is focused on open")

	action, _ := d.Update(tuitest.Key("enter"))
	assert.Equal(t, detailNone, action, "enter without focus does nothing")
}

func TestDetailModal_FocusCycles(t *testing.T) {
	d := NewDetailModal(testCompany(), 120, 40)

	d.Update(tuitest.Key("tab"))
	chip, ok := d.Focused()
	require.True(t, ok)
	assert.Equal(t, "Fintech", chip.Value)

	d.Update(tuitest.Key("shift+tab"))
	chip, _ = d.Focused()
	assert.Equal(t, "NLP", chip.Value, "focus wraps backwards")

	d.Update(tuitest.Key("3"))
	chip, _ = d.Focused()
	assert.Equal(t, "Språk & Ljud", chip.Value)

	action, _ := d.Update(tuitest.Key("enter"))
	assert.Equal(t, detailApplyChip, action)
}

func TestDetailModal_Actions(t *testing.T) {
	d := NewDetailModal(testCompany(), 120, 40)

	action, _ := d.Update(tuitest.Key("e"))
	assert.Equal(t, detailReport, action)

	action, _ = d.Update(tuitest.Key("q"))
	assert.Equal(t, detailClose, action)
}

func TestDetailModal_Content(t *testing.T) {
	got := tuitest.StripANSI(detailContent(testCompany(), detailChips(testCompany()), -1, 80))
	assert.Contains(t, got, "Bygger språkmodeller.")
	assert.NotContains(t, got, "<b>")
	assert.Contains(t, got, registryTitle)
	assert.Contains(t, got, "556000-0000")

	bare := directory.Company{ID: 1, Name: "Tomt AB"}
	got = tuitest.StripANSI(detailContent(bare, nil, -1, 80))
	assert.Contains(t, got, noDescription)
}

func TestReportModal_Steps(t *testing.T) {
	r := NewReportModal(testCompany())
	assert.Equal(t, 0, r.Step())

	action, _ := r.Update(tuitest.Key("enter"))
	assert.Equal(t, formNone, action)
	assert.Equal(t, 1, r.Step())

	report := r.Report()
	assert.Equal(t, int64(7), report.CompanyID)
	assert.Equal(t, directory.ErrorIncorrectInfo, report.ErrorType)
}

func TestReportModal_CancelOnFirstStep(t *testing.T) {
	r := NewReportModal(testCompany())
	action, _ := r.Update(tuitest.Key("esc"))
	assert.Equal(t, formCancel, action)
}

func TestReportModal_SubmitOnce(t *testing.T) {
	r := NewReportModal(testCompany())
	r.Update(tuitest.Key("enter"))

	action, _ := r.Update(tuitest.Key("ctrl+s"))
	assert.Equal(t, formSubmit, action)

	action, _ = r.Update(tuitest.Key("ctrl+s"))
	assert.Equal(t, formNone, action, "no second submission while sending")

	action, _ = r.Update(tuitest.Key("esc"))
	assert.Equal(t, formCancel, action, "esc still closes while sending")
}

func TestReportModal_FailWithFieldErrors(t *testing.T) {
	r := NewReportModal(testCompany())
	r.Update(tuitest.Key("enter"))
	r.Update(tuitest.Key("ctrl+s"))

	err := directory.ErrorReport{CompanyID: 7, ErrorType: directory.ErrorOther}.Validate()
	require.Error(t, err)
	r.Fail(err)

	assert.False(t, r.submitting)
	assert.Equal(t, "description", r.dialog.FocusedKey())
	assert.Empty(t, r.dialog.Error())
}

func TestReportModal_FailOnErrorTypeReturnsToFirstStep(t *testing.T) {
	r := NewReportModal(testCompany())
	r.Update(tuitest.Key("enter"))
	r.Update(tuitest.Key("ctrl+s"))

	r.Fail(directory.ErrorReport{CompanyID: 7, ErrorType: "bogus", Description: "x"}.Validate())
	assert.Equal(t, 0, r.Step())
	assert.False(t, r.submitting)
}

func TestReportModal_FailWithServerMessage(t *testing.T) {
	r := NewReportModal(testCompany())
	r.Update(tuitest.Key("enter"))
	r.Update(tuitest.Key("ctrl+s"))

	r.Fail(&api.SubmitError{Message: "Ogiltig begäran"})
	assert.Equal(t, "Ogiltig begäran", r.dialog.Error())
}

func TestSuggestModal_Suggestion(t *testing.T) {
	s := NewSuggestModal()
	for _, msg := range tuitest.Type("Nytt AB") {
		s.Update(msg)
	}
	s.Update(tuitest.Key("tab"))
	for _, msg := range tuitest.Type("nytt.se") {
		s.Update(msg)
	}

	got := s.Suggestion()
	assert.Equal(t, "Nytt AB", got.CompanyName)
	assert.Equal(t, "nytt.se", got.CompanyWebsite)
	assert.Equal(t, directory.ErrorSuggestNewCompany, got.ErrorType)

	s.Reset()
	assert.Empty(t, s.Suggestion().CompanyName)
}

func TestFilterModal_Tabs(t *testing.T) {
	f := NewFilterModal(directory.Options{
		Bransch:      []string{"Fintech", "Hälsa"},
		AIInriktning: []string{"NLP"},
	}, directory.Filters{Bransch: []string{"Hälsa"}})

	assert.Equal(t, directory.DimBransch, f.Dimension())
	assert.Equal(t, filterNone, f.Update(tuitest.Key("j")))
	v, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, "Hälsa", v)

	f.Update(tuitest.Key("tab"))
	assert.Equal(t, directory.DimTillampning, f.Dimension())
	v, _ = f.Current()
	assert.Equal(t, directory.ApplicationLabels()[0], v, "cursor resets on a new tab")

	f.Update(tuitest.Key("shift+tab"))
	f.Update(tuitest.Key("shift+tab"))
	assert.Equal(t, directory.DimOmsattning, f.Dimension(), "tabs wrap")
	_, ok = f.Current()
	assert.False(t, ok, "dimension without options has no current value")
	assert.Equal(t, filterNone, f.Update(tuitest.Key("space")))

	assert.Equal(t, filterClose, f.Update(tuitest.Key("esc")))
}

func TestFilterModal_Overlay(t *testing.T) {
	f := NewFilterModal(directory.Options{Bransch: []string{"Fintech", "Hälsa"}},
		directory.Filters{Bransch: []string{"Hälsa"}})

	out, rect := f.Overlay(testBackground, 120, 40)
	got := tuitest.StripANSI(out)
	assert.Contains(t, got, "[x] Hälsa")
	assert.Contains(t, got, "[ ] Fintech")
	assert.False(t, rect.Empty())
}

func TestDocModal_Help(t *testing.T) {
	d := NewDocModal("Hjälp", helpDocument(DefaultKeyMap()), 120, 40)
	out, _ := d.Overlay(testBackground, 120, 40)
	assert.Contains(t, tuitest.StripANSI(out), "Hjälp")

	done, _ := d.Update(tuitest.Key("q"))
	assert.True(t, done)
}

func TestHelpDocument_ListsKeys(t *testing.T) {
	doc := helpDocument(DefaultKeyMap())
	assert.Contains(t, doc, "## Tangentbord")
	assert.Contains(t, doc, "rapportera fel")
}
