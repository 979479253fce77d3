package tui

import (
	"github.com/Spruttybangbang/aim25s-website/internal/charts"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
)

// ModalKind identifies the primary modal on screen.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalDetail
	ModalReport
	ModalSuggest
	ModalHelp
	ModalReleaseNotes
	ModalInsights
	ModalFilter
)

func (k ModalKind) String() string {
	switch k {
	case ModalDetail:
		return "detail"
	case ModalReport:
		return "report"
	case ModalSuggest:
		return "suggest"
	case ModalHelp:
		return "help"
	case ModalReleaseNotes:
		return "release-notes"
	case ModalInsights:
		return "insights"
	case ModalFilter:
		return "filter"
	default:
		return "none"
	}
}

// listPosition is the list cursor saved while a modal is open.
type listPosition struct {
	Selected int
	Offset   int
}

// ModalCoordinator shows at most one primary modal. The list position is
// saved when the first modal opens and handed back when the last closes.
type ModalCoordinator struct {
	active ModalKind
	saved  listPosition
	rect   components.Rect

	Detail   *DetailModal
	Report   *ReportModal
	Suggest  *SuggestModal
	Doc      *DocModal
	Insights *InsightsModal
	Filter   *FilterModal

	charts *charts.Registry
	keys   KeyMap

	width, height int
}

// NewModalCoordinator returns a coordinator with nothing open.
func NewModalCoordinator(registry *charts.Registry, keys KeyMap) *ModalCoordinator {
	if registry == nil {
		registry = charts.NewRegistry()
	}
	return &ModalCoordinator{charts: registry, keys: keys}
}

// Active returns the open modal.
func (mc *ModalCoordinator) Active() ModalKind { return mc.active }

// IsOpen reports whether any modal is open.
func (mc *ModalCoordinator) IsOpen() bool { return mc.active != ModalNone }

// Rect returns the screen rectangle of the modal drawn last.
func (mc *ModalCoordinator) Rect() components.Rect { return mc.rect }

// Charts returns the chart registry used by the insights modal.
func (mc *ModalCoordinator) Charts() *charts.Registry { return mc.charts }

// SetSize resizes the open modal.
func (mc *ModalCoordinator) SetSize(w, h int) {
	mc.width, mc.height = w, h

	switch mc.active {
	case ModalDetail:
		mc.Detail.SetSize(w, h)
	case ModalHelp, ModalReleaseNotes:
		mc.Doc.SetSize(w, h)
	case ModalInsights:
		mc.Insights.SetSize(w, h)
	}
}

func (mc *ModalCoordinator) size() (int, int) {
	w, h := mc.width, mc.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return w, h
}

func (mc *ModalCoordinator) open(kind ModalKind, pos listPosition) {
	if mc.active == ModalNone {
		mc.saved = pos
	} else {
		mc.dismiss()
	}
	mc.active = kind
}

// OpenDetail shows the detail modal for c.
func (mc *ModalCoordinator) OpenDetail(c directory.Company, pos listPosition) {
	w, h := mc.size()
	mc.open(ModalDetail, pos)
	mc.Detail = NewDetailModal(c, w, h)
}

// OpenReport closes the detail modal and shows the error report form for c.
func (mc *ModalCoordinator) OpenReport(c directory.Company, pos listPosition) {
	mc.open(ModalReport, pos)
	mc.Report = NewReportModal(c)
}

// OpenSuggest shows the suggestion form.
func (mc *ModalCoordinator) OpenSuggest(pos listPosition) {
	mc.open(ModalSuggest, pos)
	if mc.Suggest == nil {
		mc.Suggest = NewSuggestModal()
	}
}

// OpenHelp shows the help document.
func (mc *ModalCoordinator) OpenHelp(pos listPosition) {
	w, h := mc.size()
	mc.open(ModalHelp, pos)
	mc.Doc = NewDocModal("Hjälp", helpDocument(mc.keys), w, h)
}

// OpenReleaseNotes shows the release notes, titled with version when set.
func (mc *ModalCoordinator) OpenReleaseNotes(version string, pos listPosition) {
	w, h := mc.size()
	title := "Nyheter"
	if version != "" {
		title += " " + styles.TextMutedStyle.Render(version)
	}
	mc.open(ModalReleaseNotes, pos)
	mc.Doc = NewDocModal(title, releaseNotesMarkdown, w, h)
}

// OpenInsights shows the insights modal in its loading state.
func (mc *ModalCoordinator) OpenInsights(pos listPosition) {
	w, h := mc.size()
	mc.open(ModalInsights, pos)
	mc.Insights = NewInsightsModal(mc.charts, w, h)
}

// OpenFilter shows the filter picker.
func (mc *ModalCoordinator) OpenFilter(options directory.Options, filters directory.Filters, pos listPosition) {
	mc.open(ModalFilter, pos)
	mc.Filter = NewFilterModal(options, filters)
}

// dismiss tears down the active modal without touching the saved position.
func (mc *ModalCoordinator) dismiss() {
	switch mc.active {
	case ModalDetail:
		mc.Detail = nil
	case ModalReport:
		mc.Report.Reset()
		mc.Report = nil
	case ModalSuggest:
		mc.Suggest.Reset()
	case ModalHelp, ModalReleaseNotes:
		mc.Doc = nil
	case ModalInsights:
		mc.Insights.Close()
		mc.Insights = nil
	case ModalFilter:
		mc.Filter = nil
	}
	mc.active = ModalNone
	mc.rect = components.Rect{}
}

// Close hides the active modal and returns the list position saved when
// it opened. ok is false when nothing was open.
func (mc *ModalCoordinator) Close() (pos listPosition, ok bool) {
	if mc.active == ModalNone {
		return listPosition{}, false
	}
	mc.dismiss()
	return mc.saved, true
}

// HasEditorFocus reports whether the open modal captures text input.
func (mc *ModalCoordinator) HasEditorFocus() bool {
	return mc.active == ModalReport || mc.active == ModalSuggest
}

// Overlay draws the active modal over bg and records its rectangle.
func (mc *ModalCoordinator) Overlay(bg string) string {
	w, h := mc.size()

	var (
		out  string
		rect components.Rect
	)
	switch mc.active {
	case ModalDetail:
		out, rect = mc.Detail.Overlay(bg, w, h)
	case ModalReport:
		out, rect = mc.Report.Overlay(bg, w, h)
	case ModalSuggest:
		out, rect = mc.Suggest.Overlay(bg, w, h)
	case ModalHelp, ModalReleaseNotes:
		out, rect = mc.Doc.Overlay(bg, w, h)
	case ModalInsights:
		out, rect = mc.Insights.Overlay(bg, w, h)
	case ModalFilter:
		out, rect = mc.Filter.Overlay(bg, w, h)
	default:
		return bg
	}
	mc.rect = rect
	return out
}
