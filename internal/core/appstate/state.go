// Package appstate holds the browsing state of the directory client as an
// explicit value. Every update is a pure function returning the next state
// and the side effect the caller must perform.
package appstate

import (
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// Effect tells the caller what to do after an update.
type Effect int

const (
	// EffectNone means nothing needs to be fetched.
	EffectNone Effect = iota
	// EffectReload means the company list must be fetched.
	EffectReload
	// EffectReloadColumns means columns and the company list must be fetched.
	EffectReloadColumns
)

func (e Effect) String() string {
	switch e {
	case EffectReload:
		return "reload"
	case EffectReloadColumns:
		return "reload-columns"
	default:
		return "none"
	}
}

// Status is the listing load status.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

// State is the complete browsing state.
type State struct {
	Device    directory.Device
	PerPage   int
	Search    string
	Filters   directory.Filters
	Cursor    directory.Cursor
	Columns   []directory.Column
	Battery   directory.Battery
	Options   directory.Options
	Companies []directory.Company
	Total     int

	Status Status
	Err    error

	// RequestToken is the token of the most recently issued list request.
	RequestToken uint64
}

// New returns the initial state for a device.
func New(device directory.Device, perPage int) State {
	if perPage <= 0 {
		perPage = directory.DefaultPerPage
	}
	return State{
		Device:  device,
		PerPage: perPage,
		Cursor:  directory.NewCursor(),
		Columns: directory.DefaultColumns(device),
	}
}

// HasActiveFilters reports whether any filter or the search text is set.
func (s State) HasActiveFilters() bool {
	return directory.HasActiveFilters(s.Filters, s.Search)
}

// Pills returns the removable summaries of the active filters.
func (s State) Pills() []directory.Pill {
	return directory.Pills(s.Filters, s.Search)
}

// Query returns the listing request for the current state.
func (s State) Query() directory.Query {
	return directory.Query{
		Page:    s.Cursor.Page,
		PerPage: s.PerPage,
		Search:  s.Search,
		Filters: s.Filters,
	}
}

// StatsText returns the headline sentence above the listing.
func (s State) StatsText() string {
	filtered := s.HasActiveFilters()
	return directory.StatsText(s.Battery.HeadlineCount(filtered), filtered)
}

// Loading reports whether a list request is in flight.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// filterChanged resets pagination after any filter or search mutation.
func (s State) filterChanged() (State, Effect) {
	s.Cursor.Page = 1
	return s, EffectReload
}

// SetSearch replaces the free-text search.
func SetSearch(s State, search string) (State, Effect) {
	if s.Search == search {
		return s, EffectNone
	}
	s.Search = search
	return s.filterChanged()
}

// ToggleStockholm flips the Stor-Stockholm filter.
func ToggleStockholm(s State) (State, Effect) {
	s.Filters.Stockholm = !s.Filters.Stockholm
	return s.filterChanged()
}

// ToggleArbetsgivare flips the registered-employer filter.
func ToggleArbetsgivare(s State) (State, Effect) {
	s.Filters.Arbetsgivare = !s.Filters.Arbetsgivare
	return s.filterChanged()
}

// AddValue adds a value to a multi-valued dimension. Adding an existing
// value leaves the filter unchanged but still resets to page 1 and reloads.
func AddValue(s State, d directory.Dimension, value string) (State, Effect) {
	next, err := s.Filters.Add(d, value)
	if err != nil {
		return s, EffectNone
	}
	s.Filters = next
	return s.filterChanged()
}

// AddBransch adds a sector filter, as done by clicking a sector chip.
func AddBransch(s State, value string) (State, Effect) {
	return AddValue(s, directory.DimBransch, value)
}

// AddTillampning adds an application filter, as done by clicking an
// application chip.
func AddTillampning(s State, value string) (State, Effect) {
	return AddValue(s, directory.DimTillampning, value)
}

// ToggleValue flips a value in a multi-valued dimension.
func ToggleValue(s State, d directory.Dimension, value string) (State, Effect) {
	next, err := s.Filters.Toggle(d, value)
	if err != nil {
		return s, EffectNone
	}
	s.Filters = next
	return s.filterChanged()
}

// RemoveValue deletes a value from a multi-valued dimension.
func RemoveValue(s State, d directory.Dimension, value string) (State, Effect) {
	s.Filters = s.Filters.Remove(d, value)
	return s.filterChanged()
}

// SetAIInriktning sets the single-valued AI focus filter. Empty clears it.
func SetAIInriktning(s State, value string) (State, Effect) {
	s.Filters.AIInriktning = value
	return s.filterChanged()
}

// AddTag sets the capability tag filter.
func AddTag(s State, value string) (State, Effect) {
	s.Filters.Tag = value
	return s.filterChanged()
}

// RemovePill clears the filter a pill represents.
func RemovePill(s State, p directory.Pill) (State, Effect) {
	switch {
	case p.Dim == directory.DimSearch:
		s.Search = ""
	case p.Dim.IsMulti():
		s.Filters = s.Filters.Remove(p.Dim, p.Value)
	default:
		s.Filters = s.Filters.Clear(p.Dim)
	}
	return s.filterChanged()
}

// ClearAll restores every filter and the search text to their defaults.
func ClearAll(s State) (State, Effect) {
	s.Filters = directory.Filters{}
	s.Search = ""
	return s.filterChanged()
}

// GotoPage moves to page n when it is within range.
func GotoPage(s State, n int) (State, Effect) {
	if n < 1 || n > s.Cursor.TotalPages || n == s.Cursor.Page {
		return s, EffectNone
	}
	s.Cursor.Page = n
	return s, EffectReload
}

// NextPage advances one page unless already on the last.
func NextPage(s State) (State, Effect) {
	if !s.Cursor.CanNext() {
		return s, EffectNone
	}
	return GotoPage(s, s.Cursor.Page+1)
}

// PrevPage goes back one page unless already on the first.
func PrevPage(s State) (State, Effect) {
	if !s.Cursor.CanPrev() {
		return s, EffectNone
	}
	return GotoPage(s, s.Cursor.Page-1)
}

// SetDevice switches layout. A change requires new columns.
func SetDevice(s State, d directory.Device) (State, Effect) {
	if s.Device == d {
		return s, EffectNone
	}
	s.Device = d
	s.Columns = directory.DefaultColumns(d)
	return s, EffectReloadColumns
}

// SetColumns installs the column descriptors for the current device.
func SetColumns(s State, device directory.Device, cols []directory.Column) State {
	if device != s.Device {
		return s
	}
	if len(cols) == 0 {
		cols = directory.DefaultColumns(device)
	}
	s.Columns = directory.SortColumns(cols)
	return s
}

// SetOptions installs the filter option lists.
func SetOptions(s State, o directory.Options) State {
	s.Options = o
	return s
}

// SetBatteryTotal seeds the unfiltered total from a cache.
func SetBatteryTotal(s State, total int) State {
	if !s.Battery.Captured() && total > 0 {
		s.Battery.Total = total
	}
	return s
}

// RefreshBattery forgets the cached total and reloads so it is captured again.
func RefreshBattery(s State) (State, Effect) {
	s.Battery = s.Battery.Reset()
	return s, EffectReload
}

// BeginLoad marks a list request with the given token as in flight.
func BeginLoad(s State, token uint64) State {
	s.RequestToken = token
	s.Status = StatusLoading
	s.Err = nil
	return s
}

// Page is a company list response.
type Page struct {
	Companies  []directory.Company
	Total      int
	TotalPages int
}

// ApplyCompanies installs a response. Responses for any token other than
// the latest issued one are ignored; ok reports whether it was applied.
//
// When the result set shrank below the requested page, the cursor moves to
// the new last page and EffectReload asks for that page's rows.
func ApplyCompanies(s State, token uint64, p Page) (next State, effect Effect, ok bool) {
	if token != s.RequestToken {
		return s, EffectNone, false
	}

	totalPages := p.TotalPages
	if totalPages < 1 {
		totalPages = directory.TotalPages(p.Total, s.PerPage)
	}

	requested := s.Cursor.Page
	s.Companies = p.Companies
	s.Total = p.Total
	s.Cursor = directory.Cursor{Page: requested, TotalPages: totalPages}.Normalize()
	s.Battery = s.Battery.Observe(p.Total, s.HasActiveFilters())
	s.Status = StatusReady
	s.Err = nil

	if s.Cursor.Page != requested {
		return s, EffectReload, true
	}
	return s, EffectNone, true
}

// ApplyError records a failed list request. Stale failures are ignored.
func ApplyError(s State, token uint64, err error) (State, bool) {
	if token != s.RequestToken {
		return s, false
	}
	s.Status = StatusError
	s.Err = err
	s.Companies = nil
	return s, true
}
