package directory

import (
	"fmt"
	"slices"
)

// Dimension names a filter dimension. Values match the query parameter names.
type Dimension string

const (
	DimSearch       Dimension = "search"
	DimStockholm    Dimension = "stockholm"
	DimArbetsgivare Dimension = "arbetsgivare"
	DimBransch      Dimension = "bransch"
	DimTillampning  Dimension = "tillampning"
	DimAnstallda    Dimension = "anstallda"
	DimOmsattning   Dimension = "omsattning"
	DimAIInriktning Dimension = "ai_inriktning"
	DimTag          Dimension = "tag"
)

// MultiDimensions lists the multi-valued dimensions in pill order.
var MultiDimensions = []Dimension{DimBransch, DimTillampning, DimAnstallda, DimOmsattning}

// IsMulti reports whether d holds a list of values.
func (d Dimension) IsMulti() bool {
	return slices.Contains(MultiDimensions, d)
}

// Filters is the set of active filter selections. Methods never mutate the
// receiver; they return an updated copy.
type Filters struct {
	Stockholm    bool
	Arbetsgivare bool
	Bransch      []string
	Tillampning  []string
	Anstallda    []string
	Omsattning   []string
	AIInriktning string
	Tag          string
}

// IsZero reports whether every dimension is at its default.
func (f Filters) IsZero() bool {
	return !f.Stockholm && !f.Arbetsgivare &&
		len(f.Bransch) == 0 && len(f.Tillampning) == 0 &&
		len(f.Anstallda) == 0 && len(f.Omsattning) == 0 &&
		f.AIInriktning == "" && f.Tag == ""
}

// HasActiveFilters reports whether any filter or the search text deviates
// from its default.
func HasActiveFilters(f Filters, search string) bool {
	return search != "" || !f.IsZero()
}

// Values returns the values of a multi-valued dimension.
func (f Filters) Values(d Dimension) []string {
	switch d {
	case DimBransch:
		return f.Bransch
	case DimTillampning:
		return f.Tillampning
	case DimAnstallda:
		return f.Anstallda
	case DimOmsattning:
		return f.Omsattning
	default:
		return nil
	}
}

// Has reports whether value is selected in a multi-valued dimension.
func (f Filters) Has(d Dimension, value string) bool {
	return slices.Contains(f.Values(d), value)
}

// Add appends value to a multi-valued dimension unless already present.
func (f Filters) Add(d Dimension, value string) (Filters, error) {
	if !d.IsMulti() {
		return f, fmt.Errorf("dimension %q is not multi-valued", d)
	}
	if value == "" || f.Has(d, value) {
		return f, nil
	}
	return f.withValues(d, append(slices.Clone(f.Values(d)), value)), nil
}

// Remove deletes value from a multi-valued dimension.
func (f Filters) Remove(d Dimension, value string) Filters {
	vals := f.Values(d)
	if !slices.Contains(vals, value) {
		return f
	}
	next := make([]string, 0, len(vals)-1)
	for _, v := range vals {
		if v != value {
			next = append(next, v)
		}
	}
	return f.withValues(d, next)
}

// Toggle adds value when absent and removes it when present.
func (f Filters) Toggle(d Dimension, value string) (Filters, error) {
	if f.Has(d, value) {
		return f.Remove(d, value), nil
	}
	return f.Add(d, value)
}

// Clear resets a single dimension to its default.
func (f Filters) Clear(d Dimension) Filters {
	switch d {
	case DimStockholm:
		f.Stockholm = false
	case DimArbetsgivare:
		f.Arbetsgivare = false
	case DimAIInriktning:
		f.AIInriktning = ""
	case DimTag:
		f.Tag = ""
	default:
		if d.IsMulti() {
			f = f.withValues(d, nil)
		}
	}
	return f
}

func (f Filters) withValues(d Dimension, vals []string) Filters {
	if len(vals) == 0 {
		vals = nil
	}
	switch d {
	case DimBransch:
		f.Bransch = vals
	case DimTillampning:
		f.Tillampning = vals
	case DimAnstallda:
		f.Anstallda = vals
	case DimOmsattning:
		f.Omsattning = vals
	}
	return f
}

// Pill is a removable summary of one active filter value.
type Pill struct {
	Label string
	Dim   Dimension
	Value string
}

// Pills returns the active filter summaries in display order.
func Pills(f Filters, search string) []Pill {
	var pills []Pill
	if search != "" {
		pills = append(pills, Pill{Label: fmt.Sprintf("Sök: %q", search), Dim: DimSearch, Value: search})
	}
	if f.Stockholm {
		pills = append(pills, Pill{Label: "Stor-Stockholm", Dim: DimStockholm})
	}
	if f.Arbetsgivare {
		pills = append(pills, Pill{Label: "Registrerad arbetsgivare", Dim: DimArbetsgivare})
	}
	for _, v := range f.Bransch {
		pills = append(pills, Pill{Label: "Bransch: " + v, Dim: DimBransch, Value: v})
	}
	for _, v := range f.Tillampning {
		pills = append(pills, Pill{Label: "Tillämpning: " + v, Dim: DimTillampning, Value: v})
	}
	if f.AIInriktning != "" {
		pills = append(pills, Pill{Label: "AI-inriktning: " + f.AIInriktning, Dim: DimAIInriktning, Value: f.AIInriktning})
	}
	for _, v := range f.Anstallda {
		pills = append(pills, Pill{Label: "Anställda: " + v, Dim: DimAnstallda, Value: v})
	}
	for _, v := range f.Omsattning {
		pills = append(pills, Pill{Label: "Omsättning: " + v, Dim: DimOmsattning, Value: v})
	}
	if f.Tag != "" {
		pills = append(pills, Pill{Label: "Tagg: " + f.Tag, Dim: DimTag, Value: f.Tag})
	}
	return pills
}

// Options are the enumerated values offered per filter dimension.
type Options struct {
	Bransch      []string `json:"bransch"`
	Anstallda    []string `json:"anstallda"`
	Omsattning   []string `json:"omsattning"`
	AIInriktning []string `json:"ai_inriktning"`
}

// For returns the option values for a dimension. Tillämpning options are
// fixed client side.
func (o Options) For(d Dimension) []string {
	switch d {
	case DimBransch:
		return o.Bransch
	case DimAnstallda:
		return o.Anstallda
	case DimOmsattning:
		return o.Omsattning
	case DimAIInriktning:
		return o.AIInriktning
	case DimTillampning:
		return ApplicationLabels()
	default:
		return nil
	}
}
