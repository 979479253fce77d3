package directory

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the page size the website uses.
const DefaultPerPage = 50

// Query is a company listing request.
type Query struct {
	Page    int
	PerPage int
	Search  string
	Filters Filters
}

// Values encodes the query as URL parameters. Defaults are omitted and
// multi-valued dimensions repeat their parameter once per value.
func (q Query) Values() url.Values {
	v := url.Values{}

	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))

	if q.Search != "" {
		v.Set("search", q.Search)
	}

	f := q.Filters
	if f.Stockholm {
		v.Set(string(DimStockholm), "true")
	}
	if f.Arbetsgivare {
		v.Set(string(DimArbetsgivare), "true")
	}
	for _, d := range MultiDimensions {
		for _, val := range f.Values(d) {
			v.Add(string(d), val)
		}
	}
	if f.AIInriktning != "" {
		v.Set(string(DimAIInriktning), f.AIInriktning)
	}
	if f.Tag != "" {
		v.Set(string(DimTag), f.Tag)
	}
	return v
}

// Filtered reports whether the query narrows the listing.
func (q Query) Filtered() bool {
	return HasActiveFilters(q.Filters, q.Search)
}
