package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// Endpoint paths.
const (
	PathCompanies     = "/api/companies/"
	PathColumns       = "/api/columns/"
	PathFilterOptions = "/api/filter-options/"
	PathDatabaseStats = "/api/database-stats/"
	PathReportError   = "/api/report-error/"
)

// CompanyPage is one page of the company listing.
type CompanyPage struct {
	Companies  []directory.Company `json:"companies"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
}

type companyPageWire struct {
	Companies  json.RawMessage `json:"companies"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// ListCompanies fetches one page of companies matching q.
func (c *Client) ListCompanies(ctx context.Context, q directory.Query) (CompanyPage, error) {
	var wire companyPageWire
	if err := c.getJSON(ctx, PathCompanies, q.Values(), &wire); err != nil {
		return CompanyPage{}, err
	}
	if len(wire.Companies) == 0 || string(wire.Companies) == "null" {
		return CompanyPage{}, malformed(PathCompanies, nil)
	}

	var companies []directory.Company
	if err := json.Unmarshal(wire.Companies, &companies); err != nil {
		return CompanyPage{}, malformed(PathCompanies, err)
	}

	perPage := wire.PerPage
	if perPage == 0 {
		perPage = q.PerPage
	}
	if perPage == 0 {
		perPage = directory.DefaultPerPage
	}
	totalPages := wire.TotalPages
	if totalPages == 0 {
		totalPages = directory.TotalPages(wire.Total, perPage)
	}
	page := wire.Page
	if page == 0 {
		page = max(q.Page, 1)
	}

	return CompanyPage{
		Companies:  companies,
		Total:      wire.Total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

type columnsWire struct {
	Columns      *[]directory.Column `json:"columns"`
	UsingDefault bool                `json:"using_defaults"`
}

// ListColumns fetches the column configuration for a device, ordered by
// display order. An empty configuration yields the built-in defaults.
func (c *Client) ListColumns(ctx context.Context, device directory.Device) ([]directory.Column, error) {
	var wire columnsWire
	if err := c.getJSON(ctx, PathColumns, url.Values{"device": {string(device)}}, &wire); err != nil {
		return nil, err
	}
	if wire.Columns == nil {
		return nil, malformed(PathColumns, nil)
	}
	if len(*wire.Columns) == 0 {
		return directory.DefaultColumns(device), nil
	}
	return directory.SortColumns(*wire.Columns), nil
}

// ListFilterOptions fetches the option lists per filter dimension.
func (c *Client) ListFilterOptions(ctx context.Context) (directory.Options, error) {
	var opts directory.Options
	if err := c.getJSON(ctx, PathFilterOptions, nil, &opts); err != nil {
		return directory.Options{}, err
	}
	return opts, nil
}

// DatabaseStats fetches the aggregate counts for the insights dashboard.
func (c *Client) DatabaseStats(ctx context.Context) (directory.DatabaseStats, error) {
	var stats directory.DatabaseStats
	if err := c.getJSON(ctx, PathDatabaseStats, nil, &stats); err != nil {
		return directory.DatabaseStats{}, err
	}
	return stats, nil
}
