package directory

import (
	"fmt"
	"sort"
)

// Device selects the column set and layout.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// ParseDevice validates a device name.
func ParseDevice(s string) (Device, error) {
	switch Device(s) {
	case DeviceDesktop, DeviceMobile:
		return Device(s), nil
	default:
		return "", fmt.Errorf("unknown device %q (want mobile or desktop)", s)
	}
}

// DeviceForWidth returns mobile when width is at or below breakpoint.
func DeviceForWidth(width, breakpoint int) Device {
	if width <= breakpoint {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Column describes one rendered company field.
type Column struct {
	Name         string `json:"column_name"`
	Label        string `json:"label"`
	DisplayOrder int    `json:"display_order"`
}

// Special column names with dedicated rendering.
const (
	ColumnName           = "name"
	ColumnBransch        = "bransch"
	ColumnWebsite        = "website"
	ColumnDescription    = "description"
	ColumnAICapabilities = "ai_capabilities"
)

// MoreInfoHeader is the trailing desktop column that opens the detail view.
const MoreInfoHeader = "Mer info"

// columnLabels is used when the server sends a column without a label.
var columnLabels = map[string]string{
	"name":                       "Företagsnamn",
	"bransch":                    "Bransch",
	"website":                    "Webbplats",
	"type":                       "Typ",
	"type_new":                   "Typ (ny)",
	"description":                "Beskrivning",
	"location_city":              "Ort",
	"location_greater_stockholm": "Stor-Stockholm",
	"owner":                      "Ägare",
	"logo_url":                   "Logotyp URL",
	"data_quality_score":         "Datakvalitet",
	"source_url":                 "Käll-URL",
	"sector_vec_1":               "Sektor Vec 1",
	"sector_vec_2":               "Sektor Vec 2",
	"organization_number":        "Org.nr",
	"municipality":               "Ort",
	"county":                     "Län",
	"employee_size":              "Antal anställda",
	"legal_form":                 "Juridisk form",
	"industry_1":                 "Bransch 1",
	"industry_2":                 "Bransch 2",
	"phone":                      "Telefon",
	"email":                      "E-post",
	"post_city":                  "Postort",
	"sectors":                    "Sektorer",
	"domains":                    "Domäner",
	"ai_capabilities":            "AI-inriktning",
	"dimensions":                 "Dimensioner",
}

// Header returns the header text for the column.
func (c Column) Header() string {
	if c.Name == ColumnAICapabilities {
		return "AI/ML-tillämpning"
	}
	if c.Label != "" {
		return c.Label
	}
	if l, ok := columnLabels[c.Name]; ok {
		return l
	}
	return c.Name
}

// DefaultColumns returns the built-in column set for a device, used when
// the server has no configuration.
func DefaultColumns(d Device) []Column {
	if d == DeviceMobile {
		return []Column{
			{Name: "name", Label: "Företag", DisplayOrder: 0},
			{Name: "bransch", Label: "Bransch", DisplayOrder: 1},
			{Name: "location_city", Label: "Ort", DisplayOrder: 2},
		}
	}
	return []Column{
		{Name: "name", Label: "Företag", DisplayOrder: 0},
		{Name: "bransch", Label: "Bransch", DisplayOrder: 1},
		{Name: "sectors", Label: "Område", DisplayOrder: 2},
		{Name: "ai_capabilities", Label: "AI-typ", DisplayOrder: 3},
		{Name: "location_city", Label: "Ort", DisplayOrder: 4},
	}
}

// SortColumns orders columns by display order, keeping server order on ties.
func SortColumns(cols []Column) []Column {
	out := make([]Column, len(cols))
	copy(out, cols)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}
