package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnnamedCompany is shown when a company has no name.
const UnnamedCompany = "Företag utan namn"

// Company is a flat directory record. Well known fields are decoded into
// typed fields; every field is also kept in Raw so column-driven rendering
// can look up arbitrary column names.
type Company struct {
	ID             int64
	Name           string
	Bransch        string
	Website        string
	Description    string
	LocationCity   string
	LogoURL        string
	AICapabilities string
	GreaterSthlm   *bool

	Raw map[string]any
}

// UnmarshalJSON decodes a company while keeping numbers as json.Number.
func (c *Company) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	id, err := toInt64(raw["id"])
	if err != nil {
		return fmt.Errorf("company id: %w", err)
	}

	*c = Company{
		ID:             id,
		Name:           stringField(raw, "name"),
		Bransch:        stringField(raw, "bransch"),
		Website:        stringField(raw, "website"),
		Description:    stringField(raw, "description"),
		LocationCity:   stringField(raw, "location_city"),
		LogoURL:        stringField(raw, "logo_url"),
		AICapabilities: stringField(raw, "ai_capabilities"),
		Raw:            raw,
	}
	if b, ok := raw["location_greater_stockholm"].(bool); ok {
		c.GreaterSthlm = &b
	}
	return nil
}

// MarshalJSON writes the raw record back out, so `ls --json` mirrors the API.
func (c Company) MarshalJSON() ([]byte, error) {
	if c.Raw != nil {
		return json.Marshal(c.Raw)
	}
	return json.Marshal(map[string]any{
		"id":              c.ID,
		"name":            c.Name,
		"bransch":         c.Bransch,
		"website":         c.Website,
		"description":     c.Description,
		"location_city":   c.LocationCity,
		"logo_url":        c.LogoURL,
		"ai_capabilities": c.AICapabilities,
	})
}

// Field returns the raw value for a column name.
func (c Company) Field(name string) (any, bool) {
	v, ok := c.Raw[name]
	return v, ok
}

// DisplayName returns the name or the unnamed placeholder.
func (c Company) DisplayName() string {
	if c.Name == "" {
		return UnnamedCompany
	}
	return c.Name
}

// BranschTags returns the parsed sector chips.
func (c Company) BranschTags() []string {
	return ParseTags(c.Bransch)
}

// Applications returns the tillämpning labels whose flag is set, in
// canonical order.
func (c Company) Applications() []string {
	var out []string
	for _, app := range Applications {
		if b, ok := c.Raw[app.Field].(bool); ok && b {
			out = append(out, app.Label)
		}
	}
	return out
}

// Application maps a boolean company field to its tillämpning label.
type Application struct {
	Field string
	Label string
}

// Applications lists the tillämpning categories in display order.
var Applications = []Application{
	{Field: "tillampning_optimering_automation", Label: "Optimering & Automation"},
	{Field: "tillampning_sprak_ljud", Label: "Språk & Ljud"},
	{Field: "tillampning_prognos_prediktion", Label: "Prognos & Prediktion"},
	{Field: "tillampning_infrastruktur_data", Label: "Infrastruktur & Data"},
	{Field: "tillampning_insikt_analys", Label: "Insikt & Analys"},
	{Field: "tillampning_visuell_ai", Label: "Visuell AI"},
}

// ApplicationLabels returns the labels of all tillämpning categories.
func ApplicationLabels() []string {
	out := make([]string, len(Applications))
	for i, a := range Applications {
		out[i] = a.Label
	}
	return out
}

// RegistryField is one row of the Bolagsverket section in the detail view.
type RegistryField struct {
	Key   string
	Label string
}

// RegistryFields lists the company registry rows in display order.
var RegistryFields = []RegistryField{
	{Key: "organization_number", Label: "Organisationsnummer"},
	{Key: "scb_namn", Label: "Juridiskt namn"},
	{Key: "scb_adress", Label: "Adress"},
	{Key: "scb_postnr", Label: "Postnummer"},
	{Key: "municipality", Label: "Ort"},
	{Key: "scb_kontor", Label: "Antal kontor"},
	{Key: "employee_size", Label: "Antal anställda"},
	{Key: "scb_omsattning", Label: "Omsättning"},
	{Key: "scb_alder", Label: "Antal år verksamt"},
}

// RegistryRow is a populated registry field.
type RegistryRow struct {
	Label string
	Value string
}

// Registry returns the non-empty registry rows for the company.
func (c Company) Registry() []RegistryRow {
	var rows []RegistryRow
	for _, f := range RegistryFields {
		v, ok := c.Raw[f.Key]
		if !ok || IsEmptyValue(v) {
			continue
		}
		rows = append(rows, RegistryRow{Label: f.Label, Value: FormatCellValue(v)})
	}
	return rows
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return FormatCellValue(v)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		return n.Int64()
	case float64:
		return int64(n), nil
	case string:
		if n == "" {
			return 0, nil
		}
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
