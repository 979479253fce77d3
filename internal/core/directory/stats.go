package directory

import (
	"encoding/json"
	"sort"
)

// UnknownLabel replaces missing group labels in statistics.
const UnknownLabel = "Okänd"

// Count is one labelled aggregate.
type Count struct {
	Label string
	Count int
}

// DatabaseStats holds the aggregate counts for the insights dashboard.
type DatabaseStats struct {
	TotalCompanies int
	Geographic     []Count
	Bransch        []Count
	Applications   []Count
	Revenue        []Count
	Employees      []Count
}

type rawStats struct {
	TotalCompanies int               `json:"total_companies"`
	Geographic     []json.RawMessage `json:"geographic"`
	Bransch        []json.RawMessage `json:"bransch"`
	Applications   map[string]int    `json:"applications"`
	Revenue        []json.RawMessage `json:"revenue"`
	Employees      []json.RawMessage `json:"employees"`
}

// UnmarshalJSON decodes the grouped rows, which are keyed by their source
// column name.
func (s *DatabaseStats) UnmarshalJSON(data []byte) error {
	var raw rawStats
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	geo, err := decodeGroups(raw.Geographic, "STAD")
	if err != nil {
		return err
	}
	bransch, err := decodeGroups(raw.Bransch, "BRANSCHKLUSTER_V2")
	if err != nil {
		return err
	}
	revenue, err := decodeGroups(raw.Revenue, "OMSÄTTNING_GRUPPERING_V2")
	if err != nil {
		return err
	}
	employees, err := decodeGroups(raw.Employees, "ANSTÄLLDA_GRUPPERING_V2")
	if err != nil {
		return err
	}

	apps := make([]Count, 0, len(raw.Applications))
	for label, n := range raw.Applications {
		if label == "" {
			label = UnknownLabel
		}
		apps = append(apps, Count{Label: label, Count: n})
	}
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Count != apps[j].Count {
			return apps[i].Count > apps[j].Count
		}
		return apps[i].Label < apps[j].Label
	})

	*s = DatabaseStats{
		TotalCompanies: raw.TotalCompanies,
		Geographic:     geo,
		Bransch:        bransch,
		Applications:   apps,
		Revenue:        revenue,
		Employees:      employees,
	}
	return nil
}

func decodeGroups(rows []json.RawMessage, labelKey string) ([]Count, error) {
	out := make([]Count, 0, len(rows))
	for _, row := range rows {
		var m map[string]any
		if err := json.Unmarshal(row, &m); err != nil {
			return nil, err
		}
		label, _ := m[labelKey].(string)
		if label == "" {
			label = UnknownLabel
		}
		n, _ := m["count"].(float64)
		out = append(out, Count{Label: label, Count: int(n)})
	}
	return out, nil
}

// TopN returns the n largest counts, ties broken by label.
func TopN(counts []Count, n int) []Count {
	out := make([]Count, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
