package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/pkg/tuitest"
)

func company(t *testing.T, raw string) directory.Company {
	t.Helper()
	var c directory.Company
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	return c
}

func readyState(t *testing.T, device directory.Device, companies ...directory.Company) appstate.State {
	t.Helper()
	s := appstate.BeginLoad(appstate.New(device, 50), 1)
	s, _, ok := appstate.ApplyCompanies(s, 1, appstate.Page{Companies: companies, Total: 237})
	require.True(t, ok)
	return s
}

func TestBind_Modes(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		s := appstate.BeginLoad(appstate.New(directory.DeviceDesktop, 50), 1)
		p := Bind(s, DefaultOptions())
		assert.Equal(t, ModeLoading, p.Mode)
		assert.Empty(t, p.Rows)
	})

	t.Run("error hides the listing", func(t *testing.T) {
		s := appstate.BeginLoad(appstate.New(directory.DeviceDesktop, 50), 1)
		s, _ = appstate.ApplyError(s, 1, errors.New("503"))
		p := Bind(s, DefaultOptions())
		assert.Equal(t, ModeError, p.Mode)
		assert.Empty(t, p.Rows)
		assert.Empty(t, p.Pagination.Label)

		out := tuitest.StripANSI(List(p, 80, 20, ""))
		assert.Contains(t, out, ErrorTitle)
		assert.Contains(t, out, "503")
	})

	t.Run("empty", func(t *testing.T) {
		p := Bind(readyState(t, directory.DeviceDesktop), DefaultOptions())
		assert.Equal(t, ModeEmpty, p.Mode)
		assert.Contains(t, tuitest.StripANSI(List(p, 80, 20, "")), EmptyText)
	})
}

func TestBind_Table(t *testing.T) {
	acme := company(t, `{
		"id": 1, "name": "Acme AI", "website": "https://www.acme.se/",
		"bransch": "Fintech|Hälsa", "location_city": "Stockholm",
		"tillampning_sprak_ljud": true, "tillampning_visuell_ai": true,
		"tillampning_insikt_analys": true, "tillampning_prognos_prediktion": true
	}`)
	anon := company(t, `{"id": 2, "name": null, "bransch": ""}`)

	s := readyState(t, directory.DeviceDesktop, acme, anon)
	o := DefaultOptions()
	o.ChipFocus = ChipFocus{Dim: directory.DimBransch, Index: 1}
	p := Bind(s, o)

	require.Equal(t, ModeTable, p.Mode)
	assert.Equal(t, []string{"Företag", "Bransch", "Område", "AI/ML-tillämpning", "Ort", "Mer info"}, p.Headers)
	require.Len(t, p.Rows, 2)

	row := p.Rows[0]
	assert.True(t, row.Selected)
	assert.Equal(t, "Acme AI", row.Cells[0].Text)
	assert.True(t, row.Cells[0].Link)
	assert.Equal(t, []Chip{
		{Dim: directory.DimBransch, Value: "Fintech"},
		{Dim: directory.DimBransch, Value: "Hälsa", Focused: true},
	}, row.Cells[1].Chips)

	apps := row.Cells[3]
	require.Len(t, apps.Chips, 3)
	assert.Equal(t, "Språk & Ljud", apps.Chips[0].Value)
	assert.Equal(t, 1, apps.More)
	assert.Equal(t, "Stockholm", row.Cells[4].Text)
	assert.Equal(t, MoreInfoButton, row.Cells[5].Text)

	other := p.Rows[1]
	assert.False(t, other.Selected)
	assert.Equal(t, directory.UnnamedCompany, other.Cells[0].Text)
	assert.False(t, other.Cells[0].Link)
	assert.Equal(t, directory.Placeholder, other.Cells[1].Text)
	assert.Equal(t, NoApplications, other.Cells[3].Text)
	assert.Equal(t, directory.Placeholder, other.Cells[2].Text)

	assert.Equal(t, Pagination{Label: "Sida 1 av 5", PrevEnabled: false, NextEnabled: true}, p.Pagination)
}

func TestBind_Cards(t *testing.T) {
	c := company(t, `{
		"id": 7, "name": "Röst AB", "website": "https://example.com/a-very-long-path-segment-here",
		"bransch": "Språk", "location_city": null
	}`)

	s := readyState(t, directory.DeviceMobile, c)
	s = appstate.SetColumns(s, directory.DeviceMobile, []directory.Column{
		{Name: "name", Label: "Företag"},
		{Name: "website", Label: "Hemsida", DisplayOrder: 1},
		{Name: "bransch", Label: "Bransch", DisplayOrder: 2},
		{Name: "location_city", Label: "Ort", DisplayOrder: 3},
	})
	p := Bind(s, DefaultOptions())

	require.Equal(t, ModeCards, p.Mode)
	require.Len(t, p.Cards, 1)
	card := p.Cards[0]
	assert.Equal(t, "Röst AB", card.Title)
	require.Len(t, card.Fields, 2, "name skipped and empty city omitted")
	assert.Equal(t, "Hemsida", card.Fields[0].Label)
	assert.Equal(t, "example.com/a-very-long-path-s...", card.Fields[0].Value)
	assert.Equal(t, "Bransch", card.Fields[1].Label)

	out := tuitest.StripANSI(DrawCard(card, 40))
	assert.Contains(t, out, "Röst AB")
	assert.Contains(t, out, "[Språk]")
}

func TestBind_StatsAndPills(t *testing.T) {
	s := readyState(t, directory.DeviceDesktop)
	p := Bind(s, DefaultOptions())
	assert.Equal(t, "Leta bland 237 företag i hela Sverige!", p.Stats)
	assert.InDelta(t, 100, p.BatteryPercent, 0.001)

	s, _ = appstate.AddBransch(s, "Fintech")
	s = appstate.BeginLoad(s, 2)
	s, _, _ = appstate.ApplyCompanies(s, 2, appstate.Page{Total: 20})

	o := DefaultOptions()
	o.PillFocus = 0
	p = Bind(s, o)
	assert.Equal(t, "Visar nu 20 företag", p.Stats)
	require.Len(t, p.Pills, 1)
	assert.True(t, p.Pills[0].Focused)
	assert.Contains(t, tuitest.StripANSI(Pills(p.Pills, 80)), "Bransch: Fintech ×")

	o.Count = 12
	o.BatteryPercent = 4
	p = Bind(s, o)
	assert.Equal(t, "Visar nu 12 företag", p.Stats, "animated count overrides the state")
	assert.InDelta(t, 4, p.BatteryPercent, 0.001)
}

func TestTable_FitsWidth(t *testing.T) {
	long := company(t, `{
		"id": 1, "name": "Ett mycket långt företagsnamn som inte får plats",
		"bransch": "A|B|C|D|E|F", "description": "`+strings.Repeat("lorem ipsum ", 30)+`"
	}`)
	s := readyState(t, directory.DeviceDesktop, long)
	s = appstate.SetColumns(s, directory.DeviceDesktop, []directory.Column{
		{Name: "name"}, {Name: "bransch", DisplayOrder: 1}, {Name: "description", DisplayOrder: 2},
	})
	p := Bind(s, DefaultOptions())

	for _, width := range []int{80, 120, 200} {
		out := tuitest.StripANSI(Table(p, width, 10))
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, StringWidth(line), width, "width %d: %q", width, line)
		}
		assert.Contains(t, out, "...", "description is cut with an ellipsis")
	}
}

func TestTable_Offset(t *testing.T) {
	var companies []directory.Company
	for i := range 10 {
		companies = append(companies, directory.Company{ID: int64(i + 1), Name: "Bolag " + string(rune('A'+i))})
	}
	s := readyState(t, directory.DeviceDesktop, companies...)

	o := DefaultOptions()
	o.Offset = 4
	o.Selected = 4
	out := tuitest.StripANSI(Table(Bind(s, o), 120, 4))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "header plus three rows")
	assert.Contains(t, lines[1], "Bolag E")
	assert.Contains(t, lines[3], "Bolag G")
}

func TestColumnWidths(t *testing.T) {
	cols := directory.DefaultColumns(directory.DeviceDesktop)

	for _, width := range []int{60, 100, 160, 240} {
		widths := ColumnWidths(cols, width)
		require.Len(t, widths, len(cols)+1)

		total := columnGap * len(cols)
		for _, w := range widths {
			assert.GreaterOrEqual(t, w, minColumnW)
			total += w
		}
		if width >= 100 {
			assert.Equal(t, width, total, "width %d", width)
		}
	}
}

func TestBatteryBar(t *testing.T) {
	full := tuitest.StripANSI(BatteryBar(100, 20))
	assert.NotContains(t, full, "░")
	assert.Contains(t, full, "100%")

	empty := tuitest.StripANSI(BatteryBar(-5, 20))
	assert.NotContains(t, empty, "█")
	assert.Contains(t, empty, "0%")

	assert.Equal(t, 20, StringWidth(tuitest.StripANSI(BatteryBar(42, 20))))
}

func TestPaginationLine(t *testing.T) {
	out := tuitest.StripANSI(PaginationLine(Pagination{Label: "Sida 2 av 5", PrevEnabled: true, NextEnabled: true}))
	assert.Equal(t, "‹ Föregående  Sida 2 av 5  Nästa ›", out)
}

func TestRowChips_FollowColumns(t *testing.T) {
	c := company(t, `{"id": 1, "bransch": "Fintech|Hälsa", "tillampning_sprak_ljud": true}`)

	mobile := directory.DefaultColumns(directory.DeviceMobile)
	assert.Equal(t, []string{"Fintech", "Hälsa"}, RowChips(c, mobile, directory.DimBransch))
	assert.Nil(t, RowChips(c, mobile, directory.DimTillampning), "mobile cards draw no tillämpning column")

	desktop := directory.DefaultColumns(directory.DeviceDesktop)
	assert.Equal(t, []string{"Språk & Ljud"}, RowChips(c, desktop, directory.DimTillampning))

	noBransch := []directory.Column{{Name: "name"}, {Name: "location_city", DisplayOrder: 1}}
	assert.Nil(t, RowChips(c, noBransch, directory.DimBransch))
	assert.Nil(t, RowChips(c, desktop, directory.DimTag))
}

func TestBind_DescriptionIsOneLine(t *testing.T) {
	c := company(t, `{
		"id": 1, "name": "Acme AI",
		"description": "<p>Bygger <b>språkmodeller</b>.</p>\n<p>Andra stycket.</p>",
		"location_city": "Stock\nholm"
	}`)
	s := readyState(t, directory.DeviceDesktop, c)
	s = appstate.SetColumns(s, directory.DeviceDesktop, []directory.Column{
		{Name: "name"}, {Name: "description", DisplayOrder: 1}, {Name: "location_city", DisplayOrder: 2},
	})
	p := Bind(s, DefaultOptions())

	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Bygger språkmodeller. Andra stycket.", p.Rows[0].Cells[1].Text)
	assert.Equal(t, "Stock holm", p.Rows[0].Cells[2].Text)

	out := tuitest.StripANSI(Table(p, 160, 10))
	assert.Len(t, strings.Split(out, "\n"), 2, "header plus one row")
}
