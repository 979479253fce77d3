package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/config"
	"github.com/Spruttybangbang/aim25s-website/internal/tui"
)

// fakeDirectory serves a two company listing and records the last
// companies query.
type fakeDirectory struct {
	mu        sync.Mutex
	lastQuery url.Values
	reports   []map[string]any
}

func (f *fakeDirectory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok", Path: "/"})
	case api.PathCompanies:
		f.mu.Lock()
		f.lastQuery = r.URL.Query()
		f.mu.Unlock()
		writeJSON(w, map[string]any{
			"companies": []map[string]any{
				{"id": 1, "name": "Acme AI", "bransch": "Fintech|Hälsa", "location_city": "Stockholm", "description": "<p>Röst <b>AI</b></p>"},
				{"id": 2, "name": "Norrsken Vision", "bransch": "Retail", "ai_capabilities": "Datorseende"},
			},
			"total":       2,
			"page":        1,
			"per_page":    50,
			"total_pages": 1,
		})
	case api.PathColumns:
		writeJSON(w, map[string]any{"columns": []any{}})
	case api.PathFilterOptions:
		writeJSON(w, map[string]any{
			"bransch":       []string{"Fintech", "Fordon", "Hälsa"},
			"anstallda":     []string{"1-9", "10-49"},
			"omsattning":    []string{},
			"ai_inriktning": []string{"NLP"},
		})
	case api.PathDatabaseStats:
		writeJSON(w, map[string]any{
			"total_companies": 2,
			"geographic":      []map[string]any{{"STAD": "Stockholm", "count": 2}},
			"bransch":         []map[string]any{},
			"applications":    map[string]int{"Visuell AI": 1},
			"revenue":         []map[string]any{},
			"employees":       []map[string]any{},
		})
	case api.PathReportError:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.reports = append(f.reports, body)
		f.mu.Unlock()
		writeJSON(w, map[string]any{"success": true, "report_id": 9})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestFlags wires flags to an uncached catalog backed by srv.
func newTestFlags(t *testing.T, srv *httptest.Server) *Flags {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.API.BaseURL = srv.URL

	client, err := api.New(srv.URL, api.WithHTTPClient(srv.Client()), api.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	return &Flags{
		Config:  &cfg,
		Catalog: catalog.New(client, nil, 0, zerolog.Nop()),
		Build:   tui.BuildInfo{Version: "v1.0.0", Commit: "abc1234", Date: "2026-01-01"},
	}
}

// run executes args against a root command with every subcommand registered.
func run(t *testing.T, flags *Flags, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{Name: "aim25s", Writer: &out, ErrWriter: &out}
	app = NewLsCmd(flags).Register(app)
	app = NewShowCmd(flags).Register(app)
	app = NewLuckyCmd(flags).Register(app)
	app = NewStatsCmd(flags).Register(app)
	app = NewReportCmd(flags).Register(app)
	app = NewSuggestCmd(flags).Register(app)
	app = NewCacheCmd(flags).Register(app)
	app = NewConfigCmd(flags).Register(app)
	app = NewVersionCmd(flags).Register(app)

	err := app.Run(context.Background(), append([]string{"aim25s"}, args...))
	return out.String(), err
}

func newServer(t *testing.T) (*fakeDirectory, *httptest.Server) {
	t.Helper()
	fake := &fakeDirectory{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv
}

func TestLs_Table(t *testing.T) {
	_, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "ls", "--device", "desktop")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Företag")
	assert.Contains(t, out, "AI/ML-tillämpning")
	assert.Contains(t, out, "Acme AI")
	assert.Contains(t, out, "Norrsken Vision")
}

func TestLs_ExpandsGlobsAgainstOptions(t *testing.T) {
	fake, srv := newServer(t)

	_, err := run(t, newTestFlags(t, srv), "ls", "--device", "mobile", "--bransch", "F*", "--bransch", "Hälsa", "--stockholm", "--page", "1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Fintech", "Fordon", "Hälsa"}, fake.lastQuery["bransch"])
	assert.Equal(t, "true", fake.lastQuery.Get("stockholm"))
}

func TestLs_UnmatchedPattern(t *testing.T) {
	_, srv := newServer(t)

	_, err := run(t, newTestFlags(t, srv), "ls", "--device", "desktop", "--anstallda", "5000*")
	assert.Error(t, err)
}

func TestLs_JSON(t *testing.T) {
	_, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "ls", "--json", "--device", "desktop")
	require.NoError(t, err)

	var page struct {
		Companies []map[string]any `json:"companies"`
		Total     int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Companies, 2)
}

func TestShow(t *testing.T) {
	_, srv := newServer(t)
	flags := newTestFlags(t, srv)

	out, err := run(t, flags, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme AI")
	assert.Contains(t, out, "Röst AI")
	assert.Contains(t, out, "Fintech, Hälsa")

	_, err = run(t, flags, "show", "99")
	assert.ErrorIs(t, err, catalog.ErrCompanyNotFound)

	_, err = run(t, flags, "show", "abc")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	_, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "stats", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Totalt 2 företag")
	assert.Contains(t, out, "Stockholm")
}

func TestReport_FromFlags(t *testing.T) {
	fake, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "report", "1", "--type", "missing_data", "--description", "Saknar ort")
	require.NoError(t, err)
	assert.Contains(t, out, reportSuccess)

	require.Len(t, fake.reports, 1)
	assert.Equal(t, "missing_data", fake.reports[0]["error_type"])
	assert.Equal(t, "Saknar ort", fake.reports[0]["description"])
}

func TestReport_InvalidType(t *testing.T) {
	fake, srv := newServer(t)

	_, err := run(t, newTestFlags(t, srv), "report", "1", "--type", "nonsense", "--description", "x")
	assert.Error(t, err)
	assert.Empty(t, fake.reports)
}

func TestSuggest_FromFlags(t *testing.T) {
	fake, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "suggest", "--name", "Ny AI", "--website", "ny.se")
	require.NoError(t, err)
	assert.Contains(t, out, suggestSuccess)

	require.Len(t, fake.reports, 1)
	assert.Equal(t, "suggestion_new_company", fake.reports[0]["error_type"])
	assert.Equal(t, "Ny AI", fake.reports[0]["company_name"])
}

func TestVersion(t *testing.T) {
	_, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aim25s v1.0.0")
	assert.Contains(t, out, "abc1234")
}

func TestConfigShow(t *testing.T) {
	_, srv := newServer(t)

	out, err := run(t, newTestFlags(t, srv), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: "+srv.URL)
	assert.Contains(t, out, "per_page: 50")
}

func TestNewRootCmd_Commands(t *testing.T) {
	root := NewRootCmd(&Flags{})

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"browse", "ls", "show", "lucky", "stats", "report", "suggest", "cache", "config", "version"}, names)
	assert.NotNil(t, root.Action)
}

func TestSuggest_FromFile(t *testing.T) {
	fake, srv := newServer(t)

	path := filepath.Join(t.TempDir(), "suggestion.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"company_name":" Fil AI ","company_website":"fil.se","additional_info":"Göteborg"}`), 0o644))

	_, err := run(t, newTestFlags(t, srv), "suggest", "--file", path)
	require.NoError(t, err)

	require.Len(t, fake.reports, 1)
	assert.Equal(t, "Fil AI", fake.reports[0]["company_name"])
	assert.Equal(t, "Göteborg", fake.reports[0]["additional_info"])
}
