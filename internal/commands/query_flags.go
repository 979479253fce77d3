package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// queryFlags collects the listing filters shared by commands that page
// through companies.
type queryFlags struct {
	page         int
	perPage      int
	search       string
	stockholm    bool
	arbetsgivare bool
	bransch      []string
	tillampning  []string
	anstallda    []string
	omsattning   []string
	aiInriktning string
	tag          string
}

func (q *queryFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "page",
			Aliases:     []string{"p"},
			Usage:       "page number",
			Value:       1,
			Destination: &q.page,
		},
		&cli.IntFlag{
			Name:        "per-page",
			Usage:       "companies per page (defaults to per_page from config)",
			Destination: &q.perPage,
		},
		&cli.StringFlag{
			Name:        "search",
			Aliases:     []string{"s"},
			Usage:       "free-text search",
			Destination: &q.search,
		},
		&cli.BoolFlag{
			Name:        "stockholm",
			Usage:       "only companies in Stor-Stockholm",
			Destination: &q.stockholm,
		},
		&cli.BoolFlag{
			Name:        "arbetsgivare",
			Usage:       "only registered employers",
			Destination: &q.arbetsgivare,
		},
		&cli.StringSliceFlag{
			Name:        "bransch",
			Usage:       "sector, repeatable, accepts glob patterns",
			Destination: &q.bransch,
		},
		&cli.StringSliceFlag{
			Name:        "tillampning",
			Usage:       "application area, repeatable, accepts glob patterns",
			Destination: &q.tillampning,
		},
		&cli.StringSliceFlag{
			Name:        "anstallda",
			Usage:       "employee band, repeatable, accepts glob patterns",
			Destination: &q.anstallda,
		},
		&cli.StringSliceFlag{
			Name:        "omsattning",
			Usage:       "revenue band, repeatable, accepts glob patterns",
			Destination: &q.omsattning,
		},
		&cli.StringFlag{
			Name:        "ai-inriktning",
			Usage:       "AI focus",
			Destination: &q.aiInriktning,
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "AI capability tag",
			Destination: &q.tag,
		},
	}
}

// needsOptions reports whether any multi-valued flag holds a glob pattern
// that must be expanded against the server's filter options.
func (q *queryFlags) needsOptions() bool {
	for _, vals := range [][]string{q.bransch, q.tillampning, q.anstallda, q.omsattning} {
		for _, v := range vals {
			if catalog.IsPattern(v) {
				return true
			}
		}
	}
	return false
}

// query builds the listing request. Glob patterns are expanded against opts.
func (q *queryFlags) query(opts directory.Options, defaultPerPage int) (directory.Query, error) {
	perPage := q.perPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if q.page < 1 {
		return directory.Query{}, fmt.Errorf("--page must be at least 1, got %d", q.page)
	}

	f := directory.Filters{
		Stockholm:    q.stockholm,
		Arbetsgivare: q.arbetsgivare,
		AIInriktning: q.aiInriktning,
		Tag:          q.tag,
	}

	multi := []struct {
		dim  directory.Dimension
		vals []string
		dst  *[]string
	}{
		{directory.DimBransch, q.bransch, &f.Bransch},
		{directory.DimTillampning, q.tillampning, &f.Tillampning},
		{directory.DimAnstallda, q.anstallda, &f.Anstallda},
		{directory.DimOmsattning, q.omsattning, &f.Omsattning},
	}
	for _, m := range multi {
		if len(m.vals) == 0 {
			continue
		}
		vals, err := catalog.ExpandValues(opts, m.dim, m.vals)
		if err != nil {
			return directory.Query{}, err
		}
		*m.dst = vals
	}

	return directory.Query{
		Page:    q.page,
		PerPage: perPage,
		Search:  q.search,
		Filters: f,
	}, nil
}

// resolve loads filter options when a pattern needs them and builds the query.
func (q *queryFlags) resolve(ctx context.Context, svc *catalog.Service, defaultPerPage int) (directory.Query, error) {
	var opts directory.Options
	if q.needsOptions() {
		var err error
		opts, err = svc.FilterOptions(ctx)
		if err != nil {
			return directory.Query{}, fmt.Errorf("load filter options: %w", err)
		}
	}
	return q.query(opts, defaultPerPage)
}

// detectDevice picks the layout from the terminal width of stdout. Output
// that is not a terminal gets the desktop columns.
func detectDevice(flag string, breakpoint int) (directory.Device, error) {
	if flag != "" {
		return directory.ParseDevice(flag)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return directory.DeviceDesktop, nil
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return directory.DeviceDesktop, nil
	}
	return directory.DeviceForWidth(width, breakpoint), nil
}
