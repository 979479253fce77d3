package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/pkg/htmltext"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	query queryFlags

	// flags
	device     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List one page of companies",
		UsageText: "aim25s ls [--search text] [--bransch pattern]... [--json]",
		Description: `Prints one page of the directory as a table using the server's column
layout for the current terminal width.

Multi-valued filters are repeatable and accept glob patterns that are
expanded against the filter options, e.g. --bransch 'Fin*'.

Use --json for the raw company records.`,
		Flags: append(cmd.query.flags(),
			&cli.StringFlag{
				Name:        "device",
				Usage:       "column layout: mobile or desktop (defaults to terminal width)",
				Destination: &cmd.device,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	svc := cmd.flags.Catalog

	device, err := detectDevice(cmd.device, cfg.UI.MobileBreakpoint)
	if err != nil {
		return err
	}

	q, err := cmd.query.resolve(ctx, svc, cfg.PerPage)
	if err != nil {
		return err
	}

	page, err := svc.Companies(ctx, q)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, page)
	}

	if len(page.Companies) == 0 {
		fmt.Fprintln(os.Stderr, "Inga företag matchar dina filter")
		return nil
	}

	cols, err := svc.Columns(ctx, device)
	if err != nil {
		return fmt.Errorf("load columns: %w", err)
	}

	writeCompanyTable(out, cols, page.Companies)

	cursor := directory.Cursor{Page: q.Page, TotalPages: page.TotalPages}.Normalize()
	fmt.Fprintf(os.Stderr, "\n%d företag, %s\n", page.Total, cursor.Label())
	return nil
}

// writeCompanyTable prints companies with one column per descriptor. The
// id column is always first so rows can be passed to show and report.
func writeCompanyTable(out io.Writer, cols []directory.Column, companies []directory.Company) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprint(w, "ID")
	for _, col := range cols {
		_, _ = fmt.Fprintf(w, "\t%s", col.Header())
	}
	_, _ = fmt.Fprintln(w)

	for _, co := range companies {
		_, _ = fmt.Fprintf(w, "%d", co.ID)
		for _, col := range cols {
			_, _ = fmt.Fprintf(w, "\t%s", cellText(co, col))
		}
		_, _ = fmt.Fprintln(w)
	}

	_ = w.Flush()
}

const maxCellWidth = 40

func cellText(c directory.Company, col directory.Column) string {
	var s string
	switch col.Name {
	case directory.ColumnName:
		s = c.DisplayName()
	case directory.ColumnDescription:
		s = htmltext.Flatten(c.Description)
		if s == "" {
			s = directory.Placeholder
		}
	default:
		v, _ := c.Field(col.Name)
		s = directory.FormatCellValue(v)
	}
	return directory.Truncate(strings.Join(strings.Fields(s), " "), maxCellWidth)
}
