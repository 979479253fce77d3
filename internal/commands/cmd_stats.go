package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/Spruttybangbang/aim25s-website/internal/charts"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

const defaultChartWidth = 80

type StatsCmd struct {
	flags *Flags

	// flags
	width      int
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags) *StatsCmd {
	return &StatsCmd{flags: flags}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Print directory statistics",
		UsageText: "aim25s stats [--width n] [--json]",
		Description: `Prints the insights dashboard as text charts: geography, sectors,
applications, revenue and employees.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Usage:       "chart width in columns (defaults to terminal width)",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the aggregate counts as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	stats, err := cmd.flags.Catalog.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load statistics: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, stats)
	}

	width := cmd.width
	if width <= 0 {
		width = terminalWidth()
	}

	_, _ = fmt.Fprintln(out, styles.TextForegroundBoldStyle.Render(fmt.Sprintf("Totalt %d företag", stats.TotalCompanies)))
	for _, spec := range charts.Build(stats) {
		_, _ = fmt.Fprintf(out, "\n%s\n", charts.Draw(spec, width))
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultChartWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultChartWidth
	}
	return w
}
