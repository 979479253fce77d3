package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/core/kv"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

type CacheCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewCacheCmd creates a new cache command
func NewCacheCmd(flags *Flags) *CacheCmd {
	return &CacheCmd{flags: flags}
}

// Register adds the cache command to the application
func (cmd *CacheCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the local response cache",
		Description: `Columns, filter options and the directory total are cached locally for
cache.ttl. Company pages are never cached.`,
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List cached entries",
				UsageText: "aim25s cache ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.ls,
			},
			{
				Name:      "clear",
				Usage:     "Delete every cached entry",
				UsageText: "aim25s cache clear",
				Action:    cmd.clear,
			},
		},
	})

	return app
}

func (cmd *CacheCmd) ls(ctx context.Context, c *cli.Command) error {
	svc := cmd.flags.Catalog
	if !svc.Cached() {
		fmt.Fprintln(os.Stderr, "Cache is disabled")
		return nil
	}

	entries, err := svc.CacheEntries(ctx)
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "Cache is empty")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tSIZE\tUPDATED\tEXPIRES")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Key, len(e.Value), e.UpdatedAt.Format(time.DateTime), expiry(e))
	}
	return w.Flush()
}

func expiry(e kv.Entry) string {
	if e.ExpiresAt == nil {
		return "never"
	}
	return e.ExpiresAt.Format(time.DateTime)
}

func (cmd *CacheCmd) clear(ctx context.Context, c *cli.Command) error {
	n, err := cmd.flags.Catalog.ClearCache(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "Removed %d cached entries\n", n)
	return nil
}
