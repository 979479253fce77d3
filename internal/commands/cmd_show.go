package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show one company",
		UsageText: "aim25s show <id> [--json]",
		Description: `Prints the detail view of the company with the given id, as listed by
'aim25s ls'.

The directory has no single-company endpoint, so the listing is paged
through until the id is found.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := companyID(c)
	if err != nil {
		return err
	}

	co, err := cmd.flags.Catalog.FindCompany(ctx, id, catalog.LuckyPageSize)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, co)
	}

	printCompany(out, co)
	return nil
}

// companyID parses the first positional argument as a company id.
func companyID(c *cli.Command) (int64, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected exactly one company id, got %d arguments", c.Args().Len())
	}
	raw := c.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid company id %q", raw)
	}
	return id, nil
}
