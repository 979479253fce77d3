package commands

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

type LuckyCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLuckyCmd creates a new lucky command
func NewLuckyCmd(flags *Flags) *LuckyCmd {
	return &LuckyCmd{flags: flags}
}

// Register adds the lucky command to the application
func (cmd *LuckyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "lucky",
		Usage:       "Show a random company",
		UsageText:   "aim25s lucky [--json]",
		Description: `Picks a company at random from the whole directory, ignoring any filters.`,
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

func (cmd *LuckyCmd) run(ctx context.Context, c *cli.Command) error {
	co, err := cmd.flags.Catalog.Lucky(ctx, nil)
	if errors.Is(err, catalog.ErrNoCompanies) {
		return errors.New("Inga företag hittades i databasen.") //nolint:staticcheck // user facing message
	}
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
