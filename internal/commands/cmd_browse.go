package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/core/logging"
	"github.com/Spruttybangbang/aim25s-website/internal/tui"
)

type BrowseCmd struct {
	flags *Flags
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Register adds the browse command to the application
func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Browse the directory interactively",
		UsageText: "aim25s browse",
		Description: `Opens the interactive company browser. This is also what runs when
aim25s is started without a command.

Press ? inside the browser for the key bindings.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *BrowseCmd) run(ctx context.Context, _ *cli.Command) error {
	m := tui.New(cmd.flags.Config, tui.Options{
		Catalog: cmd.flags.Catalog,
		Logger:  logging.Component("tui"),
		Build:   cmd.flags.Build,
		Context: ctx,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()

	if cmd.flags.Deferred != nil {
		_ = cmd.flags.Deferred.Flush(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
