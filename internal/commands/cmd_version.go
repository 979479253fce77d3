package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type VersionCmd struct {
	flags *Flags
}

// NewVersionCmd creates a new version command
func NewVersionCmd(flags *Flags) *VersionCmd {
	return &VersionCmd{flags: flags}
}

// Register adds the version command to the application
func (cmd *VersionCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "version",
		Usage:  "Print build information",
		Action: cmd.run,
	})

	return app
}

func (cmd *VersionCmd) run(_ context.Context, c *cli.Command) error {
	b := cmd.flags.Build
	_, _ = fmt.Fprintf(c.Root().Writer, "aim25s %s\ncommit: %s\nbuilt:  %s\n", b.Version, b.Commit, b.Date)
	return nil
}
