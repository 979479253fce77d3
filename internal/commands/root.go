package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRootCmd builds the aim25s command tree. Resources are opened in the
// Before hook and released in the After hook.
func NewRootCmd(flags *Flags) *cli.Command {
	var rt *Runtime

	root := &cli.Command{
		Name:      "aim25s",
		Usage:     "Browse the directory of Swedish AI companies",
		UsageText: "aim25s [global options] command [command options]",
		Description: `aim25s is a terminal client for the directory of AI companies in Sweden.

Run 'aim25s' with no arguments to open the interactive browser.
Run 'aim25s ls' to print a page of companies.`,
		Version:               fmt.Sprintf("%s (%s) %s", flags.Build.Version, flags.Build.Commit, flags.Build.Date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("AIM25S_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (the browser logs nowhere without one)",
				Sources:     cli.EnvVars("AIM25S_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("AIM25S_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("AIM25S_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "directory API root (overrides api.base_url)",
				Destination: &flags.APIURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			first := c.Args().First()
			flags.Interactive = first == "" || first == "browse"

			var err error
			rt, err = Open(ctx, flags)
			return ctx, err
		},
		After: func(ctx context.Context, c *cli.Command) error {
			return rt.Close()
		},
	}

	browseCmd := NewBrowseCmd(flags)

	root = browseCmd.Register(root)
	root = NewLsCmd(flags).Register(root)
	root = NewShowCmd(flags).Register(root)
	root = NewLuckyCmd(flags).Register(root)
	root = NewStatsCmd(flags).Register(root)
	root = NewReportCmd(flags).Register(root)
	root = NewSuggestCmd(flags).Register(root)
	root = NewCacheCmd(flags).Register(root)
	root = NewConfigCmd(flags).Register(root)
	root = NewVersionCmd(flags).Register(root)

	// Browse is the default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'aim25s --help' for usage", c.Args().First())
		}
		return browseCmd.Run(ctx, c)
	}

	return root
}
