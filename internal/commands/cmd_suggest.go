package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/pkg/iojson"
)

type SuggestCmd struct {
	flags *Flags

	// flags
	name    string
	website string
	info    string
	input   iojson.FileReader[directory.Suggestion]
}

// NewSuggestCmd creates a new suggest command
func NewSuggestCmd(flags *Flags) *SuggestCmd {
	return &SuggestCmd{flags: flags}
}

// Register adds the suggest command to the application
func (cmd *SuggestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest a company missing from the directory",
		UsageText: "aim25s suggest [--name name] [--website url] [--info text] [--file path]",
		Description: `Sends a suggestion for a new company. Name and website are required and
are prompted for when stdin is a terminal.

With --file the suggestion is read as JSON with the keys company_name,
company_website and additional_info.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "company name",
				Destination: &cmd.name,
			},
			&cli.StringFlag{
				Name:        "website",
				Aliases:     []string{"w"},
				Usage:       "company website",
				Destination: &cmd.website,
			},
			&cli.StringFlag{
				Name:        "info",
				Usage:       "additional information",
				Destination: &cmd.info,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SuggestCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 0 {
		return fmt.Errorf("unexpected argument %q", c.Args().First())
	}

	if cmd.input.Provided() {
		in, err := cmd.input.Read()
		if err != nil {
			return err
		}
		cmd.name, cmd.website, cmd.info = in.CompanyName, in.CompanyWebsite, in.AdditionalInfo
	}

	if (cmd.name == "" || cmd.website == "") && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	suggestion := directory.NewSuggestion(cmd.name, cmd.website, cmd.info)
	if err := suggestion.Validate(); err != nil {
		return err
	}

	if _, err := cmd.flags.Catalog.SubmitSuggestion(ctx, suggestion); err != nil {
		return fmt.Errorf("submit suggestion: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.TextSuccessStyle.Render(suggestSuccess))
	return nil
}

func (cmd *SuggestCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Företagsnamn").
				Validate(nonBlank(directory.ErrMissingSuggestionFields.Error())).
				Value(&cmd.name),
			huh.NewInput().
				Title("Hemsida").
				Validate(nonBlank(directory.ErrMissingSuggestionFields.Error())).
				Value(&cmd.website),
			huh.NewText().
				Title("Övrig information").
				Description("Valfritt").
				Value(&cmd.info),
		),
	).WithTheme(huh.ThemeCharm()).Run()
}
