package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

const (
	reportSuccess  = "Tack! Din felanmälan har skickats."
	suggestSuccess = "Tack för ditt tips! Vi går igenom förslaget."
)

type ReportCmd struct {
	flags *Flags

	// flags
	errorType   string
	description string
	suggestion  string
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	types := make([]string, len(directory.ReportTypes))
	for i, t := range directory.ReportTypes {
		types[i] = string(t.Type)
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Report an error about a company",
		UsageText: "aim25s report <id> [--type type] [--description text] [--suggestion text]",
		Description: `Sends an error report about the company with the given id.

Missing values are prompted for when stdin is a terminal. Valid types: ` + strings.Join(types, ", ") + `.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "error type",
				Destination: &cmd.errorType,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "what is wrong",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "suggestion",
				Usage:       "suggested correction",
				Destination: &cmd.suggestion,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := companyID(c)
	if err != nil {
		return err
	}

	if (cmd.errorType == "" || cmd.description == "") && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	report := directory.ErrorReport{
		CompanyID:   id,
		ErrorType:   directory.ErrorType(cmd.errorType),
		Description: strings.TrimSpace(cmd.description),
		Suggestion:  strings.TrimSpace(cmd.suggestion),
	}
	if err := report.Validate(); err != nil {
		return err
	}

	if _, err := cmd.flags.Catalog.SubmitErrorReport(ctx, report); err != nil {
		return fmt.Errorf("submit report: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.TextSuccessStyle.Render(reportSuccess))
	return nil
}

func (cmd *ReportCmd) runForm() error {
	options := make([]huh.Option[string], len(directory.ReportTypes))
	for i, t := range directory.ReportTypes {
		options[i] = huh.NewOption(t.Label, string(t.Type))
	}
	if cmd.errorType == "" {
		cmd.errorType = string(directory.ReportTypes[0].Type)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Typ av fel").
				Options(options...).
				Value(&cmd.errorType),
			huh.NewText().
				Title("Beskrivning").
				Description("Beskriv vad som är fel").
				Validate(nonBlank("Beskriv felet")).
				Value(&cmd.description),
			huh.NewText().
				Title("Förslag på rättelse").
				Description("Valfritt").
				Value(&cmd.suggestion),
		),
	).WithTheme(huh.ThemeCharm()).Run()
}

func nonBlank(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
