// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissueui"
)

func showCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "show",
		Summary: "Show one tissue in detail",
		Description: `Print a single tissue. When stdout is a terminal the description is
rendered as markdown (headings, emphasis, fenced code); when piped it
is plain text in the same shape the list command prints.`,
		Usage: "tissue show <title>",
		Examples: []cli.Example{
			{
				Description: "Show a tissue",
				Command:     "tissue show 'Fix the leaky faucet'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one title argument, got %d", len(args)).
					WithHint("Usage: tissue show <title>")
			}
			title := args[0]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}
			box, err := loadBox(path)
			if err != nil {
				return err
			}

			t, ok := box.Get(title)
			if !ok {
				return cli.NotFound("no tissue titled %q", title)
			}

			markdown := term.IsTerminal(int(os.Stdout.Fd()))
			width := 80
			if markdown {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
					width = w
				}
			}
			fmt.Print(renderShow(t, markdown, width))
			return nil
		},
	}
}

// renderShow formats one tissue for the show command. Markdown mode
// styles the description for a terminal; plain mode reuses the
// FormatTissue shape so piped output matches the list command.
func renderShow(t tissue.Tissue, markdown bool, width int) string {
	if !markdown {
		return tissue.FormatTissue(t)
	}

	var builder strings.Builder
	builder.WriteString(t.Title)
	if len(t.Tags) > 0 {
		fmt.Fprintf(&builder, " (%s)", strings.Join(t.Tags, ", "))
	}
	builder.WriteString("\n")
	if desc, ok := t.Description(); ok {
		builder.WriteString("\n")
		builder.WriteString(tissueui.RenderMarkdown(desc, tissueui.DefaultTheme, width))
		builder.WriteString("\n")
	}
	return builder.String()
}
