// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

func describeCommand() *cli.Command {
	var flags struct {
		box    boxFlags
		append bool
	}

	return &cli.Command{
		Name:    "describe",
		Summary: "Set or extend a tissue's description",
		Description: `Set a tissue's description. With --append the text becomes a new line
under the existing description instead of replacing it, which is how a
tissue accumulates notes over time. Descriptions are markdown; the
show command and the UI render them styled.`,
		Usage: "tissue describe <title> <text> [flags]",
		Examples: []cli.Example{
			{
				Description: "Set a description",
				Command:     "tissue describe 'Fix the leaky faucet' 'kitchen sink, cold side'",
			},
			{
				Description: "Add a note to it later",
				Command:     "tissue describe 'Fix the leaky faucet' 'the washer is shot' --append",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("describe", pflag.ContinueOnError)
			flags.box.register(flagSet)
			flagSet.BoolVar(&flags.append, "append", false, "append a line instead of replacing")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected title and text arguments, got %d", len(args)).
					WithHint("Usage: tissue describe <title> <text> [flags]")
			}
			title, text := args[0], args[1]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			return mutateBox(path, func(box *tissue.Box) error {
				return box.Update(title, func(t *tissue.Tissue) {
					if flags.append {
						if existing, ok := t.Description(); ok {
							t.SetDesc(existing + "\n" + text)
							return
						}
					}
					t.SetDesc(text)
				})
			})
		},
	}
}
