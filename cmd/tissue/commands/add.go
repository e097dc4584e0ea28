// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

func addCommand() *cli.Command {
	var flags struct {
		box  boxFlags
		tags []string
		desc string
	}

	return &cli.Command{
		Name:    "add",
		Summary: "Add a tissue to the box",
		Description: `Create a new tissue. The title is the tissue's identity: it names the
tissue in every other command, becomes the commit message when you
commit it, and becomes the issue title when you promote it.

The first add creates the tissuebox file.`,
		Usage: "tissue add <title> [flags]",
		Examples: []cli.Example{
			{
				Description: "Add a bare tissue",
				Command:     "tissue add 'Fix the leaky faucet'",
			},
			{
				Description: "Add with tags and a description",
				Command:     "tissue add 'Bleed the radiators' --tag heating --desc 'top floor first'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			flags.box.register(flagSet)
			flagSet.StringSliceVarP(&flags.tags, "tag", "t", nil, "tag to attach (repeatable)")
			flagSet.StringVar(&flags.desc, "desc", "", "initial description")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one title argument, got %d", len(args)).
					WithHint("Usage: tissue add <title> [flags]")
			}
			title := args[0]

			var desc *string
			if flags.desc != "" {
				desc = &flags.desc
			}

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			exists, err := tissuefile.Exists(path)
			if err != nil {
				return categorize(err)
			}
			if !exists {
				box := tissue.NewBox()
				if err := box.Add(title, flags.tags, desc); err != nil {
					return categorize(err)
				}
				if err := tissuefile.Save(path, box); err != nil {
					return categorize(err)
				}
				logger.Info("created tissuebox", "path", path)
				return nil
			}

			return mutateBox(path, func(box *tissue.Box) error {
				return box.Add(title, flags.tags, desc)
			})
		},
	}
}
