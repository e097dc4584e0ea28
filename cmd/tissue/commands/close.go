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

func closeCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "close",
		Summary: "Remove a tissue from the box",
		Description: `Delete a tissue outright. There is no archive; a closed tissue is
gone from the file. To close by committing work or by filing an issue,
use the commit and promote commands instead.`,
		Usage: "tissue close <title>",
		Examples: []cli.Example{
			{
				Description: "Close a tissue",
				Command:     "tissue close 'Fix the leaky faucet'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("close", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one title argument, got %d", len(args)).
					WithHint("Usage: tissue close <title>")
			}
			title := args[0]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			return mutateBox(path, func(box *tissue.Box) error {
				_, err := box.Remove(title)
				return err
			})
		},
	}
}
