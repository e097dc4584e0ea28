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

func renameCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "rename",
		Summary: "Rename a tissue",
		Description: `Change a tissue's title. Tags, description, and any extra keys
travel with it. Renaming onto an existing title is an error.`,
		Usage: "tissue rename <old> <new>",
		Examples: []cli.Example{
			{
				Description: "Rename a tissue",
				Command:     "tissue rename 'Fix faucet' 'Fix the leaky faucet'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rename", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected old and new title arguments, got %d", len(args)).
					WithHint("Usage: tissue rename <old> <new>")
			}
			old, new := args[0], args[1]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			return mutateBox(path, func(box *tissue.Box) error {
				return box.Rename(old, new)
			})
		},
	}
}
