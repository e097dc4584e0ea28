// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/git"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

func commitCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "commit",
		Summary: "Commit the work tree under a tissue's title",
		Description: `Stage every change in the work tree and commit it with the tissue's
title as the message, then close the tissue. The repository is the one
containing the tissuebox file.

A failed commit (nothing staged, merge in progress) leaves the
tissuebox untouched.`,
		Usage: "tissue commit <title>",
		Examples: []cli.Example{
			{
				Description: "Turn a finished tissue into a commit",
				Command:     "tissue commit 'Fix the leaky faucet'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("commit", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one title argument, got %d", len(args)).
					WithHint("Usage: tissue commit <title>")
			}
			title := args[0]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			// Verify the tissue exists before touching the work tree: a
			// typo in the title should not stage anything.
			box, err := loadBox(path)
			if err != nil {
				return err
			}
			if _, ok := box.Get(title); !ok {
				return cli.NotFound("no tissue titled %q", title)
			}

			absolutePath, err := filepath.Abs(path)
			if err != nil {
				return cli.Internal("resolving %s: %w", path, err)
			}
			repo := git.NewRepository(filepath.Dir(absolutePath))
			if !repo.IsWorkTree(ctx) {
				return cli.Validation("%s is not inside a git work tree", repo.Dir())
			}

			if err := repo.AddAll(ctx); err != nil {
				return err
			}
			if err := repo.Commit(ctx, title); err != nil {
				return err
			}

			if err := mutateBox(path, func(box *tissue.Box) error {
				_, err := box.Remove(title)
				return err
			}); err != nil {
				return err
			}

			logger.Info("work tree committed", "title", title)
			return nil
		},
	}
}
