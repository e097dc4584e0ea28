// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

func tagCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "tag",
		Summary: "Add tags to a tissue",
		Description: `Attach one or more tags to a tissue. Tags a tissue already carries
are skipped, so tagging is idempotent. Tags become GitHub labels when
the tissue is promoted.`,
		Usage: "tissue tag <title> <tag>...",
		Examples: []cli.Example{
			{
				Description: "Tag a tissue",
				Command:     "tissue tag 'Fix the leaky faucet' plumbing urgent",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tag", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return cli.Validation("expected a title and at least one tag, got %d arguments", len(args)).
					WithHint("Usage: tissue tag <title> <tag>...")
			}
			title, tags := args[0], args[1:]
			for _, tag := range tags {
				if strings.TrimSpace(tag) == "" {
					return cli.Validation("tags must not be empty")
				}
			}

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			return mutateBox(path, func(box *tissue.Box) error {
				return box.Update(title, func(t *tissue.Tissue) {
					for _, tag := range tags {
						t.Tag(tag)
					}
				})
			})
		},
	}
}
