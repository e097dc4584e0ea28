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

func untagCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "untag",
		Summary: "Remove tags from a tissue",
		Description: `Strip one or more tags from a tissue. Naming a tag the tissue does
not carry is an error, and nothing is written in that case.`,
		Usage: "tissue untag <title> <tag>...",
		Examples: []cli.Example{
			{
				Description: "Remove a tag",
				Command:     "tissue untag 'Fix the leaky faucet' urgent",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("untag", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return cli.Validation("expected a title and at least one tag, got %d arguments", len(args)).
					WithHint("Usage: tissue untag <title> <tag>...")
			}
			title, tags := args[0], args[1:]

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			return mutateBox(path, func(box *tissue.Box) error {
				current, ok := box.Get(title)
				if !ok {
					return cli.NotFound("no tissue titled %q", title)
				}
				for _, tag := range tags {
					if !current.HasTag(tag) {
						return cli.NotFound("tissue %q has no tag %q", title, tag)
					}
				}
				return box.Update(title, func(t *tissue.Tissue) {
					for _, tag := range tags {
						t.Untag(tag)
					}
				})
			})
		},
	}
}
