// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

func listCommand() *cli.Command {
	var flags struct {
		box    boxFlags
		tags   []string
		query  string
		titles bool
	}

	return &cli.Command{
		Name:    "list",
		Summary: "List tissues",
		Description: `Print tissues in title order, numbered, with tags in parentheses and
description lines indented underneath. Filters combine: --tag
restricts the listing to tissues carrying every given tag, --query to
tissues whose title or description contains the text,
case-insensitively.`,
		Usage: "tissue list [flags]",
		Examples: []cli.Example{
			{
				Description: "List everything",
				Command:     "tissue list",
			},
			{
				Description: "List urgent plumbing work",
				Command:     "tissue list --tag urgent --tag plumbing",
			},
			{
				Description: "Bare titles, for scripting",
				Command:     "tissue list --query faucet --titles",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.box.register(flagSet)
			flagSet.StringSliceVarP(&flags.tags, "tag", "t", nil, "require a tag (repeatable)")
			flagSet.StringVarP(&flags.query, "query", "q", "", "require text in the title or description")
			flagSet.BoolVar(&flags.titles, "titles", false, "print bare titles, one per line")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("unexpected argument %q", args[0]).
					WithHint("Usage: tissue list [flags]")
			}

			_, path, err := flags.box.resolve()
			if err != nil {
				return err
			}
			box, err := loadBox(path)
			if err != nil {
				return err
			}

			filter := tissue.Filter{Tags: flags.tags, Query: flags.query}
			fmt.Print(renderListing(box, filter, flags.titles))
			return nil
		},
	}
}

// renderListing produces the list command's output: bare titles when
// titlesOnly is set, the numbered FormatList shape otherwise.
func renderListing(box *tissue.Box, filter tissue.Filter, titlesOnly bool) string {
	if titlesOnly {
		var builder strings.Builder
		for t := range box.List(filter) {
			builder.WriteString(t.Title)
			builder.WriteByte('\n')
		}
		return builder.String()
	}
	return tissue.FormatList(slices.Collect(box.List(filter)))
}
