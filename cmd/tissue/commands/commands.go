// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete tissue CLI command tree: one
// constructor per verb, assembled under the root command by Root.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/version"
)

// Root builds and returns the complete tissue CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "tissue",
		Description: `Tissue: a tiny issue tracker that lives in one file.

A tissuebox is a TOML file of titled tissues, each with optional tags
and a markdown description. Track work from the command line or the
full-screen UI, then retire a tissue as a git commit or promote it to
a GitHub issue.`,
		Subcommands: []*cli.Command{
			addCommand(),
			listCommand(),
			showCommand(),
			describeCommand(),
			tagCommand(),
			untagCommand(),
			renameCommand(),
			closeCommand(),
			commitCommand(),
			promoteCommand(),
			uiCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("tissue %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Add a tissue with tags",
				Command:     "tissue add 'Fix the leaky faucet' --tag plumbing --tag urgent",
			},
			{
				Description: "List everything tagged urgent",
				Command:     "tissue list --tag urgent",
			},
			{
				Description: "Append a line to a description",
				Command:     "tissue describe 'Fix the leaky faucet' 'the washer is shot' --append",
			},
			{
				Description: "Open the full-screen UI",
				Command:     "tissue ui",
			},
			{
				Description: "Commit the work tree under a tissue's title and close it",
				Command:     "tissue commit 'Fix the leaky faucet'",
			},
			{
				Description: "Promote a tissue to a GitHub issue",
				Command:     "tissue promote 'Fix the leaky faucet' --owner acme --repo faucets",
			},
		},
	}
}
