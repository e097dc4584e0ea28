// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/github"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

// promoteTimeout bounds the whole promotion: repository pre-flight,
// label creation, and the issue itself. Rate-limit backoff waits count
// against it.
const promoteTimeout = 60 * time.Second

func promoteCommand() *cli.Command {
	var flags struct {
		box   boxFlags
		owner string
		repo  string
	}

	return &cli.Command{
		Name:    "promote",
		Summary: "Turn a tissue into a GitHub issue",
		Description: `File a tissue as an issue on a GitHub repository and close it
locally. The title becomes the issue title, the description the body,
and every tag a label (labels the repository lacks are created first).
On success the issue URL is printed.

The target repository comes from github.owner and github.repo in the
settings file; --owner and --repo override it. The API token is read
from the environment variable named by github.token_env
(default GITHUB_TOKEN).

The tissue is only removed after GitHub confirms the issue, so a
failed promotion never loses anything.`,
		Usage: "tissue promote <title> [flags]",
		Examples: []cli.Example{
			{
				Description: "Promote using the configured repository",
				Command:     "tissue promote 'Fix the leaky faucet'",
			},
			{
				Description: "Promote to an explicit repository",
				Command:     "tissue promote 'Fix the leaky faucet' --owner acme --repo faucets",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("promote", pflag.ContinueOnError)
			flags.box.register(flagSet)
			flagSet.StringVar(&flags.owner, "owner", "", "repository owner (overrides github.owner)")
			flagSet.StringVar(&flags.repo, "repo", "", "repository name (overrides github.repo)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one title argument, got %d", len(args)).
					WithHint("Usage: tissue promote <title> [flags]")
			}
			title := args[0]

			cfg, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			owner := flags.owner
			if owner == "" {
				owner = cfg.GitHub.Owner
			}
			repoName := flags.repo
			if repoName == "" {
				repoName = cfg.GitHub.Repo
			}
			if owner == "" || repoName == "" {
				return cli.Validation("github owner and repo are not configured").
					WithHint("Set github.owner and github.repo in ~/.config/tissue/config.yaml, or pass --owner and --repo.")
			}

			token, err := cfg.Token()
			if err != nil {
				return cli.Validation("%w", err)
			}

			box, err := loadBox(path)
			if err != nil {
				return err
			}
			t, ok := box.Get(title)
			if !ok {
				return cli.NotFound("no tissue titled %q", title)
			}

			client, err := github.NewClient(github.Config{
				BaseURL: cfg.GitHub.BaseURL,
				Token:   token,
				Logger:  logger,
			})
			if err != nil {
				return cli.Validation("%w", err)
			}

			ctx, cancel := context.WithTimeout(ctx, promoteTimeout)
			defer cancel()

			repository, err := client.GetRepository(ctx, owner, repoName)
			if err != nil {
				return categorizeGitHub(err)
			}
			if !repository.HasIssues {
				fmt.Printf("Issues are disabled on %s.\nEnable them under Settings on GitHub, then promote again.\n",
					repository.FullName)
				return &cli.ExitError{Code: 1}
			}

			promotion := t.Promotion()
			if err := client.EnsureLabels(ctx, owner, repoName, promotion.Labels); err != nil {
				return categorizeGitHub(err)
			}
			issue, err := client.CreateIssue(ctx, owner, repoName, github.CreateIssueRequest{
				Title:  promotion.Title,
				Body:   promotion.Body,
				Labels: promotion.Labels,
			})
			if err != nil {
				return categorizeGitHub(err)
			}

			if err := mutateBox(path, func(box *tissue.Box) error {
				_, err := box.Remove(title)
				return err
			}); err != nil {
				return err
			}

			fmt.Println(issue.HTMLURL)
			return nil
		},
	}
}

// categorizeGitHub maps GitHub client errors onto the CLI error
// taxonomy. Rate limits classify as transient before the 403 check so
// a throttled promote reads as "try again later", not "no access".
func categorizeGitHub(err error) error {
	if err == nil {
		return nil
	}
	var apiError *github.APIError
	hasAPIError := errors.As(err, &apiError)
	switch {
	case github.IsTransient(err):
		return cli.Transient("%w", err)
	case github.IsNotFound(err):
		return cli.NotFound("%w", err)
	case github.IsValidationFailed(err):
		return cli.Validation("%w", err)
	case hasAPIError && (apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden):
		return cli.Forbidden("%w", err)
	case hasAPIError:
		return cli.Internal("%w", err)
	}
	// No API response in the chain: the request never completed.
	return cli.Transient("%w", err)
}
