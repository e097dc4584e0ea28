// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/config"
	"github.com/tissueworks/tissuebox/lib/git"
	"github.com/tissueworks/tissuebox/lib/github"
	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
	"github.com/tissueworks/tissuebox/lib/tissueui"
)

func uiCommand() *cli.Command {
	var flags struct {
		box boxFlags
	}

	return &cli.Command{
		Name:    "ui",
		Summary: "Open the full-screen tissuebox UI",
		Description: `Open the interactive tissuebox. Single-key commands add, describe,
tag, star, and remove tissues; / filters the list with fuzzy matching;
C commits the work tree under the selected title and P promotes the
selection to a GitHub issue. Press H inside for the full key list.

On first run the UI creates the tissuebox file and, inside a git work
tree, offers to hide it in .git/info/exclude. External edits to the
file are picked up live.`,
		Usage: "tissue ui [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the UI on the default tissuebox",
				Command:     "tissue ui",
			},
			{
				Description: "Open a specific file",
				Command:     "tissue ui --file ~/notes/.tissuebox",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ui", pflag.ContinueOnError)
			flags.box.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("unexpected argument %q", args[0]).
					WithHint("Usage: tissue ui [flags]")
			}

			cfg, path, err := flags.box.resolve()
			if err != nil {
				return err
			}

			created := false
			exists, err := tissuefile.Exists(path)
			if err != nil {
				return categorize(err)
			}
			if !exists {
				if err := tissuefile.Save(path, tissue.NewBox()); err != nil {
					return categorize(err)
				}
				created = true
				logger.Info("created tissuebox", "path", path)
			}

			box, err := loadBox(path)
			if err != nil {
				return err
			}

			absolutePath, err := filepath.Abs(path)
			if err != nil {
				return cli.Internal("resolving %s: %w", path, err)
			}
			repo := git.NewRepository(filepath.Dir(absolutePath))

			var committer tissueui.Committer
			var excludeFromGit func() error
			offerExclude := false
			if repo.IsWorkTree(ctx) {
				committer = repo
				if created && cfg.ExcludeFromGit {
					offerExclude = true
					excludeFromGit = func() error {
						excludePath, err := repo.ExcludePath(ctx)
						if err != nil {
							return err
						}
						return appendGitExclude(excludePath, path)
					}
				}
			}

			var publisher tissueui.Publisher
			if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
				publisher = &issuePublisher{
					cfg:    cfg,
					owner:  cfg.GitHub.Owner,
					repo:   cfg.GitHub.Repo,
					logger: logger,
				}
			}

			watcher, err := tissueui.WatchFile(path)
			if err != nil {
				logger.Warn("external edit watching disabled", "error", err)
				watcher = nil
			} else {
				defer watcher.Close()
			}

			model := tissueui.NewModel(tissueui.Options{
				Path:            path,
				Box:             box,
				Committer:       committer,
				Publisher:       publisher,
				Watcher:         watcher,
				OfferGitExclude: offerExclude,
				ExcludeFromGit:  excludeFromGit,
				Context:         ctx,
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running UI: %w", err)
			}
			return nil
		},
	}
}

// appendGitExclude appends the tissuebox path to the repository's
// local exclude file. The path is written as configured (normally the
// repo-relative ".tissuebox"), since exclude patterns match against
// relative paths.
func appendGitExclude(excludePath, boxPath string) error {
	file, err := os.OpenFile(excludePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", excludePath, err)
	}
	if _, err := fmt.Fprintf(file, "\n# tissuebox\n%s\n", boxPath); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", excludePath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", excludePath, err)
	}
	return nil
}

// issuePublisher adapts the GitHub client to the TUI's Publisher
// interface. The token and client resolve at publish time, so a
// missing token surfaces in the status line when P is pressed rather
// than silently disabling the key at startup.
type issuePublisher struct {
	cfg    *config.Config
	owner  string
	repo   string
	logger *slog.Logger
}

func (p *issuePublisher) Publish(ctx context.Context, promotion tissue.Promotion) (string, error) {
	token, err := p.cfg.Token()
	if err != nil {
		return "", err
	}
	client, err := github.NewClient(github.Config{
		BaseURL: p.cfg.GitHub.BaseURL,
		Token:   token,
		Logger:  p.logger,
	})
	if err != nil {
		return "", err
	}

	repository, err := client.GetRepository(ctx, p.owner, p.repo)
	if err != nil {
		return "", err
	}
	if !repository.HasIssues {
		return "", fmt.Errorf("issues are disabled on %s", repository.FullName)
	}

	if err := client.EnsureLabels(ctx, p.owner, p.repo, promotion.Labels); err != nil {
		return "", err
	}
	issue, err := client.CreateIssue(ctx, p.owner, p.repo, github.CreateIssueRequest{
		Title:  promotion.Title,
		Body:   promotion.Body,
		Labels: promotion.Labels,
	})
	if err != nil {
		return "", err
	}
	return issue.HTMLURL, nil
}
