// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"

	"github.com/spf13/pflag"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/config"
	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

// boxFlags are the flags every verb shares: which tissuebox to operate
// on and where the settings file lives. Each verb registers them on its
// own flag set; the resolved path applies the --file override, then the
// settings file, then the default.
type boxFlags struct {
	file       string
	configPath string
}

func (flags *boxFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&flags.file, "file", "f", "", "tissuebox file (overrides the settings file)")
	flagSet.StringVar(&flags.configPath, "config", "", "settings file (default: ~/.config/tissue/config.yaml)")
}

// resolve loads the settings and returns them together with the
// tissuebox path the verb should operate on.
func (flags *boxFlags) resolve() (*config.Config, string, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", cli.Validation("invalid settings: %w", err)
	}

	path := flags.file
	if path == "" {
		path = cfg.File
	}
	return cfg, path, nil
}

// missingBox is the error for verbs that need an existing tissuebox
// when there is none at path. Only add and ui create the file.
func missingBox(path string) error {
	return cli.Validation("no tissuebox at %s", path).
		WithHint("Run 'tissue add <title>' to create one.")
}

// categorize maps storage and data-model errors onto the CLI error
// taxonomy. Errors that already carry a category pass through
// unchanged, so verbs can return cli errors from inside a Mutate
// closure. Unknown errors (git, for example) pass through uncategorized.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return err
	}

	var duplicate *tissue.DuplicateTitleError
	var notFound *tissue.NotFoundError
	var formatError *tissue.FormatError
	var ioError *tissuefile.IOError
	switch {
	case errors.As(err, &duplicate):
		return cli.Conflict("%w", err)
	case errors.As(err, &notFound):
		return cli.NotFound("%w", err)
	case errors.Is(err, tissue.ErrEmptyTitle):
		return cli.Validation("%w", err)
	case errors.As(err, &formatError):
		return cli.Validation("%w", err)
	case errors.As(err, &ioError):
		return cli.Internal("%w", err)
	}
	return err
}

// loadBox reads and parses the tissuebox at path, mapping the failure
// modes onto CLI error categories.
func loadBox(path string) (*tissue.Box, error) {
	box, err := tissuefile.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, missingBox(path)
		}
		return nil, categorize(err)
	}
	return box, nil
}

// mutateBox runs the read-mutate-write cycle on the tissuebox at path,
// mapping the failure modes onto CLI error categories.
func mutateBox(path string, apply func(*tissue.Box) error) error {
	if err := tissuefile.Mutate(path, apply); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return missingBox(path)
		}
		return categorize(err)
	}
	return nil
}
