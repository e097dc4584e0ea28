// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/cmd/tissue/commands"
)

func main() {
	err := commands.Root().Execute(context.Background(), os.Args[1:], cli.NewCommandLogger())
	if err == nil {
		return
	}

	// A command that already wrote its own report (promote saying
	// issues are disabled, for example) signals its exit code through
	// an ExitError; an extra "error:" line would just repeat it.
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.ExitCode())
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
