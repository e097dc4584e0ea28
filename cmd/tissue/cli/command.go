// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the CLI verb tree: either a leaf with a Run
// function or a group with Subcommands, dispatched by name.
type Command struct {
	// Name is the verb as typed on the command line ("close",
	// "rename").
	Name string

	// Summary is the one-liner shown next to the name in the
	// parent's command listing.
	Summary string

	// Description is the long-form text at the top of this command's
	// own help.
	Description string

	// Usage is the usage line, for example "tissue rename <old>
	// <new>". When empty a generic one is synthesized from the
	// command path.
	Usage string

	// Examples appear at the bottom of the help output.
	Examples []Example

	// Flags builds this command's *pflag.FlagSet. Called fresh each
	// time a set is needed; nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched by the first positional argument.
	Subcommands []*Command

	// Run executes the command with the positional arguments left
	// after flag parsing. A command normally has either Run or
	// Subcommands; with both, Run handles the case of no matching
	// subcommand.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	// parent is filled in during dispatch so help can show the full
	// command path.
	parent *Command
}

// Example is one worked example in the help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Execute resolves args against the command tree and runs the
// selected command. The context and logger pass through to the
// leaf's Run function.
func (command *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		command.PrintHelp(os.Stderr)
		return nil
	}

	if len(command.Subcommands) > 0 {
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			return command.dispatch(ctx, args, logger)
		}
		if command.Run == nil {
			command.PrintHelp(os.Stderr)
			if len(args) == 0 {
				return fmt.Errorf("subcommand required")
			}
			return fmt.Errorf("subcommand required (got flag %q)", args[0])
		}
	}

	rest, err := command.parseFlags(args)
	if err != nil {
		return err
	}
	if command.Run != nil {
		return command.Run(ctx, rest, logger)
	}

	command.PrintHelp(os.Stderr)
	return fmt.Errorf("no action defined for %q", command.fullName())
}

// dispatch hands args off to the subcommand named by args[0]. An
// unknown name becomes an error, with the nearest real name offered
// when one is close.
func (command *Command) dispatch(ctx context.Context, args []string, logger *slog.Logger) error {
	name := args[0]
	for _, sub := range command.Subcommands {
		if sub.Name == name {
			sub.parent = command
			return sub.Execute(ctx, args[1:], logger)
		}
	}

	if suggestion := suggestCommand(name, command.Subcommands); suggestion != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, command.fullName())
	}
	return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.",
		name, command.fullName())
}

// parseFlags applies the command's flag set to args and returns the
// positional remainder. pflag's own error printing and usage dump
// are suppressed; parse failures are reformatted here, with a
// suggestion when the bad flag looks like a typo.
func (command *Command) parseFlags(args []string) ([]string, error) {
	if command.Flags == nil {
		return args, nil
	}

	flagSet := command.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") {
		// The failed parse may have consumed state, so the lookup
		// runs against a fresh flag set.
		if suggestion := suggestFlag(args, command.Flags()); suggestion != "" {
			return nil, fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
				message, suggestion, command.fullName())
		}
	}
	return nil, fmt.Errorf("%s\n\nRun '%s --help' for usage.",
		message, command.fullName())
}

// PrintHelp writes the command's help text to w: description, usage,
// subcommand listing, flags, then examples.
func (command *Command) PrintHelp(w io.Writer) {
	if command.Description != "" {
		fmt.Fprintf(w, "%s\n\n", command.Description)
	} else if command.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", command.Summary)
	}

	name := command.fullName()
	switch {
	case command.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", command.Usage)
	case len(command.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range command.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if command.Flags != nil {
		var rendered strings.Builder
		flagSet := command.Flags()
		flagSet.SetOutput(&rendered)
		flagSet.PrintDefaults()
		if rendered.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", rendered.String())
		}
	}

	if len(command.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range command.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName is the space-joined path from the root to this command,
// for example "tissue remove tag".
func (command *Command) fullName() string {
	if command.parent == nil {
		return command.Name
	}
	return command.parent.fullName() + " " + command.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
