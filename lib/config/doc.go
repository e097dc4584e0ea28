// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML settings loading for tissue.
//
// Settings live in a single file, ~/.config/tissue/config.yaml by
// default, overridable with the --config flag. A missing file is not
// an error: every field has a default and the file only overrides
// them. Decoding is strict, so unknown keys are rejected rather than
// silently ignored.
//
// Environment variables never override settings. The one environment
// lookup is the GitHub token, read from the variable named by
// github.token_env at the moment promote needs it; the token itself
// never appears in the file.
//
// Key exports:
//
//   - [Config] -- the settings struct (tissuebox path, GitHub target)
//   - [Default] -- a Config with the stock defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other tissue packages.
package config
