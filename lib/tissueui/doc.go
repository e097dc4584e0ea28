// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package tissueui implements the interactive terminal view of a
// tissuebox. [Model] is a bubbletea model: one scrolling list of
// tissues with modal keystroke handling for add, describe, tag,
// rename, remove, restore, copy, commit, and publish, plus an
// incremental fuzzy filter and a file watcher that reloads the view
// when another process rewrites the box.
//
// The model owns the box for the lifetime of the program. Every
// mutation is applied in memory and the whole file rewritten through
// tissuefile.Save; the model announces each save to the watcher first
// so its own writes do not bounce back as reload events. Commit and
// publish run asynchronously through tea.Cmd and deliver result
// messages, so the UI stays responsive while git or the issue tracker
// round-trips.
package tissueui
