// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import "github.com/charmbracelet/lipgloss"

// Theme collects every color the tissue picker and pager draw with.
// Values are ANSI 256-color codes so the palette survives terminals
// without truecolor.
type Theme struct {
	// Body text.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Accents. TitleAccent covers the banner and the hotkey letters in
	// the key legend; PromptAccent covers input prompt labels.
	TitleAccent  lipgloss.Color
	PromptAccent lipgloss.Color

	// Tissue annotations.
	TagColor  lipgloss.Color
	StarColor lipgloss.Color

	// Status line.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// UI chrome and markdown rendering.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color
}

// DefaultTheme assumes a dark background. Grays carry the body text
// and chrome; saturated colors are reserved for the few things worth
// pulling the eye to.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	// Near-reverse-video cursor row: light background, dark text.
	SelectedBackground: lipgloss.Color("255"),
	SelectedForeground: lipgloss.Color("16"),

	TitleAccent:  lipgloss.Color("196"), // red
	PromptAccent: lipgloss.Color("75"),  // blue

	TagColor:  lipgloss.Color("170"), // magenta
	StarColor: lipgloss.Color("220"), // amber

	ErrorText:   lipgloss.Color("196"),
	SuccessText: lipgloss.Color("114"),

	HeaderForeground: lipgloss.Color("231"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("243"),

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber
}
