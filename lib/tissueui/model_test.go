// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

// testBox builds a box with three tissues. Canonical order is
// lexicographic on title: "Fix flaky test" (tagged, two description
// lines), then "Renew passport" (two tags), then "Write release
// notes" (bare).
func testBox(t *testing.T) *tissue.Box {
	t.Helper()
	box := tissue.NewBox()
	desc := "Reproduce locally\nBisect the offending commit"
	if err := box.Add("Fix flaky test", []string{"ci"}, &desc); err != nil {
		t.Fatal(err)
	}
	if err := box.Add("Renew passport", []string{"errand", "urgent"}, nil); err != nil {
		t.Fatal(err)
	}
	if err := box.Add("Write release notes", nil, nil); err != nil {
		t.Fatal(err)
	}
	return box
}

func testModel(t *testing.T) Model {
	t.Helper()
	return NewModel(Options{
		Path: filepath.Join(t.TempDir(), ".tissuebox"),
		Box:  testBox(t),
	})
}

func pressRune(t *testing.T, model Model, r rune) Model {
	t.Helper()
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func pressKey(t *testing.T, model Model, keyType tea.KeyType) Model {
	t.Helper()
	updated, _ := model.Update(tea.KeyMsg{Type: keyType})
	return updated.(Model)
}

// typeText feeds a string rune by rune, routing spaces through the
// dedicated space key the way a real terminal session delivers them.
func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			model = pressKey(t, model, tea.KeySpace)
		} else {
			model = pressRune(t, model, r)
		}
	}
	return model
}

type fakeCommitter struct {
	addAllCalls int
	commits     []string
	err         error
}

func (c *fakeCommitter) AddAll(ctx context.Context) error {
	c.addAllCalls++
	return c.err
}

func (c *fakeCommitter) Commit(ctx context.Context, message string) error {
	if c.err != nil {
		return c.err
	}
	c.commits = append(c.commits, message)
	return nil
}

type fakePublisher struct {
	published []tissue.Promotion
	url       string
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, promotion tissue.Promotion) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.published = append(p.published, promotion)
	return p.url, nil
}

func TestNewModelDefaults(t *testing.T) {
	model := testModel(t)

	if model.mode != ModeNormal {
		t.Errorf("initial mode = %d, want ModeNormal", model.mode)
	}
	if len(model.visible) != 3 {
		t.Fatalf("expected 3 visible tissues, got %d", len(model.visible))
	}
	if model.cursor != 0 {
		t.Errorf("initial cursor = %d, want 0", model.cursor)
	}
	if model.theme != DefaultTheme {
		t.Error("zero Options.Theme should default to DefaultTheme")
	}
	if len(model.keys.Up.Keys()) == 0 {
		t.Error("zero Options.Keys should default to DefaultKeyMap")
	}

	// Canonical order is lexicographic on title.
	if model.visible[0].Tissue.Title != "Fix flaky test" {
		t.Errorf("first visible = %q, want Fix flaky test", model.visible[0].Tissue.Title)
	}
	if model.visible[2].Tissue.Title != "Write release notes" {
		t.Errorf("last visible = %q, want Write release notes", model.visible[2].Tissue.Title)
	}
}

func TestNavigationClamps(t *testing.T) {
	model := testModel(t)

	// Down twice lands on the last tissue; a third press stays put.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 'j')
	if model.cursor != 2 {
		t.Errorf("cursor after jj = %d, want 2", model.cursor)
	}
	model = pressRune(t, model, 'j')
	if model.cursor != 2 {
		t.Errorf("cursor should clamp at the last tissue, got %d", model.cursor)
	}

	// Back up past the top.
	model = pressRune(t, model, 'k')
	model = pressRune(t, model, 'k')
	model = pressRune(t, model, 'k')
	if model.cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", model.cursor)
	}
}

func TestAddTissue(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	if model.mode != ModeAdd {
		t.Fatalf("mode after a = %d, want ModeAdd", model.mode)
	}
	model = typeText(t, model, "Buy milk")
	model = pressKey(t, model, tea.KeyEnter)

	if model.mode != ModeNormal {
		t.Errorf("mode after Enter = %d, want ModeNormal", model.mode)
	}
	if _, ok := model.box.Get("Buy milk"); !ok {
		t.Fatal("added tissue missing from box")
	}
	if len(model.visible) != 4 {
		t.Errorf("visible count = %d, want 4", len(model.visible))
	}

	// The mutation is written through to the file.
	loaded, err := tissuefile.Load(model.path)
	if err != nil {
		t.Fatalf("loading saved file: %v", err)
	}
	if _, ok := loaded.Get("Buy milk"); !ok {
		t.Error("saved file missing the added tissue")
	}
}

func TestAddDuplicateTitle(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	model = typeText(t, model, "Renew passport")
	model = pressKey(t, model, tea.KeyEnter)

	if model.statusError == "" {
		t.Error("duplicate add should set a status error")
	}
	if model.box.Len() != 3 {
		t.Errorf("box length = %d, want 3 (unchanged)", model.box.Len())
	}
}

func TestEscCancelsLineInput(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	model = typeText(t, model, "Half typed")
	model = pressKey(t, model, tea.KeyEscape)

	if model.mode != ModeNormal {
		t.Errorf("mode after Esc = %d, want ModeNormal", model.mode)
	}
	if model.input != nil {
		t.Errorf("input should be cleared, got %q", string(model.input))
	}
	if model.box.Len() != 3 {
		t.Errorf("box length = %d, want 3", model.box.Len())
	}
}

func TestBlankLineInputCancels(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	model = pressKey(t, model, tea.KeyEnter)

	if model.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", model.mode)
	}
	if model.box.Len() != 3 {
		t.Errorf("blank add should change nothing, box length = %d", model.box.Len())
	}
	if model.statusError != "" {
		t.Errorf("blank add should not error, got %q", model.statusError)
	}
}

func TestBackspaceEditsInput(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	model = typeText(t, model, "Buy milkk")
	model = pressKey(t, model, tea.KeyBackspace)
	model = pressKey(t, model, tea.KeyEnter)

	if _, ok := model.box.Get("Buy milk"); !ok {
		t.Error("backspace should have trimmed the trailing k")
	}
}

func TestDescribeAppendsLine(t *testing.T) {
	model := testModel(t)

	// The first tissue already has two description lines; a new one
	// lands underneath.
	model = pressRune(t, model, 'd')
	if model.mode != ModeDescribe {
		t.Fatalf("mode after d = %d, want ModeDescribe", model.mode)
	}
	model = typeText(t, model, "Check the CI logs")
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ := model.box.Get("Fix flaky test")
	desc, _ := selected.Description()
	want := "Reproduce locally\nBisect the offending commit\nCheck the CI logs"
	if desc != want {
		t.Errorf("description = %q, want %q", desc, want)
	}

	// Describing a tissue without a description starts one.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 'd')
	model = typeText(t, model, "Photo booth first")
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ = model.box.Get("Renew passport")
	desc, _ = selected.Description()
	if desc != "Photo booth first" {
		t.Errorf("description = %q, want the single new line", desc)
	}
}

func TestTagAndRemoveTag(t *testing.T) {
	model := testModel(t)

	// Tag the bare tissue.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 't')
	model = typeText(t, model, "v2")
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ := model.box.Get("Write release notes")
	if !selected.HasTag("v2") {
		t.Fatal("tissue should carry the new tag")
	}

	// Remove it through the remove selector.
	model = pressRune(t, model, 'r')
	if model.mode != ModeRemove {
		t.Fatalf("mode after r = %d, want ModeRemove", model.mode)
	}
	model = pressRune(t, model, 't')
	if model.mode != ModeRemoveTag {
		t.Fatalf("mode after r t = %d, want ModeRemoveTag", model.mode)
	}
	model = typeText(t, model, "v2")
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ = model.box.Get("Write release notes")
	if selected.HasTag("v2") {
		t.Error("tag should be gone")
	}
}

func TestEditTitleRenames(t *testing.T) {
	model := testModel(t)

	// Star the tissue first so the star follows the rename.
	model = pressRune(t, model, '*')

	model = pressRune(t, model, 'e')
	if model.mode != ModeEditTitle {
		t.Fatalf("mode after e = %d, want ModeEditTitle", model.mode)
	}
	model = typeText(t, model, "Fix the flaky integration test")
	model = pressKey(t, model, tea.KeyEnter)

	if _, ok := model.box.Get("Fix flaky test"); ok {
		t.Error("old title should be gone")
	}
	renamed, ok := model.box.Get("Fix the flaky integration test")
	if !ok {
		t.Fatal("new title missing from box")
	}
	if !renamed.HasTag("ci") {
		t.Error("rename should preserve tags")
	}
	if model.starred != "Fix the flaky integration test" {
		t.Errorf("starred = %q, should follow the rename", model.starred)
	}
}

func TestEditTitleConflict(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'e')
	model = typeText(t, model, "Renew passport")
	model = pressKey(t, model, tea.KeyEnter)

	if model.statusError == "" {
		t.Error("renaming onto an existing title should set a status error")
	}
	if _, ok := model.box.Get("Fix flaky test"); !ok {
		t.Error("failed rename should leave the original in place")
	}
}

func TestStarToggleAndJump(t *testing.T) {
	model := testModel(t)

	// Star the selection.
	model = pressRune(t, model, '*')
	if model.starred != "Fix flaky test" {
		t.Fatalf("starred = %q, want Fix flaky test", model.starred)
	}

	// From another tissue, star jumps back instead of moving the star.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, '*')
	if model.cursor != 0 {
		t.Errorf("star from elsewhere should jump to the starred tissue, cursor = %d", model.cursor)
	}
	if model.starred != "Fix flaky test" {
		t.Errorf("starred = %q, jump should not move the star", model.starred)
	}

	// On the starred tissue, star clears it.
	model = pressRune(t, model, '*')
	if model.starred != "" {
		t.Errorf("starred = %q, want empty after unstar", model.starred)
	}
}

func TestRemoveTissueAndRestore(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'r')
	model = pressRune(t, model, 'T')

	if model.box.Len() != 2 {
		t.Fatalf("box length after remove = %d, want 2", model.box.Len())
	}
	if len(model.recycleBin) != 1 {
		t.Fatalf("recycle bin length = %d, want 1", len(model.recycleBin))
	}
	if model.recycleBin[0].Title != "Fix flaky test" {
		t.Errorf("bin holds %q, want Fix flaky test", model.recycleBin[0].Title)
	}
	if len(model.visible) != 2 {
		t.Errorf("visible count = %d, want 2", len(model.visible))
	}

	// The removal persists.
	loaded, err := tissuefile.Load(model.path)
	if err != nil {
		t.Fatalf("loading saved file: %v", err)
	}
	if _, ok := loaded.Get("Fix flaky test"); ok {
		t.Error("removed tissue still in the saved file")
	}

	// Restore it.
	model = pressRune(t, model, 'R')
	if model.mode != ModeRestore {
		t.Fatalf("mode after R = %d, want ModeRestore", model.mode)
	}
	model = pressKey(t, model, tea.KeyEnter)

	if model.box.Len() != 3 {
		t.Errorf("box length after restore = %d, want 3", model.box.Len())
	}
	if len(model.recycleBin) != 0 {
		t.Errorf("recycle bin should be empty, got %d", len(model.recycleBin))
	}
	restored, ok := model.box.Get("Fix flaky test")
	if !ok {
		t.Fatal("restored tissue missing from box")
	}
	if desc, _ := restored.Description(); !strings.Contains(desc, "Reproduce locally") {
		t.Error("restore should bring the description back")
	}
}

func TestRestoreGatedOnEmptyBin(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'R')
	if model.mode != ModeNormal {
		t.Errorf("R with an empty bin should stay in normal mode, got %d", model.mode)
	}
}

func TestRestoreConflictStaysInBin(t *testing.T) {
	model := testModel(t)

	// Remove a tissue, then add a fresh one under the same title.
	model = pressRune(t, model, 'r')
	model = pressRune(t, model, 'T')
	model = pressRune(t, model, 'a')
	model = typeText(t, model, "Fix flaky test")
	model = pressKey(t, model, tea.KeyEnter)

	model = pressRune(t, model, 'R')
	model = pressKey(t, model, tea.KeyEnter)

	if model.statusError == "" {
		t.Error("restoring onto a taken title should set a status error")
	}
	if len(model.recycleBin) != 1 {
		t.Errorf("failed restore should keep the entry binned, bin length = %d", len(model.recycleBin))
	}
}

func TestRemoveDescriptionLine(t *testing.T) {
	model := testModel(t)

	// Pick the second of the two description lines.
	model = pressRune(t, model, 'r')
	model = pressRune(t, model, 'd')
	if model.mode != ModeRemoveDesc {
		t.Fatalf("mode after r d = %d, want ModeRemoveDesc", model.mode)
	}
	model = pressRune(t, model, 'j')
	if model.descCursor != 1 {
		t.Fatalf("descCursor = %d, want 1", model.descCursor)
	}
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ := model.box.Get("Fix flaky test")
	desc, _ := selected.Description()
	if desc != "Reproduce locally" {
		t.Errorf("description = %q, want the first line only", desc)
	}

	// Removing the last line drops the description entirely.
	model = pressRune(t, model, 'r')
	model = pressRune(t, model, 'd')
	model = pressKey(t, model, tea.KeyEnter)

	selected, _ = model.box.Get("Fix flaky test")
	if _, ok := selected.Description(); ok {
		t.Error("removing the only line should clear the description")
	}
}

func TestRemoveDescriptionWithoutDescription(t *testing.T) {
	model := testModel(t)

	// "Renew passport" has no description; d in the remove selector
	// falls back to normal mode.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 'r')
	model = pressRune(t, model, 'd')
	if model.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal when there is nothing to remove", model.mode)
	}
}

func TestFilterNarrowsAndKeeps(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, '/')
	if model.mode != ModeFilter {
		t.Fatalf("mode after / = %d, want ModeFilter", model.mode)
	}
	if !model.filter.Active {
		t.Fatal("filter should be active while typing")
	}

	model = typeText(t, model, "release")
	if len(model.visible) != 1 {
		t.Fatalf("filter 'release' should match 1 tissue, got %d", len(model.visible))
	}
	if model.visible[0].Tissue.Title != "Write release notes" {
		t.Errorf("matched %q, want Write release notes", model.visible[0].Tissue.Title)
	}

	// Enter keeps the narrowed view and returns keyboard control.
	model = pressKey(t, model, tea.KeyEnter)
	if model.mode != ModeNormal {
		t.Errorf("mode after Enter = %d, want ModeNormal", model.mode)
	}
	if model.filter.Active {
		t.Error("filter should no longer be active")
	}
	if len(model.visible) != 1 {
		t.Errorf("narrowing should survive Enter, visible = %d", len(model.visible))
	}

	// Esc in normal mode drops the applied filter.
	model = pressKey(t, model, tea.KeyEscape)
	if len(model.visible) != 3 {
		t.Errorf("Esc should clear the filter, visible = %d", len(model.visible))
	}
}

func TestFilterEscWhileTyping(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, '/')
	model = typeText(t, model, "zzz")
	if len(model.visible) != 0 {
		t.Fatalf("no tissue matches zzz, visible = %d", len(model.visible))
	}

	model = pressKey(t, model, tea.KeyEscape)
	if model.mode != ModeNormal {
		t.Errorf("mode after Esc = %d, want ModeNormal", model.mode)
	}
	if model.filter.Input != "" {
		t.Errorf("filter input should be cleared, got %q", model.filter.Input)
	}
	if len(model.visible) != 3 {
		t.Errorf("all tissues should be back, visible = %d", len(model.visible))
	}
}

func TestFilterMatchesTagsAndDescriptions(t *testing.T) {
	model := testModel(t)

	// "errand" only appears as a tag on Renew passport.
	model = pressRune(t, model, '/')
	model = typeText(t, model, "errand")
	if len(model.visible) != 1 || model.visible[0].Tissue.Title != "Renew passport" {
		t.Fatalf("tag filter should match Renew passport, got %d matches", len(model.visible))
	}

	// "bisect" only appears in a description line.
	model = pressKey(t, model, tea.KeyEscape)
	model = pressRune(t, model, '/')
	model = typeText(t, model, "bisect")
	if len(model.visible) != 1 || model.visible[0].Tissue.Title != "Fix flaky test" {
		t.Fatalf("description filter should match Fix flaky test, got %d matches", len(model.visible))
	}
}

func TestQuitKey(t *testing.T) {
	model := testModel(t)

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command == nil {
		t.Fatal("q should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("q should quit in normal mode")
	}

	// Inside an input mode, q is just a letter.
	model = pressRune(t, model, 'a')
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	model = updated.(Model)
	if command != nil {
		t.Error("q while typing should not quit")
	}
	if string(model.input) != "q" {
		t.Errorf("input = %q, want q", string(model.input))
	}
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'a')
	_, command := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("ctrl+c should quit even inside an input mode")
	}
}

func TestHelpScreen(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'H')
	if model.mode != ModeHelp {
		t.Fatalf("mode after H = %d, want ModeHelp", model.mode)
	}

	// Any key returns to the list.
	model = pressRune(t, model, 'x')
	if model.mode != ModeNormal {
		t.Errorf("mode after leaving help = %d, want ModeNormal", model.mode)
	}
}

func TestCommitFlow(t *testing.T) {
	committer := &fakeCommitter{}
	model := NewModel(Options{
		Path:      filepath.Join(t.TempDir(), ".tissuebox"),
		Box:       testBox(t),
		Committer: committer,
	})

	model = pressRune(t, model, 'C')
	if model.mode != ModeCommit {
		t.Fatalf("mode after C = %d, want ModeCommit", model.mode)
	}

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	model = updated.(Model)
	if !model.busy {
		t.Error("confirming should mark the model busy")
	}
	if command == nil {
		t.Fatal("confirming should return the commit command")
	}

	// Run the async command and feed its result back.
	message := command()
	result, ok := message.(commitResultMsg)
	if !ok {
		t.Fatalf("expected commitResultMsg, got %T", message)
	}
	if result.err != nil {
		t.Fatalf("commit result error: %v", result.err)
	}
	if committer.addAllCalls != 1 {
		t.Errorf("AddAll calls = %d, want 1", committer.addAllCalls)
	}
	if len(committer.commits) != 1 || committer.commits[0] != "Fix flaky test" {
		t.Errorf("commit messages = %v, want the tissue title", committer.commits)
	}

	updated, _ = model.Update(result)
	model = updated.(Model)
	if model.busy {
		t.Error("busy should clear after the result arrives")
	}
	if _, ok := model.box.Get("Fix flaky test"); ok {
		t.Error("committed tissue should leave the box")
	}
	if len(model.recycleBin) != 1 {
		t.Errorf("committed tissue should land in the bin, length = %d", len(model.recycleBin))
	}
	if !strings.Contains(model.statusNotice, "committed") {
		t.Errorf("notice = %q, want a committed confirmation", model.statusNotice)
	}
}

func TestCommitFailureKeepsTissue(t *testing.T) {
	committer := &fakeCommitter{err: errors.New("nothing to commit")}
	model := NewModel(Options{
		Path:      filepath.Join(t.TempDir(), ".tissuebox"),
		Box:       testBox(t),
		Committer: committer,
	})

	model = pressRune(t, model, 'C')
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	model = updated.(Model)

	updated, _ = model.Update(command())
	model = updated.(Model)
	if !strings.Contains(model.statusError, "commit failed") {
		t.Errorf("status error = %q, want commit failed", model.statusError)
	}
	if _, ok := model.box.Get("Fix flaky test"); !ok {
		t.Error("failed commit should leave the tissue in the box")
	}
	if len(model.recycleBin) != 0 {
		t.Error("failed commit should not bin the tissue")
	}
}

func TestCommitWithoutCommitter(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'C')
	model = pressRune(t, model, 'y')

	if !strings.Contains(model.statusError, "commit unavailable") {
		t.Errorf("status error = %q, want commit unavailable", model.statusError)
	}
	if model.busy {
		t.Error("model should not be busy")
	}
	if model.box.Len() != 3 {
		t.Errorf("box length = %d, want 3", model.box.Len())
	}
}

func TestPublishFlow(t *testing.T) {
	publisher := &fakePublisher{url: "https://github.com/acme/site/issues/7"}
	model := NewModel(Options{
		Path:      filepath.Join(t.TempDir(), ".tissuebox"),
		Box:       testBox(t),
		Publisher: publisher,
	})

	model = pressRune(t, model, 'P')
	if model.mode != ModePublish {
		t.Fatalf("mode after P = %d, want ModePublish", model.mode)
	}

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	model = updated.(Model)
	if command == nil {
		t.Fatal("confirming should return the publish command")
	}

	message := command()
	result, ok := message.(publishResultMsg)
	if !ok {
		t.Fatalf("expected publishResultMsg, got %T", message)
	}
	if result.url != publisher.url {
		t.Errorf("result url = %q, want %q", result.url, publisher.url)
	}

	// The promotion carries the tissue's content.
	if len(publisher.published) != 1 {
		t.Fatalf("published count = %d, want 1", len(publisher.published))
	}
	promotion := publisher.published[0]
	if promotion.Title != "Fix flaky test" {
		t.Errorf("promotion title = %q", promotion.Title)
	}
	if !strings.Contains(promotion.Body, "Reproduce locally") {
		t.Errorf("promotion body should carry the description, got %q", promotion.Body)
	}
	if len(promotion.Labels) != 1 || promotion.Labels[0] != "ci" {
		t.Errorf("promotion labels = %v, want [ci]", promotion.Labels)
	}

	updated, _ = model.Update(result)
	model = updated.(Model)
	if _, ok := model.box.Get("Fix flaky test"); ok {
		t.Error("published tissue should leave the box")
	}
	if !strings.Contains(model.statusNotice, publisher.url) {
		t.Errorf("notice = %q, want the issue URL", model.statusNotice)
	}
}

func TestPublishWithoutPublisher(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'P')
	model = pressRune(t, model, 'y')

	if !strings.Contains(model.statusError, "publish unavailable") {
		t.Errorf("status error = %q, want publish unavailable", model.statusError)
	}
}

func TestConfirmCancel(t *testing.T) {
	committer := &fakeCommitter{}
	model := NewModel(Options{
		Path:      filepath.Join(t.TempDir(), ".tissuebox"),
		Box:       testBox(t),
		Committer: committer,
	})

	model = pressRune(t, model, 'C')
	model = pressRune(t, model, 'n')
	if model.mode != ModeNormal {
		t.Errorf("n should cancel, mode = %d", model.mode)
	}
	if committer.addAllCalls != 0 {
		t.Error("cancelled commit should not touch git")
	}

	model = pressRune(t, model, 'C')
	model = pressKey(t, model, tea.KeyEscape)
	if model.mode != ModeNormal {
		t.Errorf("Esc should cancel, mode = %d", model.mode)
	}
}

func TestCopyTitle(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'c')
	if model.mode != ModeCopy {
		t.Fatalf("mode after c = %d, want ModeCopy", model.mode)
	}

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	model = updated.(Model)
	if model.statusNotice != "copied to clipboard" {
		t.Errorf("notice = %q", model.statusNotice)
	}
	if command == nil {
		t.Error("copy should return the clipboard command")
	}
}

func TestCopyMissingDescription(t *testing.T) {
	model := testModel(t)

	// "Renew passport" has no description: nothing to copy, no notice.
	model = pressRune(t, model, 'j')
	model = pressRune(t, model, 'c')
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	model = updated.(Model)
	if command != nil {
		t.Error("copying an absent description should be a no-op")
	}
	if model.statusNotice != "" {
		t.Errorf("notice = %q, want empty", model.statusNotice)
	}
}

func TestCopyList(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'c')
	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if command == nil {
		t.Error("copy list should return the clipboard command")
	}
}

func TestClipboardNoticeFades(t *testing.T) {
	model := testModel(t)

	model = pressRune(t, model, 'c')
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	model = updated.(Model)

	updated, _ = model.Update(clipboardFadeMsg{})
	model = updated.(Model)
	if model.statusNotice != "" {
		t.Errorf("notice should fade, got %q", model.statusNotice)
	}
}

func TestSelectionKeysGatedOnEmptyList(t *testing.T) {
	model := NewModel(Options{
		Path: filepath.Join(t.TempDir(), ".tissuebox"),
		Box:  tissue.NewBox(),
	})

	for _, letter := range []rune{'d', 't', 'e', 'c', 'C', 'P', 'r', '*'} {
		model = pressRune(t, model, letter)
		if model.mode != ModeNormal {
			t.Fatalf("key %q on an empty list should stay in normal mode, got %d", letter, model.mode)
		}
	}

	// Add still works.
	model = pressRune(t, model, 'a')
	if model.mode != ModeAdd {
		t.Errorf("a should work on an empty list, mode = %d", model.mode)
	}
}

func TestReloadSwapsBox(t *testing.T) {
	model := testModel(t)
	model = pressRune(t, model, '*')

	// External edit removed the starred tissue and added another.
	edited := tissue.NewBox()
	if err := edited.Add("From the outside", nil, nil); err != nil {
		t.Fatal(err)
	}
	updated, _ := model.Update(reloadMsg{box: edited})
	model = updated.(Model)

	if len(model.visible) != 1 {
		t.Fatalf("visible = %d, want 1 after reload", len(model.visible))
	}
	if model.visible[0].Tissue.Title != "From the outside" {
		t.Errorf("visible[0] = %q", model.visible[0].Tissue.Title)
	}
	if model.starred != "" {
		t.Errorf("starred = %q, should clear when the tissue vanishes", model.starred)
	}
	if model.statusNotice != "reloaded external changes" {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestReloadParseErrorKeepsBox(t *testing.T) {
	model := testModel(t)

	updated, _ := model.Update(reloadMsg{err: errors.New("toml: line 3")})
	model = updated.(Model)

	if !strings.Contains(model.statusError, "external edit not loaded") {
		t.Errorf("status error = %q", model.statusError)
	}
	if len(model.visible) != 3 {
		t.Errorf("a failed reload should keep the current box, visible = %d", len(model.visible))
	}
}

func TestAskExclude(t *testing.T) {
	called := false
	model := NewModel(Options{
		Path:            filepath.Join(t.TempDir(), ".tissuebox"),
		Box:             testBox(t),
		OfferGitExclude: true,
		ExcludeFromGit:  func() error { called = true; return nil },
	})

	if model.mode != ModeAskExclude {
		t.Fatalf("mode = %d, want ModeAskExclude on first run", model.mode)
	}

	model = pressRune(t, model, 'y')
	if !called {
		t.Error("y should run the exclude")
	}
	if model.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", model.mode)
	}
	if !strings.Contains(model.statusNotice, ".git/info/exclude") {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestAskExcludeDeclined(t *testing.T) {
	called := false
	model := NewModel(Options{
		Path:            filepath.Join(t.TempDir(), ".tissuebox"),
		Box:             testBox(t),
		OfferGitExclude: true,
		ExcludeFromGit:  func() error { called = true; return nil },
	})

	model = pressRune(t, model, 'n')
	if called {
		t.Error("n should not run the exclude")
	}
	if model.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", model.mode)
	}
}

func TestAskExcludeFailure(t *testing.T) {
	model := NewModel(Options{
		Path:            filepath.Join(t.TempDir(), ".tissuebox"),
		Box:             testBox(t),
		OfferGitExclude: true,
		ExcludeFromGit:  func() error { return errors.New("permission denied") },
	})

	model = pressRune(t, model, 'y')
	if !strings.Contains(model.statusError, "exclude failed") {
		t.Errorf("status error = %q", model.statusError)
	}
}

func TestViewRendering(t *testing.T) {
	model := testModel(t)

	// Before the first WindowSizeMsg the view is empty.
	if model.View() != "" {
		t.Error("view should be empty before the terminal size arrives")
	}

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "tissuebox") {
		t.Error("view should contain the banner")
	}
	if !strings.Contains(view, "Fix flaky test") {
		t.Error("view should contain the first title")
	}
	if !strings.Contains(view, "(ci)") {
		t.Error("view should render tags in parentheses")
	}
	if !strings.Contains(view, " - Reproduce locally") {
		t.Error("view should render description lines")
	}
	if !strings.Contains(view, "elp") {
		t.Error("view should contain the normal mode instructions")
	}
}

func TestViewShowsStar(t *testing.T) {
	model := testModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	model = pressRune(t, model, '*')
	if !strings.Contains(model.View(), "*Fix flaky test") {
		t.Error("starred tissue should render with a star prefix")
	}
}

func TestViewHelpScreen(t *testing.T) {
	model := testModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model = updated.(Model)

	model = pressRune(t, model, 'H')
	view := model.View()
	if !strings.Contains(view, "Welcome to tissuebox!") {
		t.Error("help view should contain the welcome heading")
	}
	if !strings.Contains(view, "Help!") {
		t.Error("help view should label the bottom border")
	}
}

func TestViewStatusLine(t *testing.T) {
	model := testModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	model = pressRune(t, model, 'a')
	model = typeText(t, model, "Renew passport")
	model = pressKey(t, model, tea.KeyEnter)

	if model.statusError == "" {
		t.Fatal("duplicate add should set a status error")
	}
	if !strings.Contains(model.View(), model.statusError) {
		t.Error("status error should render under the box")
	}
}

func TestViewFirstRunPrompt(t *testing.T) {
	model := NewModel(Options{
		Path:            filepath.Join(t.TempDir(), ".tissuebox"),
		Box:             testBox(t),
		OfferGitExclude: true,
		ExcludeFromGit:  func() error { return nil },
	})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "exclude it from git") {
		t.Error("first-run view should ask the exclude question")
	}
	if !strings.Contains(view, ".git/info/exclude") {
		t.Error("first-run view should name the exclude file")
	}
}
