// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zeebo/blake3"

	"github.com/tissueworks/tissuebox/lib/tissue"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

// Mode is the modal keyboard state. Normal mode navigates and
// dispatches; every other mode interprets keystrokes for one pending
// interaction and falls back to Normal when it resolves or is
// cancelled with Esc.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp

	// Line input modes: keystrokes accumulate in the input buffer
	// until Enter commits or Esc cancels.
	ModeAdd
	ModeDescribe
	ModeTag
	ModeEditTitle
	ModeRemoveTag

	// Selector modes: single-letter dispatch.
	ModeCopy
	ModeRemove

	// Confirmation modes: y runs the action, n cancels.
	ModeCommit
	ModePublish

	// Cursor modes: j/k select an entry, Enter commits.
	ModeRemoveDesc
	ModeRestore

	// Incremental filter input.
	ModeFilter

	// One-time first-run prompt offering to hide the fresh tissuebox
	// from git.
	ModeAskExclude
)

// Committer runs the two-step git commit behind the C key.
// lib/git.Repository satisfies it.
type Committer interface {
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
}

// Publisher files a tissue with an external issue tracker and returns
// the created issue's URL.
type Publisher interface {
	Publish(ctx context.Context, promotion tissue.Promotion) (string, error)
}

// Options configures NewModel.
type Options struct {
	// Path is the tissuebox file. Saves rewrite it in place.
	Path string

	// Box is the loaded tissuebox. The model owns it from here on;
	// external edits arrive through the watcher as fresh boxes.
	Box *tissue.Box

	// Theme defaults to DefaultTheme when zero.
	Theme Theme

	// Keys defaults to DefaultKeyMap when unset.
	Keys KeyMap

	// Committer backs the C key. Nil leaves commit disabled with a
	// status line explanation.
	Committer Committer

	// Publisher backs the P key. Nil leaves publish disabled likewise.
	Publisher Publisher

	// Watcher feeds external-edit reloads. Nil disables watching.
	Watcher *Watcher

	// OfferGitExclude starts the session on the first-run prompt;
	// ExcludeFromGit performs the append when the user accepts.
	OfferGitExclude bool
	ExcludeFromGit  func() error

	// Context bounds the asynchronous commit and publish operations.
	// Defaults to context.Background.
	Context context.Context
}

// Model is the top-level bubbletea model for the tissuebox TUI.
type Model struct {
	path  string
	box   *tissue.Box
	theme Theme
	keys  KeyMap

	ctx            context.Context
	committer      Committer
	publisher      Publisher
	watcher        *Watcher
	excludeFromGit func() error

	width  int
	height int
	ready  bool

	mode  Mode
	input []rune

	// target is the title of the tissue a modal interaction operates
	// on, captured when the mode is entered. Addressing by title keeps
	// the operation anchored through canonical re-sorting and external
	// reloads; if the tissue vanishes meanwhile, the operation reports
	// instead of hitting a neighbor.
	target string

	filter  FilterModel
	visible []FilterResult
	cursor  int

	descCursor int
	binCursor  int

	// recycleBin holds removed tissues for this session, oldest first.
	// It is never written to the file.
	recycleBin []tissue.Tissue

	// starred is the starred tissue's title, or empty. Session-only,
	// like the recycle bin.
	starred string

	statusError  string
	statusNotice string

	// busy blocks a second commit/publish while one is in flight.
	busy bool
}

// NewModel builds the TUI model around a loaded box.
func NewModel(options Options) Model {
	model := Model{
		path:           options.Path,
		box:            options.Box,
		theme:          options.Theme,
		keys:           options.Keys,
		ctx:            options.Context,
		committer:      options.Committer,
		publisher:      options.Publisher,
		watcher:        options.Watcher,
		excludeFromGit: options.ExcludeFromGit,
	}
	if model.theme == (Theme{}) {
		model.theme = DefaultTheme
	}
	if len(model.keys.Up.Keys()) == 0 {
		model.keys = DefaultKeyMap
	}
	if model.ctx == nil {
		model.ctx = context.Background()
	}
	if options.OfferGitExclude && options.ExcludeFromGit != nil {
		model.mode = ModeAskExclude
	}
	model.rebuildVisible()
	return model
}

// reloadMsg delivers a re-parsed box after an external file change.
type reloadMsg struct {
	box *tissue.Box
	err error
}

// commitResultMsg reports the outcome of an asynchronous git commit.
type commitResultMsg struct {
	title string
	err   error
}

// publishResultMsg reports the outcome of an asynchronous publish.
type publishResultMsg struct {
	title string
	url   string
	err   error
}

// listenForReload blocks on the watcher's event channel and converts
// the next external change into a reloadMsg. Parsing happens here,
// off the UI goroutine. Update re-issues the command after each
// message, maintaining a continuous listen loop.
func listenForReload(watcher *Watcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-watcher.Events()
		if !ok {
			return nil
		}
		box, err := tissue.Parse(event.Data)
		return reloadMsg{box: box, err: err}
	}
}

// commitTissue stages everything and commits with the tissue title as
// the message, off the UI goroutine.
func commitTissue(ctx context.Context, committer Committer, title string) tea.Cmd {
	return func() tea.Msg {
		if err := committer.AddAll(ctx); err != nil {
			return commitResultMsg{title: title, err: err}
		}
		if err := committer.Commit(ctx, title); err != nil {
			return commitResultMsg{title: title, err: err}
		}
		return commitResultMsg{title: title}
	}
}

// publishTissue files the tissue with the external tracker, off the
// UI goroutine.
func publishTissue(ctx context.Context, publisher Publisher, t tissue.Tissue) tea.Cmd {
	return func() tea.Msg {
		url, err := publisher.Publish(ctx, t.Promotion())
		return publishResultMsg{title: t.Title, url: url, err: err}
	}
}

// Init starts the reload listener when a watcher is configured.
func (model Model) Init() tea.Cmd {
	if model.watcher == nil {
		return nil
	}
	return listenForReload(model.watcher)
}

// Update routes messages to the mode-specific handlers.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case reloadMsg:
		model.applyReload(message)
		if model.watcher == nil {
			return model, nil
		}
		return model, listenForReload(model.watcher)

	case commitResultMsg:
		model.busy = false
		if message.err != nil {
			model.statusError = fmt.Sprintf("commit failed: %v", message.err)
			return model, nil
		}
		model.removeToBin(message.title)
		model.saveBox()
		model.statusNotice = fmt.Sprintf("committed %q", message.title)
		return model, nil

	case publishResultMsg:
		model.busy = false
		if message.err != nil {
			model.statusError = fmt.Sprintf("publish failed: %v", message.err)
			return model, nil
		}
		model.removeToBin(message.title)
		model.saveBox()
		model.statusNotice = "published " + message.url
		return model, nil

	case clipboardFadeMsg:
		model.statusNotice = ""
		return model, nil
	}
	return model, nil
}

// applyReload swaps in an externally modified box. A parse failure
// keeps the current box; the next successful write will load.
func (model *Model) applyReload(message reloadMsg) {
	if message.err != nil {
		model.statusError = fmt.Sprintf("external edit not loaded: %v", message.err)
		return
	}
	model.box = message.box
	if model.starred != "" {
		if _, ok := model.box.Get(model.starred); !ok {
			model.starred = ""
		}
	}
	model.rebuildVisible()
	model.statusError = ""
	model.statusNotice = "reloaded external changes"
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	// Each keystroke starts a fresh status line; handlers and async
	// results repopulate it.
	model.statusError = ""
	model.statusNotice = ""

	switch model.mode {
	case ModeNormal:
		return model.handleNormalKey(message)
	case ModeHelp:
		return model.handleHelpKey(message)
	case ModeAdd, ModeDescribe, ModeTag, ModeEditTitle, ModeRemoveTag:
		return model.handleLineInput(message)
	case ModeFilter:
		return model.handleFilterKey(message)
	case ModeCopy:
		return model.handleCopyKey(message)
	case ModeCommit, ModePublish:
		return model.handleConfirmKey(message)
	case ModeRemove:
		return model.handleRemoveKey(message)
	case ModeRemoveDesc:
		return model.handleRemoveDescKey(message)
	case ModeRestore:
		return model.handleRestoreKey(message)
	case ModeAskExclude:
		return model.handleAskExcludeKey(message)
	}
	return model, nil
}

func (model Model) handleNormalKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.visible)-1 {
			model.cursor++
		}
		return model, nil

	case key.Matches(message, model.keys.Help):
		model.mode = ModeHelp
		return model, nil

	case key.Matches(message, model.keys.Add):
		model.mode = ModeAdd
		model.input = nil
		return model, nil

	case key.Matches(message, model.keys.Restore):
		if len(model.recycleBin) > 0 {
			model.mode = ModeRestore
			model.binCursor = 0
		}
		return model, nil

	case key.Matches(message, model.keys.Filter):
		model.mode = ModeFilter
		model.filter.Active = true
		return model, nil

	case key.Matches(message, model.keys.Cancel):
		// Esc in normal mode drops an applied filter.
		if model.filter.Input != "" {
			model.filter.Clear()
			model.rebuildVisible()
		}
		return model, nil
	}

	// Everything below operates on the selected tissue.
	if len(model.visible) == 0 {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Describe):
		model.mode = ModeDescribe
		model.target = model.selectedTitle()
		model.input = nil
	case key.Matches(message, model.keys.Tag):
		model.mode = ModeTag
		model.target = model.selectedTitle()
		model.input = nil
	case key.Matches(message, model.keys.EditTitle):
		model.mode = ModeEditTitle
		model.target = model.selectedTitle()
		model.input = nil
	case key.Matches(message, model.keys.Copy):
		model.mode = ModeCopy
		model.target = model.selectedTitle()
	case key.Matches(message, model.keys.Commit):
		model.mode = ModeCommit
		model.target = model.selectedTitle()
	case key.Matches(message, model.keys.Publish):
		model.mode = ModePublish
		model.target = model.selectedTitle()
	case key.Matches(message, model.keys.Remove):
		model.mode = ModeRemove
		model.target = model.selectedTitle()
	case key.Matches(message, model.keys.Star):
		model.toggleStar()
	}
	return model, nil
}

// handleHelpKey leaves the help screen on any character key.
func (model Model) handleHelpKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyEsc, tea.KeyEnter:
		model.mode = ModeNormal
	}
	return model, nil
}

func (model Model) handleLineInput(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.mode = ModeNormal
		model.input = nil
	case tea.KeyBackspace:
		if len(model.input) > 0 {
			model.input = model.input[:len(model.input)-1]
		}
	case tea.KeyEnter:
		return model.commitLineInput()
	case tea.KeySpace:
		model.input = append(model.input, ' ')
	case tea.KeyRunes:
		model.input = append(model.input, message.Runes...)
	}
	return model, nil
}

// commitLineInput applies the buffered line for the current input
// mode. A blank line cancels, mirroring Esc.
func (model Model) commitLineInput() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(string(model.input))
	mode := model.mode
	model.mode = ModeNormal
	model.input = nil
	if line == "" {
		return model, nil
	}

	var err error
	switch mode {
	case ModeAdd:
		err = model.box.Add(line, nil, nil)
	case ModeDescribe:
		err = model.box.Update(model.target, func(t *tissue.Tissue) {
			if desc, ok := t.Description(); ok {
				t.SetDesc(desc + "\n" + line)
			} else {
				t.SetDesc(line)
			}
		})
	case ModeTag:
		err = model.box.Update(model.target, func(t *tissue.Tissue) {
			t.Tag(line)
		})
	case ModeEditTitle:
		err = model.box.Rename(model.target, line)
		if err == nil && model.starred == model.target {
			model.starred = line
		}
	case ModeRemoveTag:
		err = model.box.Update(model.target, func(t *tissue.Tissue) {
			t.Untag(line)
		})
	}
	if err != nil {
		model.statusError = err.Error()
		return model, nil
	}
	model.rebuildVisible()
	model.saveBox()
	return model, nil
}

func (model Model) handleFilterKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.filter.Clear()
		model.mode = ModeNormal
		model.rebuildVisible()
	case tea.KeyEnter:
		// Keep the narrowed view, return keyboard to normal mode.
		model.filter.Active = false
		model.mode = ModeNormal
	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.cursor = 0
			model.rebuildVisible()
		}
	case tea.KeySpace:
		model.filter.HandleRune(' ')
		model.cursor = 0
		model.rebuildVisible()
	case tea.KeyRunes:
		for _, r := range message.Runes {
			model.filter.HandleRune(r)
		}
		model.cursor = 0
		model.rebuildVisible()
	}
	return model, nil
}

// handleCopyKey dispatches the copy selector: t for the title, d for
// the description, l for the whole numbered list. Anything else
// returns to normal mode.
func (model Model) handleCopyKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		model.mode = ModeNormal
		return model, nil
	}
	if message.Type != tea.KeyRunes || len(message.Runes) == 0 {
		return model, nil
	}
	model.mode = ModeNormal

	selected, ok := model.box.Get(model.target)
	if !ok {
		model.statusError = fmt.Sprintf("no tissue titled %q", model.target)
		return model, nil
	}

	var text string
	switch message.Runes[0] {
	case 't':
		text = selected.Title
	case 'd':
		text, _ = selected.Description()
	case 'l':
		text = tissue.FormatList(model.allTissues())
	default:
		return model, nil
	}
	if text == "" {
		return model, nil
	}
	model.statusNotice = "copied to clipboard"
	return model, copyToClipboard(text)
}

// handleConfirmKey runs the pending commit or publish on y, cancels
// on n. The action itself runs asynchronously; its result message
// removes the tissue and saves.
func (model Model) handleConfirmKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		model.mode = ModeNormal
		return model, nil
	}
	if message.Type != tea.KeyRunes || len(message.Runes) == 0 {
		return model, nil
	}

	switch message.Runes[0] {
	case 'y', 'Y':
		if model.busy {
			return model, nil
		}
		mode := model.mode
		model.mode = ModeNormal
		title := model.target

		if mode == ModeCommit {
			if model.committer == nil {
				model.statusError = "commit unavailable: not inside a git work tree"
				return model, nil
			}
			model.busy = true
			model.statusNotice = fmt.Sprintf("committing %q", title)
			return model, commitTissue(model.ctx, model.committer, title)
		}

		if model.publisher == nil {
			model.statusError = "publish unavailable: configure github owner and repo"
			return model, nil
		}
		selected, ok := model.box.Get(title)
		if !ok {
			model.statusError = fmt.Sprintf("no tissue titled %q", title)
			return model, nil
		}
		model.busy = true
		model.statusNotice = fmt.Sprintf("publishing %q", title)
		return model, publishTissue(model.ctx, model.publisher, selected)

	case 'n', 'N':
		model.mode = ModeNormal
	}
	return model, nil
}

// handleRemoveKey dispatches the remove selector: T for the whole
// tissue, d for one description line, t for a tag.
func (model Model) handleRemoveKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		model.mode = ModeNormal
		return model, nil
	}
	if message.Type != tea.KeyRunes || len(message.Runes) == 0 {
		return model, nil
	}

	switch message.Runes[0] {
	case 'T':
		model.mode = ModeNormal
		model.removeToBin(model.target)
		model.saveBox()
	case 'd':
		if selected, ok := model.box.Get(model.target); ok {
			if _, hasDesc := selected.Description(); hasDesc {
				model.mode = ModeRemoveDesc
				model.descCursor = 0
				return model, nil
			}
		}
		model.mode = ModeNormal
	case 't':
		model.mode = ModeRemoveTag
		model.input = nil
	default:
		model.mode = ModeNormal
	}
	return model, nil
}

func (model Model) handleRemoveDescKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, ok := model.box.Get(model.target)
	if !ok {
		model.mode = ModeNormal
		return model, nil
	}
	desc, _ := selected.Description()
	lines := strings.Split(desc, "\n")

	switch {
	case message.Type == tea.KeyEsc:
		model.mode = ModeNormal
	case key.Matches(message, model.keys.Up):
		if model.descCursor > 0 {
			model.descCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.descCursor < len(lines)-1 {
			model.descCursor++
		}
	case key.Matches(message, model.keys.Confirm):
		model.mode = ModeNormal
		index := model.descCursor
		if index >= len(lines) {
			return model, nil
		}
		err := model.box.Update(model.target, func(t *tissue.Tissue) {
			remaining := slices.Delete(slices.Clone(lines), index, index+1)
			if len(remaining) == 0 {
				t.ClearDesc()
			} else {
				t.SetDesc(strings.Join(remaining, "\n"))
			}
		})
		if err != nil {
			model.statusError = err.Error()
			return model, nil
		}
		model.rebuildVisible()
		model.saveBox()
	}
	return model, nil
}

func (model Model) handleRestoreKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEsc:
		model.mode = ModeNormal
	case key.Matches(message, model.keys.Up):
		if model.binCursor > 0 {
			model.binCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.binCursor < len(model.recycleBin)-1 {
			model.binCursor++
		}
	case key.Matches(message, model.keys.Confirm):
		model.mode = ModeNormal
		if model.binCursor >= len(model.recycleBin) {
			return model, nil
		}
		restored := model.recycleBin[model.binCursor]
		if err := model.box.Insert(restored); err != nil {
			// Usually a title collision with a tissue added after the
			// removal. The entry stays in the bin.
			model.statusError = err.Error()
			return model, nil
		}
		model.recycleBin = slices.Delete(model.recycleBin, model.binCursor, model.binCursor+1)
		model.rebuildVisible()
		model.saveBox()
	}
	return model, nil
}

func (model Model) handleAskExcludeKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		model.mode = ModeNormal
		return model, nil
	}
	if message.Type != tea.KeyRunes || len(message.Runes) == 0 {
		return model, nil
	}
	switch message.Runes[0] {
	case 'y', 'Y':
		model.mode = ModeNormal
		if err := model.excludeFromGit(); err != nil {
			model.statusError = fmt.Sprintf("exclude failed: %v", err)
		} else {
			model.statusNotice = "tissuebox added to .git/info/exclude"
		}
	case 'n', 'N':
		model.mode = ModeNormal
	}
	return model, nil
}

// toggleStar implements the three-way star key: star the selection,
// unstar it, or jump to the starred tissue from elsewhere.
func (model *Model) toggleStar() {
	selected := model.selectedTitle()
	switch model.starred {
	case "":
		model.starred = selected
	case selected:
		model.starred = ""
	default:
		// Jump to the starred tissue rather than moving the star.
		for i, result := range model.visible {
			if result.Tissue.Title == model.starred {
				model.cursor = i
				return
			}
		}
		// Starred tissue is filtered out of view; nothing to jump to.
	}
}

func (model *Model) selectedTitle() string {
	return model.visible[model.cursor].Tissue.Title
}

func (model *Model) allTissues() []tissue.Tissue {
	var all []tissue.Tissue
	for t := range model.box.List(tissue.Filter{}) {
		all = append(all, t)
	}
	return all
}

// rebuildVisible recomputes the rendered list from the box and the
// current filter, clamping the cursor into range.
func (model *Model) rebuildVisible() {
	model.visible = model.filter.ApplyFuzzy(model.allTissues())
	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// removeToBin moves a tissue out of the box into the session recycle
// bin. The caller saves.
func (model *Model) removeToBin(title string) {
	removed, err := model.box.Remove(title)
	if err != nil {
		model.statusError = err.Error()
		return
	}
	if model.starred == title {
		model.starred = ""
	}
	model.recycleBin = append(model.recycleBin, removed)
	model.rebuildVisible()
}

// saveBox rewrites the tissuebox file. The serialized content is
// announced to the watcher first, so the inotify event from our own
// write cannot race ahead of the suppression hash. Serialization is
// deterministic, so the announced hash matches the written bytes.
func (model *Model) saveBox() {
	if model.watcher != nil {
		model.watcher.NoteWrite(blake3.Sum256(tissue.Serialize(model.box)))
	}
	if err := tissuefile.Save(model.path, model.box); err != nil {
		model.statusError = fmt.Sprintf("save failed: %v", err)
	}
}
