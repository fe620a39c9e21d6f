// Package tui is the terminal start page: widgets of links laid out in
// columns, opened by typing their shortcuts.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mylinks/internal/browser"
	"github.com/nikbrunner/mylinks/internal/config"
	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/picker"
	"github.com/nikbrunner/mylinks/internal/search"
	"github.com/nikbrunner/mylinks/internal/shortcut"
	"github.com/nikbrunner/mylinks/internal/storage"
	"github.com/nikbrunner/mylinks/internal/tui/layout"
)

// App is the main bubbletea model of the start page.
type App struct {
	holder    *mylinks.Holder
	searcher  *search.Searcher
	storage   storage.Storage
	opener    browser.Opener
	clipboard func(string) error
	logger    *slog.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode         Mode
	prevMode     Mode // mode to return to when help closes
	chord        ChordState
	chordTimeout time.Duration
	debounce     time.Duration
	showHints    bool

	// Edit mode
	items       []Item
	cursor      int
	lastKeyWasG bool
	dirty       bool

	finder picker.Picker
	modal  ModalState

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Holder *mylinks.Holder
	// Storage is used by the reload action. Reload is unavailable when nil.
	Storage      storage.Storage
	SearchMode   search.Mode
	Debounce     time.Duration
	ChordTimeout time.Duration        // optional, DefaultChordTimeout if zero
	Opener       browser.Opener       // optional, browser.Open if nil
	Clipboard    func(string) error   // optional, system clipboard if nil
	Logger       *slog.Logger         // optional, discards if nil
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	opener := params.Opener
	if opener == nil {
		opener = browser.Open
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chordTimeout := params.ChordTimeout
	if chordTimeout <= 0 {
		chordTimeout = DefaultChordTimeout
	}

	app := App{
		holder:       params.Holder,
		searcher:     search.NewSearcher(params.SearchMode),
		storage:      params.Storage,
		opener:       opener,
		clipboard:    copyFn,
		logger:       logger,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		mode:         ModeNormal,
		chordTimeout: chordTimeout,
		debounce:     params.Debounce,
		showHints:    true,
		width:        80,
		height:       24,
	}

	app.refreshItems()
	return app
}

// refreshItems rebuilds the edit mode items from the current document.
func (a *App) refreshItems() {
	a.items = collectItems(a.holder.Document())
	if a.cursor >= len(a.items) {
		a.cursor = max(len(a.items)-1, 0)
	}
}

// WithDimensions returns a copy of the app sized for a fixed terminal.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Holder returns the document holder.
func (a App) Holder() *mylinks.Holder {
	return a.holder
}

// Mode returns the current mode.
func (a App) Mode() Mode {
	return a.mode
}

// Pending returns the keys typed so far towards a multi-key shortcut.
func (a App) Pending() string {
	return a.chord.Pattern
}

// Cursor returns the edit mode cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the links in edit mode order.
func (a App) Items() []Item {
	return a.items
}

// ShowHints reports whether shortcut hints are drawn next to links.
func (a App) ShowHints() bool {
	return a.showHints
}

// Dirty reports whether the document was edited and should be saved.
func (a App) Dirty() bool {
	return a.dirty
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.mode == ModeFind {
			return a.updateFinder(a.finderSize())
		}
		return a, nil

	case ReloadMsg:
		a.handleReload(msg)
		return a, nil

	case chordTimeoutMsg:
		if msg.seq != a.chord.Seq || !a.chord.Pending() {
			return a, nil
		}
		return a.flushChord()

	case openedMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Open failed: "+msg.err.Error())
		} else if msg.count > 1 {
			a.setMessage(MessageSuccess, fmt.Sprintf("Opened %d links", msg.count))
		}
		return a, nil

	case yankedMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Yank failed: "+msg.err.Error())
		} else {
			a.setMessage(MessageSuccess, "Yanked "+msg.url)
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			if a.mode == ModeFind {
				a.finder.Stop()
			}
			return a, tea.Quit
		}

		switch a.mode {
		case ModeEdit:
			return a.handleEditKey(msg)
		case ModeAddLink, ModeEditLink, ModeRenameWidget, ModeAddWidget:
			return a.handleModalKey(msg)
		case ModeFind:
			return a.updateFinder(msg)
		case ModeHelp:
			return a.handleHelpKey(msg)
		default:
			return a.handleNormalKey(msg)
		}
	}

	// Cursor blinks and debounced queries belong to the finder.
	if a.mode == ModeFind {
		return a.updateFinder(msg)
	}
	if a.mode.IsModal() {
		return a.updateFocusedInput(msg)
	}
	return a, nil
}

// handleNormalKey adds the key to the pending keys and resolves them. A unique
// exact match runs at once, a prefix of longer shortcuts waits for more keys,
// and anything else starts over.
func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	if a.chord.Pending() && key.Matches(msg, a.keys.CancelChord) {
		a.chord.Reset()
		return a, nil
	}

	token, ok := keycombo.Normalize(msg.String())
	if !ok {
		a.chord.Reset()
		return a, nil
	}

	pattern := keycombo.Join(a.chord.Pattern, token)
	matches := a.holder.Resolve(pattern)
	switch {
	case len(matches) == 0:
		a.logger.Debug("no shortcut", "pattern", pattern)
		a.chord.Reset()
		return a, nil

	case len(matches) == 1 && keycombo.Compare(matches[0].Keys(), pattern):
		a.chord.Reset()
		return a.execute(matches[0])
	}

	a.chord.Pattern = pattern
	a.chord.Seq++
	seq := a.chord.Seq
	return a, tea.Tick(a.chordTimeout, func(time.Time) tea.Msg {
		return chordTimeoutMsg{seq: seq}
	})
}

// flushChord runs the shortcut that exactly matches the pending keys once the
// user stops typing, if there is one.
func (a App) flushChord() (tea.Model, tea.Cmd) {
	pattern := a.chord.Pattern
	a.chord.Reset()

	for _, s := range a.holder.Resolve(pattern) {
		if keycombo.Compare(s.Keys(), pattern) {
			return a.execute(s)
		}
	}
	return a, nil
}

// execute runs a resolved shortcut.
func (a App) execute(s shortcut.Shortcut) (tea.Model, tea.Cmd) {
	a.logger.Debug("shortcut", "keys", s.Keys(), "kind", s.Kind())

	if sys, ok := s.(shortcut.System); ok {
		return a.runAction(sys.Action)
	}
	urls := shortcut.URLs(s)
	if len(urls) == 0 {
		a.setMessage(MessageWarning, "Nothing to open for "+s.Keys())
		return a, nil
	}
	return a, a.openCmd(urls)
}

// runAction performs a system action.
func (a App) runAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionFind:
		return a.openFinder()

	case config.ActionEdit:
		a.mode = ModeEdit
		a.lastKeyWasG = false
		a.refreshItems()
		return a, nil

	case config.ActionToggleHints:
		a.showHints = !a.showHints
		return a, nil

	case config.ActionReload:
		if a.storage == nil {
			a.setMessage(MessageWarning, "Reload is not available")
			return a, nil
		}
		return a, a.reloadCmd()

	case config.ActionHelp:
		a.prevMode = a.mode
		a.mode = ModeHelp
		return a, nil

	case config.ActionQuit:
		return a, tea.Quit

	default:
		a.setMessage(MessageWarning, "Unknown action: "+action)
		return a, nil
	}
}

func (a App) openCmd(urls []string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		return openedMsg{count: len(urls), err: opener(urls)}
	}
}

func (a App) yankCmd(url string) tea.Cmd {
	copyFn := a.clipboard
	return func() tea.Msg {
		return yankedMsg{url: url, err: copyFn(url)}
	}
}

func (a App) reloadCmd() tea.Cmd {
	st := a.storage
	return func() tea.Msg {
		doc, err := st.Load()
		return ReloadMsg{Doc: doc, Err: err}
	}
}

// handleReload swaps in a reloaded document unless local edits would be lost.
func (a *App) handleReload(msg ReloadMsg) {
	if msg.Err != nil {
		a.setMessage(MessageError, "Reload failed: "+msg.Err.Error())
		return
	}
	if a.dirty {
		a.setMessage(MessageWarning, "Links changed on disk; keeping unsaved edits")
		return
	}

	a.holder.Replace(msg.Doc)
	a.chord.Reset()
	a.refreshItems()

	if err := a.holder.Check(); err != nil {
		a.logger.Warn("reloaded document has problems", "error", err)
		a.setMessage(MessageWarning, "Reloaded; run ml check, the links have problems")
		return
	}
	a.setMessage(MessageInfo, "Reloaded")
}

// handleHelpKey closes the help overlay.
func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Leave) {
		a.mode = a.prevMode
	}
	return a, nil
}

// handleEditKey moves the cursor over links and edits the document.
func (a App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Leave):
		a.mode = ModeNormal

	case key.Matches(msg, a.keys.Help):
		a.prevMode = a.mode
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.Right):
		a.jumpWidget(1)

	case key.Matches(msg, a.keys.Left):
		a.jumpWidget(-1)

	case key.Matches(msg, a.keys.MoveDown):
		a.moveLink(1)

	case key.Matches(msg, a.keys.MoveUp):
		a.moveLink(-1)

	case key.Matches(msg, a.keys.Delete):
		a.deleteLink()

	case key.Matches(msg, a.keys.AddLink):
		return a.openAddLink()

	case key.Matches(msg, a.keys.EditLink):
		return a.openEditLink()

	case key.Matches(msg, a.keys.RenameWidget):
		return a.openRenameWidget()

	case key.Matches(msg, a.keys.AddWidget):
		return a.openAddWidget()

	case key.Matches(msg, a.keys.YankURL):
		if item, ok := a.currentItem(); ok {
			return a, a.yankCmd(item.Link().URL)
		}

	case key.Matches(msg, a.keys.Open):
		if item, ok := a.currentItem(); ok {
			return a, a.openCmd([]string{item.Link().URL})
		}
	}

	return a, nil
}

func (a App) currentItem() (Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return Item{}, false
	}
	return a.items[a.cursor], true
}

// jumpWidget moves the cursor to the first link of the next or previous widget.
func (a *App) jumpWidget(dir int) {
	current, ok := a.currentItem()
	if !ok {
		return
	}

	if dir > 0 {
		for i := a.cursor + 1; i < len(a.items); i++ {
			if a.items[i].Widget != current.Widget {
				a.cursor = i
				return
			}
		}
		return
	}

	// Find the start of the previous widget
	i := a.cursor - current.Index - 1
	if i < 0 {
		return
	}
	a.cursor = i - a.items[i].Index
}

// moveLink swaps the selected link with its neighbour inside the widget.
func (a *App) moveLink(dir int) {
	item, ok := a.currentItem()
	if !ok {
		return
	}
	id := item.ID()
	widgetID := item.Widget.ID
	to := item.Index + dir
	if to < 0 || to >= len(item.Widget.List) {
		return
	}

	err := a.holder.Edit(func(doc *model.Document) error {
		return doc.MoveLink(widgetID, item.Index, to)
	})
	if err != nil {
		a.setMessage(MessageError, "Move failed: "+err.Error())
		return
	}
	a.dirty = true
	a.refreshItems()
	a.selectLink(id, item.Widget)
}

// selectLink puts the cursor on the link with id inside widget w.
func (a *App) selectLink(id string, w *model.Widget) {
	for i, it := range a.items {
		if it.Widget == w && it.ID() == id {
			a.cursor = i
			return
		}
	}
}

func (a *App) deleteLink() {
	item, ok := a.currentItem()
	if !ok {
		return
	}
	link := item.Link()
	id, label := link.ID, link.Label

	err := a.holder.Edit(func(doc *model.Document) error {
		if !doc.DeleteLink(id) {
			return model.ErrLinkNotFound
		}
		return nil
	})
	if err != nil {
		a.setMessage(MessageError, "Delete failed: "+err.Error())
		return
	}
	a.dirty = true
	a.refreshItems()
	a.setMessage(MessageSuccess, "Deleted "+label)
}

// openFinder shows the link finder over the grid.
func (a App) openFinder() (tea.Model, tea.Cmd) {
	a.finder = picker.New(a.holder, a.searcher, "", picker.Options{Debounce: a.debounce})
	a.mode = ModeFind

	m, sizeCmd := a.updateFinder(a.finderSize())
	a = m.(App)
	return a, tea.Batch(a.finder.Init(), sizeCmd)
}

func (a App) finderSize() tea.WindowSizeMsg {
	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	return tea.WindowSizeMsg{Width: width - 4, Height: a.height - 6}
}

// updateFinder forwards msg to the finder and leaves find mode once it is done.
func (a App) updateFinder(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.finder.Update(msg)
	a.finder = m.(picker.Picker)

	if !a.finder.Done() {
		return a, cmd
	}

	a.mode = ModeNormal
	if l := a.finder.Selected(); l != nil {
		return a, a.openCmd([]string{l.URL})
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
