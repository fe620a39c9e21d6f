package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/mylinks/internal/model"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeNormal Mode = iota // keys feed the shortcut resolver
	ModeEdit               // keys move a cursor over links
	ModeFind               // keys go to the finder
	ModeHelp
	ModeAddLink
	ModeEditLink
	ModeRenameWidget
	ModeAddWidget
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeFind:
		return "find"
	case ModeHelp:
		return "help"
	case ModeAddLink:
		return "add link"
	case ModeEditLink:
		return "edit link"
	case ModeRenameWidget:
		return "rename widget"
	case ModeAddWidget:
		return "add widget"
	default:
		return "normal"
	}
}

// IsModal reports whether the mode shows a form over the grid.
func (m Mode) IsModal() bool {
	switch m {
	case ModeAddLink, ModeEditLink, ModeRenameWidget, ModeAddWidget:
		return true
	}
	return false
}

// Link form fields, in tab order.
const (
	fieldLabel = iota
	fieldURL
	fieldFavicon
	fieldShortcuts
)

// ModalState holds the inputs of the link and widget forms.
type ModalState struct {
	Inputs   []textinput.Model
	Focus    int
	LinkID   string // link being edited
	WidgetID string // widget receiving a new link, or being renamed
	Column   int    // column receiving a new widget
}

// newLinkModal creates the form for adding or editing a link.
func newLinkModal(l model.Link) ModalState {
	label := newInput("Label", 200)
	label.SetValue(l.Label)
	url := newInput("https://", 2000)
	url.SetValue(l.URL)
	favicon := newInput("Favicon URL (optional)", 2000)
	favicon.SetValue(l.Favicon)
	shortcuts := newInput("g h, ctrl+g", 200)
	shortcuts.SetValue(strings.Join(l.Shortcuts, ", "))

	m := ModalState{Inputs: []textinput.Model{label, url, favicon, shortcuts}, LinkID: l.ID}
	m.setFocus(fieldLabel)
	return m
}

// newTitleModal creates the form for naming a widget.
func newTitleModal(title string) ModalState {
	input := newInput("Title", 200)
	input.SetValue(title)

	m := ModalState{Inputs: []textinput.Model{input}}
	m.setFocus(0)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 50
	return input
}

// setFocus focuses input i, wrapping around at both ends.
func (m *ModalState) setFocus(i int) {
	n := len(m.Inputs)
	if n == 0 {
		return
	}
	i = (i%n + n) % n
	for j := range m.Inputs {
		if j == i {
			m.Inputs[j].Focus()
		} else {
			m.Inputs[j].Blur()
		}
	}
	m.Focus = i
}

// Value returns the trimmed text of input i.
func (m ModalState) Value(i int) string {
	if i < 0 || i >= len(m.Inputs) {
		return ""
	}
	return strings.TrimSpace(m.Inputs[i].Value())
}

// splitShortcuts turns "g h, ctrl+g" into its combinations. Blank entries are
// dropped.
func splitShortcuts(s string) []string {
	combos := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			combos = append(combos, part)
		}
	}
	return combos
}

// MessageType styles the status line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// DefaultChordTimeout is how long a partial key sequence waits for the next key.
const DefaultChordTimeout = time.Second

// ChordState holds the keys typed so far towards a multi-key shortcut.
type ChordState struct {
	Pattern string // canonical keys typed so far, "" when idle
	Seq     int    // bumped on every key so stale timeouts can be told apart
}

// Reset clears the pending keys.
func (c *ChordState) Reset() {
	c.Pattern = ""
	c.Seq++
}

// Pending returns true while a multi-key shortcut is being typed.
func (c *ChordState) Pending() bool {
	return c.Pattern != ""
}

// ReloadMsg delivers a freshly loaded document, from the file watcher or the
// reload action.
type ReloadMsg struct {
	Doc *model.Document
	Err error
}

type chordTimeoutMsg struct {
	seq int
}

type openedMsg struct {
	count int
	err   error
}

type yankedMsg struct {
	url string
	err error
}
