package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nikbrunner/mylinks/internal/model"
)

var errNoWidget = errors.New("no widget to add to; press A to create one")

// targetWidget returns the widget of the selected link, or the first widget
// when there are no links.
func (a App) targetWidget() (*model.Widget, int) {
	if item, ok := a.currentItem(); ok {
		return item.Widget, item.Column
	}
	doc := a.holder.Document()
	if doc == nil {
		return nil, 0
	}
	for c := range doc.Columns {
		if len(doc.Columns[c]) > 0 {
			return &doc.Columns[c][0], c
		}
	}
	return nil, 0
}

// openModal switches to a form mode.
func (a App) openModal(mode Mode, m ModalState) (tea.Model, tea.Cmd) {
	a.modal = m
	a.mode = mode
	return a, textinput.Blink
}

func (a App) openAddLink() (tea.Model, tea.Cmd) {
	w, _ := a.targetWidget()
	if w == nil {
		a.setMessage(MessageWarning, errNoWidget.Error())
		return a, nil
	}
	m := newLinkModal(model.Link{})
	m.WidgetID = w.ID
	return a.openModal(ModeAddLink, m)
}

func (a App) openEditLink() (tea.Model, tea.Cmd) {
	item, ok := a.currentItem()
	if !ok {
		return a, nil
	}
	m := newLinkModal(*item.Link())
	m.WidgetID = item.Widget.ID
	return a.openModal(ModeEditLink, m)
}

func (a App) openRenameWidget() (tea.Model, tea.Cmd) {
	w, _ := a.targetWidget()
	if w == nil {
		a.setMessage(MessageWarning, "No widget to rename")
		return a, nil
	}
	m := newTitleModal(w.Title)
	m.WidgetID = w.ID
	return a.openModal(ModeRenameWidget, m)
}

func (a App) openAddWidget() (tea.Model, tea.Cmd) {
	_, column := a.targetWidget()
	m := newTitleModal("")
	m.Column = column
	return a.openModal(ModeAddWidget, m)
}

// closeModal drops the form and returns to edit mode.
func (a *App) closeModal() {
	a.modal = ModalState{}
	a.mode = ModeEdit
}

// handleModalKey moves between fields, saves or cancels the form. Other keys
// go to the focused input.
func (a App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.closeModal()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.submitModal()

	case key.Matches(msg, a.keys.NextField):
		a.modal.setFocus(a.modal.Focus + 1)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.modal.setFocus(a.modal.Focus - 1)
		return a, nil
	}
	return a.updateFocusedInput(msg)
}

func (a App) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.modal.Focus >= len(a.modal.Inputs) {
		return a, nil
	}
	var cmd tea.Cmd
	a.modal.Inputs[a.modal.Focus], cmd = a.modal.Inputs[a.modal.Focus].Update(msg)
	return a, cmd
}

// submitModal applies the form to the document. On error the form stays open.
func (a App) submitModal() (tea.Model, tea.Cmd) {
	mode := a.mode
	var (
		done string
		err  error
	)
	switch mode {
	case ModeAddLink:
		done, err = a.submitAddLink()
	case ModeEditLink:
		done, err = a.submitEditLink()
	case ModeRenameWidget:
		done, err = a.submitRenameWidget()
	case ModeAddWidget:
		var w *model.Widget
		w, err = a.submitAddWidget()
		if err == nil {
			a.dirty = true
			a.refreshItems()
			// A new widget has no links to select, so go straight to adding one.
			m := newLinkModal(model.Link{})
			m.WidgetID = w.ID
			a.setMessage(MessageSuccess, "Added widget "+w.Title)
			return a.openModal(ModeAddLink, m)
		}
	}
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return a, nil
	}

	a.dirty = true
	a.closeModal()
	a.refreshItems()
	a.setMessage(MessageSuccess, done)
	return a, nil
}

// linkFromModal reads the link fields. A blank label falls back to the URL.
func (a App) linkFromModal() (model.Link, error) {
	l := model.Link{
		Label:     a.modal.Value(fieldLabel),
		URL:       a.modal.Value(fieldURL),
		Favicon:   a.modal.Value(fieldFavicon),
		Shortcuts: model.Combinations(splitShortcuts(a.modal.Value(fieldShortcuts))),
	}
	if err := validation.Validate(l.URL, validation.Required.Error("URL is required")); err != nil {
		return model.Link{}, err
	}
	if l.Label == "" {
		l.Label = l.URL
	}
	return l, nil
}

func (a *App) submitAddLink() (string, error) {
	l, err := a.linkFromModal()
	if err != nil {
		return "", err
	}
	if len(l.Shortcuts) == 0 {
		l.Shortcuts = nil
	}

	widgetID := a.modal.WidgetID
	var id string
	err = a.holder.Edit(func(doc *model.Document) error {
		added, err := doc.AddLink(widgetID, l)
		if err != nil {
			return err
		}
		id = added.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	a.refreshItems()
	if w := a.holder.FindWidgetByID(widgetID); w != nil {
		a.selectLink(id, w)
	}
	return "Added " + l.Label, nil
}

func (a *App) submitEditLink() (string, error) {
	l, err := a.linkFromModal()
	if err != nil {
		return "", err
	}

	id := a.modal.LinkID
	edit := model.LinkEdit{
		Label:     &l.Label,
		URL:       &l.URL,
		Favicon:   &l.Favicon,
		Shortcuts: []string(l.Shortcuts),
	}
	var changed bool
	err = a.holder.Edit(func(doc *model.Document) error {
		changed, err = doc.UpdateLink(id, edit)
		return err
	})
	if err != nil {
		return "", err
	}
	if !changed {
		return "No changes", nil
	}
	return "Updated " + l.Label, nil
}

func (a *App) submitRenameWidget() (string, error) {
	title := a.modal.Value(0)
	if err := validation.Validate(title, validation.Required.Error("title is required")); err != nil {
		return "", err
	}
	widgetID := a.modal.WidgetID
	err := a.holder.Edit(func(doc *model.Document) error {
		return doc.RenameWidget(widgetID, title)
	})
	if err != nil {
		return "", err
	}
	return "Renamed widget to " + title, nil
}

func (a *App) submitAddWidget() (*model.Widget, error) {
	title := a.modal.Value(0)
	if err := validation.Validate(title, validation.Required.Error("title is required")); err != nil {
		return nil, err
	}
	column := a.modal.Column
	var added model.Widget
	err := a.holder.Edit(func(doc *model.Document) error {
		w, err := doc.AddWidget(column, title)
		if err != nil {
			return err
		}
		added = *w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}
