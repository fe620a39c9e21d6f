package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/tui/layout"
)

// renderView creates the complete start page view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeFind:
		return a.renderFinder()
	}
	if a.mode.IsModal() {
		return a.renderModal()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			"",
			a.renderGrid(),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader shows the app name, the mode and the keys typed so far.
func (a App) renderHeader() string {
	header := a.styles.Title.Render("mylinks")
	if a.mode == ModeEdit {
		header += " " + a.styles.HintLabel.Render("[edit]")
	}
	if a.chord.Pending() {
		header += "  " + a.styles.Pending.Render(a.chord.Pattern+" _")
	}
	return header
}

// renderGrid renders the document's columns side by side.
func (a App) renderGrid() string {
	doc := a.holder.Document()
	if doc == nil || len(doc.Widgets()) == 0 {
		return a.styles.Empty.Render("No links yet. Import bookmarks with: ml import <bookmarks.html>")
	}

	cfg := a.layoutConfig.Grid
	columnWidth := layout.CalculateColumnWidth(a.width, len(doc.Columns), cfg)
	height := layout.CalculateGridHeight(a.height, cfg)

	selected, hasSelection := a.currentItem()
	hasSelection = hasSelection && a.mode == ModeEdit

	columns := make([]string, 0, len(doc.Columns)*2)
	for c := range doc.Columns {
		if c > 0 {
			columns = append(columns, strings.Repeat(" ", cfg.ColumnGap))
		}

		var lines []string
		selectedLine := 0
		for w := range doc.Columns[c] {
			widget := &doc.Columns[c][w]
			if hasSelection && selected.Widget == widget {
				// border + title line
				selectedLine = len(lines) + 2 + selected.Index
			}
			lines = append(lines, strings.Split(a.renderWidget(widget, columnWidth, selected, hasSelection), "\n")...)
		}

		offset := layout.CalculateViewportOffset(selectedLine, len(lines), height)
		end := min(offset+height, len(lines))
		column := lipgloss.NewStyle().Width(columnWidth).Render(strings.Join(lines[offset:end], "\n"))
		columns = append(columns, column)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderWidget renders a widget box with its title and links.
func (a App) renderWidget(w *model.Widget, width int, selected Item, hasSelection bool) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Grid)
	textCfg := a.layoutConfig.Text

	lines := []string{a.styles.WidgetTitle.Render(layout.Truncate(w.Title, itemWidth, textCfg))}
	if len(w.List) == 0 {
		lines = append(lines, a.styles.Empty.Render("(empty)"))
	}
	for i := range w.List {
		isCursor := hasSelection && selected.Widget == w && selected.Index == i
		lines = append(lines, a.renderLink(&w.List[i], isCursor, itemWidth))
	}

	// Width excludes the border
	return a.styles.Widget.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderLink renders one link line: the label, and the shortcut hint pushed to
// the right edge.
func (a App) renderLink(l *model.Link, isCursor bool, maxWidth int) string {
	hint := ""
	if a.showHints && len(l.Shortcuts) > 0 {
		hint = l.Shortcuts[0]
	}

	labelWidth := maxWidth
	if hint != "" {
		labelWidth = maxWidth - layout.VisibleLength(hint) - 1
	}
	label := layout.Truncate(l.Label, labelWidth, a.layoutConfig.Text)

	style := a.styles.Link
	switch {
	case isCursor:
		style = a.styles.LinkSelected
	case a.continuesChord(l):
		style = a.styles.LinkPending
	}

	if hint == "" {
		return style.Render(label)
	}
	gap := max(maxWidth-layout.VisibleLength(label)-layout.VisibleLength(hint), 1)
	return style.Render(label) + strings.Repeat(" ", gap) + a.styles.Shortcut.Render(hint)
}

// continuesChord reports whether one of the link's combinations starts with the
// keys typed so far.
func (a App) continuesChord(l *model.Link) bool {
	if !a.chord.Pending() {
		return false
	}
	for _, combo := range l.Shortcuts {
		if keycombo.StartsWith(a.chord.Pattern, combo) {
			return true
		}
	}
	return false
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderFinder renders the link finder as a box at the top of the screen.
func (a App) renderFinder() string {
	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	box := a.styles.Modal.Width(width - 2).Render(a.finder.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().PaddingTop(1).Render(box))
}

// renderModal renders the add and edit forms as a box at the top of the screen.
func (a App) renderModal() string {
	var content strings.Builder

	switch a.mode {
	case ModeAddLink, ModeEditLink:
		title := "Add Link"
		if a.mode == ModeEditLink {
			title = "Edit Link"
		}
		if w := a.holder.FindWidgetByID(a.modal.WidgetID); w != nil {
			title += " in " + w.Title
		}
		content.WriteString(a.styles.Title.Render(title) + "\n\n")
		for i, name := range []string{"Label:", "URL:", "Favicon:", "Shortcuts (comma-separated):"} {
			if i > 0 {
				content.WriteString("\n\n")
			}
			content.WriteString(name + "\n")
			content.WriteString(a.modal.Inputs[i].View())
		}

	case ModeRenameWidget:
		content.WriteString(a.styles.Title.Render("Rename Widget") + "\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.modal.Inputs[0].View())

	case ModeAddWidget:
		content.WriteString(a.styles.Title.Render("Add Widget") + "\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.modal.Inputs[0].View())
	}

	content.WriteString("\n\n")
	if a.messageText != "" {
		content.WriteString(a.renderMessageLine() + "\n")
	}
	content.WriteString(a.renderHints(a.getContextualHints()))

	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	box := a.styles.Modal.Width(width - 2).Render(content.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().PaddingTop(1).Render(box))
}

// renderHelpOverlay lists the configured shortcuts and the edit keys.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("shortcuts") + "\n")
	if reg := a.holder.Registry(); reg != nil {
		for _, s := range reg.All() {
			left.WriteString(padKey(s.Combination) + actionLabel(s.Action) + "\n")
		}
	}
	left.WriteString(padKey("ctrl+c") + "quit\n")

	if doc := a.holder.Document(); doc != nil && doc.MultiOpen != nil && len(doc.MultiOpen.Shortcuts) > 0 {
		left.WriteString("\n")
		left.WriteString(a.styles.Title.Render("multi-open") + "\n")
		for _, e := range doc.MultiOpen.Shortcuts {
			left.WriteString(padKey(e.Shortcut) + pluralLinks(len(e.LinkIDs)) + "\n")
		}
	}

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("j/k  move\n")
	right.WriteString("h/l  widget\n")
	right.WriteString("gg   top\n")
	right.WriteString("G    bottom\n")
	right.WriteString("J/K  reorder\n")
	right.WriteString("a    add link\n")
	right.WriteString("e    edit link\n")
	right.WriteString("r    rename widget\n")
	right.WriteString("A    add widget\n")
	right.WriteString("d    delete\n")
	right.WriteString("Y    yank url\n")
	right.WriteString("o    open\n")
	right.WriteString("Esc  done\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close"))

	colWidth := a.layoutConfig.Modal.HelpColumnWidth
	leftCol := lipgloss.NewStyle().Width(colWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(colWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

func padKey(k string) string {
	const width = 10
	if n := layout.VisibleLength(k); n < width {
		return k + strings.Repeat(" ", width-n)
	}
	return k + " "
}

func pluralLinks(n int) string {
	if n == 1 {
		return "1 link"
	}
	return strconv.Itoa(n) + " links"
}
