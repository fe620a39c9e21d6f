// Package picker is a small interactive link finder: a query line on top and
// the matching links below it.
package picker

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/mylinks/internal/debounce"
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/search"
	"github.com/nikbrunner/mylinks/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	widgetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

var textCfg = layout.DefaultConfig().Text

// FilterMsg carries a settled query back into the update loop.
type FilterMsg struct {
	Query string
}

// Options configures a Picker.
type Options struct {
	// Debounce delays filtering until typing pauses. Zero filters on every
	// keystroke.
	Debounce time.Duration
	// QuitOnDone makes the picker quit the program once a link is chosen or
	// the picker is cancelled.
	QuitOnDone bool
}

// Picker selects one link out of the holder's document.
type Picker struct {
	input    textinput.Model
	holder   *mylinks.Holder
	searcher *search.Searcher

	debouncer *debounce.Debouncer[string]
	queries   chan string
	stopped   chan struct{}
	stopOnce  *sync.Once

	results    []search.Result
	cursor     int
	selected   bool
	cancelled  bool
	quitOnDone bool

	width  int
	height int
}

// New creates a Picker over every link of holder, pre-filtered by query.
func New(holder *mylinks.Holder, searcher *search.Searcher, query string, opts Options) Picker {
	input := textinput.New()
	input.Placeholder = "Search links..."
	input.Prompt = "/ "
	input.CharLimit = 200
	input.Width = 60
	input.SetValue(query)
	input.Focus()

	searcher.SetLinks(holder.Links())

	p := Picker{
		input:      input,
		holder:     holder,
		searcher:   searcher,
		quitOnDone: opts.QuitOnDone,
		width:      80,
		height:     24,
	}

	if opts.Debounce > 0 {
		queries := make(chan string, 1)
		p.queries = queries
		p.stopped = make(chan struct{})
		p.stopOnce = new(sync.Once)
		p.debouncer = debounce.New(opts.Debounce, func(q string) {
			select {
			case queries <- q:
			default:
				// Replace a query nobody has picked up yet.
				select {
				case <-queries:
				default:
				}
				select {
				case queries <- q:
				default:
				}
			}
		})
	}

	p.applyFilter(query)
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.waitForQuery())
}

// waitForQuery blocks until the debouncer delivers a settled query or the
// picker is stopped.
func (p Picker) waitForQuery() tea.Cmd {
	if p.queries == nil {
		return nil
	}
	queries, stopped := p.queries, p.stopped
	return func() tea.Msg {
		select {
		case q := <-queries:
			return FilterMsg{Query: q}
		case <-stopped:
			return nil
		}
	}
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case FilterMsg:
		if p.Done() {
			return p, nil
		}
		// A query the user has typed past is stale.
		if msg.Query == p.input.Value() {
			p.applyFilter(msg.Query)
		}
		return p, p.waitForQuery()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			p.cancelled = true
			return p, p.done()

		case "enter":
			if len(p.results) == 0 {
				return p, nil
			}
			p.selected = true
			return p, p.done()

		case "down", "ctrl+n", "tab":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case "up", "ctrl+p", "shift+tab":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}

		before := p.input.Value()
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		if after := p.input.Value(); after != before {
			p.queryChanged(after)
		}
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Picker) queryChanged(query string) {
	if p.debouncer == nil {
		p.applyFilter(query)
		return
	}
	p.debouncer.Call(query)
}

func (p *Picker) applyFilter(query string) {
	p.results = p.searcher.Filter(query)
	if p.cursor >= len(p.results) {
		p.cursor = max(len(p.results)-1, 0)
	}
}

func (p *Picker) done() tea.Cmd {
	p.Stop()
	if p.quitOnDone {
		return tea.Quit
	}
	return nil
}

// Stop drops any pending filter and releases a waiting filter command. It is
// safe to call more than once.
func (p Picker) Stop() {
	if p.debouncer != nil {
		p.debouncer.Stop()
	}
	if p.stopOnce != nil {
		p.stopOnce.Do(func() { close(p.stopped) })
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(p.input.View())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d of %d links", len(p.results), p.searcher.Len())))
	b.WriteString("\n\n")

	// Each result takes two lines; leave room for the header and footer.
	start, end := layout.CalculateVisibleListItems((p.height-5)/2, p.cursor, len(p.results))

	mark := func(s string) string { return matchStyle.Render(s) }
	for i := start; i < end; i++ {
		r := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		label := layout.Truncate(search.Highlight(r.Link.Label, r.LabelSpans, mark), p.width-4, textCfg)
		line := cursor + style.Render(label)
		if w := p.holder.FindWidgetByLinkID(r.ID); w != nil {
			line += " " + widgetStyle.Render("("+w.Title+")")
		}
		b.WriteString(line + "\n")
		url := layout.Truncate(search.Highlight(r.Link.URL, r.URLSpans, mark), p.width-4, textCfg)
		b.WriteString("   " + urlStyle.Render(url) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("up/down: move  Enter: open  Esc: cancel"))

	return b.String()
}

// Query returns the current query text.
func (p Picker) Query() string {
	return p.input.Value()
}

// Results returns the links currently shown.
func (p Picker) Results() []search.Result {
	return p.results
}

// Done reports whether the user chose a link or cancelled.
func (p Picker) Done() bool {
	return p.selected || p.cancelled
}

// Selected returns the chosen link, or nil if cancelled.
func (p Picker) Selected() *model.Link {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Link
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
