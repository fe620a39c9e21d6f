// Package search filters links by free text and reports which parts of the
// label and url matched.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/sahilm/fuzzy"
)

// Mode selects the matching algorithm.
type Mode string

const (
	// ModeSubstring matches case-insensitive substrings.
	ModeSubstring Mode = "substring"
	// ModeFuzzy matches characters in order with gaps, ranked by score.
	ModeFuzzy Mode = "fuzzy"
)

// ParseMode parses a mode name. The empty string selects ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeFuzzy:
		return ModeFuzzy, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Field says where a result matched.
type Field string

const (
	FieldLabel Field = "label"
	FieldURL   Field = "url"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is a matched link. ID always equals Link.ID.
type Result struct {
	ID         string
	Link       *model.Link
	Field      Field
	LabelSpans []Span
	URLSpans   []Span
	Score      int
}

// Searcher holds the corpus searched by Filter.
type Searcher struct {
	mode  Mode
	links []*model.Link
}

// NewSearcher creates an empty Searcher.
func NewSearcher(mode Mode) *Searcher {
	if mode == "" {
		mode = ModeSubstring
	}
	return &Searcher{mode: mode}
}

// Mode returns the matching algorithm in use.
func (s *Searcher) Mode() Mode {
	return s.mode
}

// SetLinks replaces the corpus.
func (s *Searcher) SetLinks(links []*model.Link) {
	s.links = append([]*model.Link(nil), links...)
}

// Len returns the corpus size.
func (s *Searcher) Len() int {
	return len(s.links)
}

// Filter returns the links matching query. Label matches come before url-only
// matches. An empty query matches nothing.
func (s *Searcher) Filter(query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(s.links) == 0 {
		return nil
	}
	if s.mode == ModeFuzzy {
		return s.filterFuzzy(query)
	}
	return s.filterSubstring(query)
}

func (s *Searcher) filterSubstring(query string) []Result {
	var byLabel, byURL []Result
	for _, l := range s.links {
		labelSpans := findAllFold(l.Label, query)
		urlSpans := findAllFold(l.URL, query)
		switch {
		case len(labelSpans) > 0:
			byLabel = append(byLabel, Result{
				ID: l.ID, Link: l, Field: FieldLabel,
				LabelSpans: labelSpans, URLSpans: urlSpans,
			})
		case len(urlSpans) > 0:
			byURL = append(byURL, Result{
				ID: l.ID, Link: l, Field: FieldURL,
				URLSpans: urlSpans,
			})
		}
	}
	return append(byLabel, byURL...)
}

// linkLabels implements fuzzy.Source for link labels.
type linkLabels []*model.Link

func (ll linkLabels) String(i int) string { return ll[i].Label }
func (ll linkLabels) Len() int            { return len(ll) }

// linkURLs implements fuzzy.Source for link urls.
type linkURLs []*model.Link

func (lu linkURLs) String(i int) string { return lu[i].URL }
func (lu linkURLs) Len() int            { return len(lu) }

func (s *Searcher) filterFuzzy(query string) []Result {
	matched := make(map[int]bool)

	var results []Result
	for _, m := range fuzzy.FindFrom(query, linkLabels(s.links)) {
		l := s.links[m.Index]
		matched[m.Index] = true
		results = append(results, Result{
			ID: l.ID, Link: l, Field: FieldLabel,
			LabelSpans: indexSpans(l.Label, m.MatchedIndexes),
			Score:      m.Score,
		})
	}

	var rest []*model.Link
	for i, l := range s.links {
		if !matched[i] {
			rest = append(rest, l)
		}
	}
	for _, m := range fuzzy.FindFrom(query, linkURLs(rest)) {
		l := rest[m.Index]
		results = append(results, Result{
			ID: l.ID, Link: l, Field: FieldURL,
			URLSpans: indexSpans(l.URL, m.MatchedIndexes),
			Score:    m.Score,
		})
	}
	return results
}

// indexSpans turns matched byte indexes into spans, merging adjacent runes.
func indexSpans(text string, indexes []int) []Span {
	var spans []Span
	for _, i := range indexes {
		if i < 0 || i >= len(text) {
			continue
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		if n := len(spans); n > 0 && spans[n-1].End == i {
			spans[n-1].End = i + w
			continue
		}
		spans = append(spans, Span{Start: i, End: i + w})
	}
	return spans
}

// findAllFold returns every non-overlapping case-insensitive occurrence of
// query in text.
func findAllFold(text, query string) []Span {
	var spans []Span
	for i := 0; i < len(text); {
		if n, ok := prefixFold(text[i:], query); ok {
			spans = append(spans, Span{Start: i, End: i + n})
			i += n
			continue
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		i += w
	}
	return spans
}

// prefixFold reports whether s starts with q under simple case folding and
// returns the number of bytes of s consumed.
func prefixFold(s, q string) (int, bool) {
	n := 0
	for q != "" {
		if s == "" {
			return 0, false
		}
		_, ws := utf8.DecodeRuneInString(s)
		_, wq := utf8.DecodeRuneInString(q)
		if !strings.EqualFold(s[:ws], q[:wq]) {
			return 0, false
		}
		s, q = s[ws:], q[wq:]
		n += ws
	}
	return n, true
}

// Highlight wraps every span of text with mark. Spans must be sorted and
// non-overlapping; out of range spans are ignored.
func Highlight(text string, spans []Span, mark func(string) string) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.Start < last || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		b.WriteString(text[last:sp.Start])
		b.WriteString(mark(text[sp.Start:sp.End]))
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String()
}
