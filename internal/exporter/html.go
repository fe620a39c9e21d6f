// Package exporter writes the document as a Netscape bookmark file.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/mylinks/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/mylinks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("mylinks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the document to Netscape bookmark HTML format.
// Each widget becomes a folder; columns are flattened in document order.
// The first bound combination of a link is written as its keyword.
func ExportHTML(doc *model.Document) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, w := range doc.Widgets() {
		writeWidget(&b, w, 1)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeWidget(b *strings.Builder, w *model.Widget, indent int) {
	prefix := strings.Repeat("    ", indent)
	inner := strings.Repeat("    ", indent+1)

	fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(w.Title))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)

	for _, l := range w.List {
		fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", inner, html.EscapeString(l.URL))
		if l.Favicon != "" {
			fmt.Fprintf(b, " ICON_URI=\"%s\"", html.EscapeString(l.Favicon))
		}
		if l.HasShortcut() {
			fmt.Fprintf(b, " SHORTCUTURL=\"%s\"", html.EscapeString(l.Shortcuts[0]))
		}
		fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(l.Label))
	}

	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}
