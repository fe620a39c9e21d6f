// Package importer reads Netscape bookmark files into widgets.
package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/model"
	"golang.org/x/net/html"
)

// RootTitle is the title of the widget that collects bookmarks outside any folder.
const RootTitle = "Imported"

// ParseHTMLBookmarks parses Netscape bookmark HTML into widgets.
//
// Folders are flattened: every folder holding bookmarks becomes one widget
// titled with its path ("Development / React"). Bookmarks outside any folder
// land in a widget titled RootTitle, which comes first. Folders without
// bookmarks produce no widget.
func ParseHTMLBookmarks(r io.Reader) ([]model.Widget, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := model.Widget{ID: model.NewID(), Title: RootTitle, List: []model.Link{}}
	var folders []model.Widget

	// Track current folder stack for hierarchy
	var folderStack []int  // indexes into folders
	var pendingFolder = -1 // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					title := name
					if len(folderStack) > 0 {
						title = folders[folderStack[len(folderStack)-1]].Title + " / " + name
					}
					folders = append(folders, model.Widget{ID: model.NewID(), Title: title, List: []model.Link{}})

					// Pushed when we see the next DL
					pendingFolder = len(folders) - 1
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				label := getTextContent(n)
				if label == "" {
					label = href
				}

				link := model.Link{
					ID:    model.NewID(),
					Label: label,
					URL:   href,
				}
				if icon := getAttr(n, "icon_uri"); strings.HasPrefix(icon, "http") {
					link.Favicon = icon
				}
				if keyword := getAttr(n, "shortcuturl"); keyword != "" && keycombo.IsCombination(keyword) {
					link.Shortcuts = model.Combinations{keyword}
				}

				if len(folderStack) > 0 {
					w := &folders[folderStack[len(folderStack)-1]]
					w.List = append(w.List, link)
				} else {
					root.List = append(root.List, link)
				}
				return

			case "dl":
				pushedFolder := false
				if pendingFolder >= 0 {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = -1
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	var widgets []model.Widget
	if len(root.List) > 0 {
		widgets = append(widgets, root)
	}
	for _, f := range folders {
		if len(f.List) > 0 {
			widgets = append(widgets, f)
		}
	}
	return widgets, nil
}

// Merge appends widgets to doc as a new column, skipping links whose URL is
// already present. Widgets left empty are dropped. It returns the number of
// links added.
func Merge(doc *model.Document, widgets []model.Widget) int {
	seen := make(map[string]bool)
	doc.Walk(func(_ *model.Widget, l *model.Link) bool {
		seen[l.URL] = true
		return true
	})

	var column []model.Widget
	added := 0
	for _, w := range widgets {
		list := make([]model.Link, 0, len(w.List))
		for _, l := range w.List {
			if seen[l.URL] {
				continue
			}
			seen[l.URL] = true
			list = append(list, l)
		}
		if len(list) == 0 {
			continue
		}
		w.List = list
		column = append(column, w)
		added += len(list)
	}

	if len(column) > 0 {
		doc.Columns = append(doc.Columns, column)
	}
	return added
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
