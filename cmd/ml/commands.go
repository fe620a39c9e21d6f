package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/nikbrunner/mylinks/internal/browser"
	"github.com/nikbrunner/mylinks/internal/culler"
	"github.com/nikbrunner/mylinks/internal/exporter"
	"github.com/nikbrunner/mylinks/internal/importer"
	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/picker"
	"github.com/nikbrunner/mylinks/internal/search"
	"github.com/nikbrunner/mylinks/internal/shortcut"
)

// runFind searches links and opens the chosen one. A single result opens
// directly, several show a picker.
func runFind(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("usage: ml find <query>")
	}

	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	searcher := search.NewSearcher(e.searchMode)
	searcher.SetLinks(e.holder.Links())
	results := searcher.Filter(query)

	var selected *model.Link
	switch len(results) {
	case 0:
		fmt.Printf("No links found for '%s'\n", query)
		return nil
	case 1:
		selected = results[0].Link
	default:
		p := picker.New(e.holder, searcher, query, picker.Options{
			Debounce:   e.cfg.Search.Debounce(),
			QuitOnDone: true,
		})
		finalModel, err := tea.NewProgram(p).Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}
		selected = finalModel.(picker.Picker).Selected()
	}

	if selected == nil {
		return nil
	}
	fmt.Printf("Opening: %s\n", selected.Label)
	return browser.Open([]string{selected.URL})
}

// runOpen opens whatever a complete key combination is bound to.
func runOpen(ctx context.Context, cmd *cli.Command) error {
	pattern := keycombo.Canonical(strings.Join(cmd.Args().Slice(), " "))
	if pattern == "" {
		return errors.New("usage: ml open <combination>")
	}

	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	matches := e.holder.Resolve(pattern)
	var exact shortcut.Shortcut
	for _, s := range matches {
		if keycombo.Compare(s.Keys(), pattern) {
			exact = s
			break
		}
	}

	if exact == nil {
		if len(matches) == 0 {
			return fmt.Errorf("no shortcut bound to %q", pattern)
		}
		keys := make([]string, 0, len(matches))
		for _, s := range matches {
			keys = append(keys, s.Keys())
		}
		return fmt.Errorf("%q is incomplete, candidates: %s", pattern, strings.Join(keys, ", "))
	}

	switch s := exact.(type) {
	case shortcut.System:
		return fmt.Errorf("%q is bound to the %s action of the start page", pattern, s.Action)
	case shortcut.LinkShortcut:
		fmt.Printf("Opening: %s\n", s.Link.Label)
	case shortcut.LinkArray:
		fmt.Printf("Opening %d links\n", len(s.Links))
	}
	return browser.Open(shortcut.URLs(exact))
}

// runCheck validates the document and prints every problem found.
func runCheck(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	doc := e.holder.Document()
	if err := e.holder.Check(); err != nil {
		problems := strings.Split(err.Error(), "\n")
		for _, p := range problems {
			fmt.Println("  " + p)
		}
		return fmt.Errorf("%d problems found", len(problems))
	}

	fmt.Printf("OK: %d links in %d widgets\n", doc.LinkCount(), len(doc.Widgets()))
	return nil
}

// runImport merges a bookmark file into the document.
func runImport(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.Args().First()
	if filePath == "" {
		return errors.New("usage: ml import <file.html>")
	}

	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	widgets, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	var added int
	_ = e.holder.Edit(func(doc *model.Document) error {
		added = importer.Merge(doc, widgets)
		return nil
	})
	if err := e.save(); err != nil {
		return err
	}

	fmt.Printf("Imported %d links from %d folders\n", added, len(widgets))
	return nil
}

// runExport writes the document as a bookmark file.
func runExport(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.Args().First()
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	doc := e.holder.Document()
	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(doc)), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Printf("Exported %d links, %d widgets to %s\n", doc.LinkCount(), len(doc.Widgets()), outputPath)
	return nil
}

// runCull checks every link and reports the dead ones.
func runCull(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	links := e.holder.Links()
	results := culler.CheckURLs(ctx, links, culler.Options{
		Concurrency:    e.cfg.Cull.Concurrency,
		Timeout:        e.cfg.Cull.Timeout(),
		ExcludeDomains: e.cfg.Cull.ExcludeDomains,
		OnProgress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
		},
	})
	fmt.Fprintln(os.Stderr)

	dead := culler.DeadLinks(results)
	if len(dead) == 0 {
		fmt.Printf("All %d links are alive\n", len(links))
		return nil
	}

	ids := make([]string, 0, len(dead))
	for _, r := range dead {
		fmt.Printf("%-4d %s  %s\n", r.StatusCode, r.Link.Label, r.Link.URL)
		ids = append(ids, r.Link.ID)
	}

	if !cmd.Bool("delete") {
		fmt.Printf("%d dead links (run with --delete to remove them)\n", len(dead))
		return nil
	}

	_ = e.holder.Edit(func(doc *model.Document) error {
		for _, id := range ids {
			doc.DeleteLink(id)
		}
		return nil
	})
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Deleted %d dead links\n", len(ids))
	return nil
}
