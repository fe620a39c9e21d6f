package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to maxWidth cells, ending it with the ellipsis.
// Escape sequences are kept so highlighted text stays highlighted.
func Truncate(s string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if ansi.StringWidth(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, cfg.Ellipsis)
}
