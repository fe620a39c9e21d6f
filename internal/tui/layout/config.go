package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Text  TextConfig
}

// GridConfig holds the dimensions of the widget columns.
type GridConfig struct {
	// HeightReduction is subtracted from terminal height for column content.
	// Accounts for: app padding (1) + header (1) + gap (1) + help bar (2) = 5
	HeightReduction int

	// MinHeight is the minimum column height.
	MinHeight int

	// HorizontalPadding is the app padding left and right of the grid.
	HorizontalPadding int

	// ColumnGap is the number of blank cells between two columns.
	ColumnGap int

	// MinColumnWidth is the narrowest a column is rendered.
	MinColumnWidth int

	// ContentPadding is subtracted from column width for link rendering.
	// Accounts for widget border (2) and padding (2).
	ContentPadding int
}

// ModalConfig holds overlay configuration (finder, help).
type ModalConfig struct {
	// WidthPercent is the overlay width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum overlay width in characters.
	MinWidth int

	// MaxWidth is the maximum overlay width in characters.
	MaxWidth int

	// HelpColumnWidth is the width of each column in the help overlay.
	HelpColumnWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			HeightReduction:   5,
			MinHeight:         5,
			HorizontalPadding: 4,
			ColumnGap:         1,
			MinColumnWidth:    20,
			ContentPadding:    4,
		},
		Modal: ModalConfig{
			WidthPercent:    60,
			MinWidth:        40,
			MaxWidth:        100,
			HelpColumnWidth: 28,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
