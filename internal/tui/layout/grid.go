package layout

// CalculateGridHeight computes the content height of the columns.
// Returns at least MinHeight.
func CalculateGridHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumnWidth splits the terminal width evenly across columns.
func CalculateColumnWidth(terminalWidth, columns int, cfg GridConfig) int {
	if columns < 1 {
		columns = 1
	}
	available := terminalWidth - cfg.HorizontalPadding - cfg.ColumnGap*(columns-1)
	width := available / columns
	if width < cfg.MinColumnWidth {
		width = cfg.MinColumnWidth
	}
	return width
}

// CalculateItemWidth computes the width available for a link line.
func CalculateItemWidth(columnWidth int, cfg GridConfig) int {
	width := columnWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected line visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
