package layout

import "testing"

func TestCalculateGridHeight(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 19},               // 24 - 5 = 19
		{"large terminal", 50, 45},                // 50 - 5 = 45
		{"small terminal enforces min", 8, 5},     // 8 - 5 = 3, min is 5
		{"terminal smaller than reduction", 4, 5}, // negative clamps to min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGridHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateGridHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateColumnWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		terminalWidth int
		columns       int
		want          int
	}{
		{"single column", 80, 1, 76},           // 80 - 4 = 76
		{"three columns", 80, 3, 24},           // (80 - 4 - 2) / 3 = 24
		{"four columns wide", 160, 4, 38},      // (160 - 4 - 3) / 4 = 38
		{"narrow enforces min", 60, 4, 20},     // (60 - 4 - 3) / 4 = 13, min 20
		{"zero columns counts as one", 80, 0, 76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateColumnWidth(tt.terminalWidth, tt.columns, cfg)
			if got != tt.want {
				t.Errorf("CalculateColumnWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.columns, got, tt.want)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name        string
		columnWidth int
		want        int
	}{
		{"normal column", 24, 20}, // 24 - 4 = 20
		{"wide column", 40, 36},   // 40 - 4 = 36
		{"tiny column", 3, 1},     // clamps to 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateItemWidth(tt.columnWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateItemWidth(%d) = %d, want %d",
					tt.columnWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
