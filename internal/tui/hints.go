package tui

import (
	"strings"

	"github.com/nikbrunner/mylinks/internal/config"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move d:del Y:yank"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (d, J/K, etc.)
	Action []Hint // Action hints (Enter, Y, etc.)
	System []Hint // System hints (?, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeEdit:
		return a.getEditModeHints()
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	case ModeAddLink, ModeEditLink, ModeRenameWidget, ModeAddWidget:
		hints := HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
		if len(a.modal.Inputs) > 1 {
			hints.Nav = []Hint{{Key: "Tab", Desc: "next field"}}
		}
		return hints
	default:
		// The finder draws its own hints
		return HintSet{}
	}
}

// getNormalModeHints lists the system shortcuts, which are configurable.
func (a App) getNormalModeHints() HintSet {
	var hints HintSet
	if a.chord.Pending() {
		hints.System = append(hints.System, Hint{Key: "Esc", Desc: "clear"})
		return hints
	}
	if reg := a.holder.Registry(); reg != nil {
		for _, s := range reg.All() {
			h := Hint{Key: s.Combination, Desc: actionLabel(s.Action)}
			switch s.Action {
			case config.ActionFind, config.ActionEdit:
				hints.Action = append(hints.Action, h)
			default:
				hints.System = append(hints.System, h)
			}
		}
	}
	hints.System = append(hints.System, Hint{Key: "ctrl+c", Desc: "quit"})
	return hints
}

// getEditModeHints returns hints for ModeEdit.
func (a App) getEditModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h/l", Desc: "widget"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "Y", Desc: "yank"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
			{Key: "e", Desc: "edit"},
			{Key: "r", Desc: "rename"},
			{Key: "J/K", Desc: "reorder"},
			{Key: "d", Desc: "del"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "Esc", Desc: "done"},
		},
	}
}

// actionLabel returns the short description of a system action.
func actionLabel(action string) string {
	switch action {
	case config.ActionFind:
		return "find"
	case config.ActionEdit:
		return "edit"
	case config.ActionToggleHints:
		return "hints"
	case config.ActionReload:
		return "reload"
	case config.ActionHelp:
		return "help"
	case config.ActionQuit:
		return "quit"
	default:
		return action
	}
}
