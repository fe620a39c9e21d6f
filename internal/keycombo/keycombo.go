// Package keycombo parses and compares key combinations: ordered sequences of
// key presses such as "y t" or "ctrl+g space" that trigger a shortcut.
//
// All functions are total. Malformed input makes a validator return false and
// a comparison report "no match"; nothing here panics or returns an error that
// callers have to propagate.
package keycombo

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator joins tokens in the canonical string form of a combination.
const Separator = " "

// modifierOrder is the canonical order modifiers are written in.
var modifierOrder = []string{"ctrl", "alt", "shift", "meta"}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"meta":    "meta",
	"cmd":     "meta",
	"super":   "meta",
}

var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "space": true,
	"backspace": true, "delete": true, "insert": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// keyAliases maps spellings used by terminals and browsers to named keys.
var keyAliases = map[string]string{
	"escape":     "esc",
	"return":     "enter",
	"del":        "delete",
	"pageup":     "pgup",
	"pagedown":   "pgdown",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
}

// Parse splits s into canonical key tokens. ok is false when s is empty or
// contains a token that is not a key.
func Parse(s string) (tokens []string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, false
	}

	for _, field := range fields {
		parsed, ok := parseField(field)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, parsed...)
	}
	return tokens, true
}

// Canonical returns the canonical string form of s, or "" if s is malformed.
func Canonical(s string) string {
	tokens, ok := Parse(s)
	if !ok {
		return ""
	}
	return strings.Join(tokens, Separator)
}

// Normalize converts the string form of a single key event (as produced by a
// terminal key message, e.g. "a", "A", " ", "ctrl+x") into one canonical token.
func Normalize(key string) (string, bool) {
	if key == " " {
		return "space", true
	}
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return "", false
	}
	tokens, ok := parseField(key)
	if !ok || len(tokens) != 1 {
		return "", false
	}
	return tokens[0], true
}

// Join appends a single token to a canonical pattern.
func Join(pattern, token string) string {
	if pattern == "" {
		return token
	}
	return pattern + Separator + token
}

func parseField(field string) ([]string, bool) {
	lower := strings.ToLower(field)
	if named, ok := namedKey(lower); ok {
		return []string{named}, true
	}

	if len(field) > 1 && strings.Contains(field, "+") {
		token, ok := parseChord(field)
		if !ok {
			return nil, false
		}
		return []string{token}, true
	}

	tokens := make([]string, 0, utf8.RuneCountInString(field))
	for _, r := range field {
		token, ok := runeToken(r, nil)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, token)
	}
	return tokens, true
}

// parseChord parses "mod+mod+key". A trailing "++" denotes the plus key.
func parseChord(field string) (string, bool) {
	var key string
	rest := field
	if strings.HasSuffix(rest, "++") {
		key = "+"
		rest = strings.TrimSuffix(rest, "++")
	} else {
		idx := strings.LastIndex(rest, "+")
		key = rest[idx+1:]
		rest = rest[:idx]
	}
	if key == "" || rest == "" {
		return "", false
	}

	mods := make(map[string]bool)
	for _, m := range strings.Split(rest, "+") {
		canonical, ok := modifierAliases[strings.ToLower(m)]
		if !ok {
			return "", false
		}
		mods[canonical] = true
	}

	if named, ok := namedKey(strings.ToLower(key)); ok {
		return chordString(mods, named), true
	}
	if utf8.RuneCountInString(key) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return runeToken(r, mods)
}

func runeToken(r rune, mods map[string]bool) (string, bool) {
	if r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return "", false
	}
	// A bare uppercase letter means shift. With explicit modifiers the case
	// of the key is not significant.
	if unicode.IsUpper(r) {
		if len(mods) == 0 {
			mods = map[string]bool{"shift": true}
		}
		r = unicode.ToLower(r)
	}
	return chordString(mods, string(r)), true
}

func chordString(mods map[string]bool, key string) string {
	if len(mods) == 0 {
		return key
	}
	var b strings.Builder
	for _, m := range modifierOrder {
		if mods[m] {
			b.WriteString(m)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String()
}

func namedKey(lower string) (string, bool) {
	if alias, ok := keyAliases[lower]; ok {
		return alias, true
	}
	if namedKeys[lower] {
		return lower, true
	}
	return "", false
}

// IsCombination reports whether v is a string holding a well-formed combination.
func IsCombination(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, ok = Parse(s)
	return ok
}

// IsCombinationList reports whether v is a list of well-formed combinations.
// The empty list is valid and means "no shortcut bound".
func IsCombinationList(v any) bool {
	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if !IsCombination(s) {
				return false
			}
		}
		return true
	case []any:
		for _, item := range list {
			if !IsCombination(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare reports whether a and b denote the same key sequence.
func Compare(a, b string) bool {
	ta, ok := Parse(a)
	if !ok {
		return false
	}
	tb, ok := Parse(b)
	if !ok {
		return false
	}
	return equalTokens(ta, tb)
}

// CompareLists reports whether a and b hold the same combinations in the same order.
func CompareLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Compare(a[i], b[i]) {
			return false
		}
	}
	return true
}

// StartsWith reports whether candidate's key sequence begins with every key of
// pattern, in order. An empty or malformed pattern matches nothing.
func StartsWith(pattern, candidate string) bool {
	tp, ok := Parse(pattern)
	if !ok {
		return false
	}
	tc, ok := Parse(candidate)
	if !ok {
		return false
	}
	if len(tp) > len(tc) {
		return false
	}
	return equalTokens(tp, tc[:len(tp)])
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
