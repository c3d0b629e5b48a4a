// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package shortcut parses, describes and maps keyboard shortcut chords such as
// "Ctrl+1" or "Alt+X". A chord is a set of modifiers plus exactly one key.
// Chords are written in the readable form used in menus and converted to the
// key strings bubbletea reports, so commands can declare their shortcuts once
// and every terminal control can pick them up.
package shortcut

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Modifier is a bit set of chord modifiers.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
)

// Parse errors.
var (
	ErrUnknownKey = errors.New("unknown key")
	ErrInvalidKey = errors.New("invalid key for shortcut")
)

// Keys is a shortcut chord. The zero value means "no shortcut".
type Keys struct {
	Modifiers Modifier
	// Key is the canonical key name: "A".."Z", "0".."9", "F1".."F24", one of
	// the named keys (Enter, Escape, ...), or "-", "=", "~".
	Key string
}

// None is the empty chord.
var None = Keys{}

// namedKeys maps lower-cased spellings to the canonical key name.
var namedKeys = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"escape":    "Escape",
	"esc":       "Escape",
	"tab":       "Tab",
	"space":     "Space",
	"backspace": "Backspace",
	"back":      "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"next":      "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"-":         "-",
	"oemminus":  "-",
	"=":         "=",
	"oemplus":   "=",
	"~":         "~",
	"oemtilde":  "~",
	"+":         "+",
}

// teaNames maps canonical key names to the strings bubbletea reports.
var teaNames = map[string]string{
	"Enter":     "enter",
	"Escape":    "esc",
	"Tab":       "tab",
	"Space":     " ",
	"Backspace": "backspace",
	"Delete":    "delete",
	"Insert":    "insert",
	"Home":      "home",
	"End":       "end",
	"PageUp":    "pgup",
	"PageDown":  "pgdown",
	"Up":        "up",
	"Down":      "down",
	"Left":      "left",
	"Right":     "right",
}

// Parse reads a readable chord such as "Ctrl+Shift+F5", "Alt+X" or "Ctrl+-".
// Blank input yields None.
func Parse(s string) (Keys, error) {
	if strings.TrimSpace(s) == "" {
		return None, nil
	}

	var k Keys
	for _, seg := range splitChord(s) {
		seg = strings.TrimSpace(seg)
		if mod, ok := parseModifier(seg); ok {
			k.Modifiers |= mod
			continue
		}

		name, err := parseKey(seg)
		if err != nil {
			return None, err
		}
		if k.Key != "" {
			return None, fmt.Errorf("%w: %q has more than one key", ErrInvalidKey, s)
		}
		k.Key = name
	}

	if k.Key == "" {
		return None, fmt.Errorf("%w: %q has no key", ErrInvalidKey, s)
	}
	return k, nil
}

// MustParse is Parse for chords known at compile time. It panics on error.
func MustParse(s string) Keys {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// splitChord splits on '+' while allowing a trailing "+" key ("Ctrl++").
func splitChord(s string) []string {
	segs := strings.Split(s, "+")
	if len(segs) > 2 && segs[len(segs)-1] == "" && segs[len(segs)-2] == "" {
		segs = append(segs[:len(segs)-2], "+")
	}
	return segs
}

func parseModifier(seg string) (Modifier, bool) {
	switch strings.ToLower(seg) {
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt":
		return ModAlt, true
	}
	return 0, false
}

func parseKey(seg string) (string, error) {
	if seg == "" {
		return "", fmt.Errorf("%w: empty segment", ErrUnknownKey)
	}

	if n, err := strconv.Atoi(seg); err == nil {
		if n < 0 || n > 9 {
			return "", fmt.Errorf("%w: %d", ErrInvalidKey, n)
		}
		return strconv.Itoa(n), nil
	}

	if len(seg) == 1 {
		c := seg[0]
		switch {
		case c >= 'a' && c <= 'z':
			return string(c - 'a' + 'A'), nil
		case c >= 'A' && c <= 'Z':
			return seg, nil
		}
	}

	// D0..D9 is the enum spelling of the digit row.
	if len(seg) == 2 && (seg[0] == 'D' || seg[0] == 'd') && seg[1] >= '0' && seg[1] <= '9' {
		return seg[1:], nil
	}

	if (seg[0] == 'F' || seg[0] == 'f') && len(seg) > 1 {
		if n, err := strconv.Atoi(seg[1:]); err == nil {
			if n < 1 || n > 24 {
				return "", fmt.Errorf("%w: F%d", ErrInvalidKey, n)
			}
			return "F" + strconv.Itoa(n), nil
		}
	}

	if name, ok := namedKeys[strings.ToLower(seg)]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, seg)
}

// IsZero reports whether k is None.
func (k Keys) IsZero() bool {
	return k.Key == "" && k.Modifiers == 0
}

// String describes the chord the way menus display it: modifiers in
// Ctrl, Shift, Alt order, then the key.
func (k Keys) String() string {
	if k.IsZero() {
		return ""
	}
	var b strings.Builder
	if k.Modifiers&ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if k.Modifiers&ModShift != 0 {
		b.WriteString("Shift+")
	}
	if k.Modifiers&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	b.WriteString(k.Key)
	return b.String()
}

// TeaString returns the key string bubbletea reports for this chord
// (tea.KeyMsg.String()), e.g. "ctrl+s", "alt+x" or "X" for Shift+X.
func (k Keys) TeaString() string {
	if k.IsZero() {
		return ""
	}

	name, ok := teaNames[k.Key]
	if !ok {
		name = strings.ToLower(k.Key)
	}

	var b strings.Builder
	if k.Modifiers&ModAlt != 0 {
		b.WriteString("alt+")
	}

	shift := k.Modifiers&ModShift != 0
	ctrl := k.Modifiers&ModCtrl != 0
	if shift && !ctrl && len(k.Key) == 1 && k.Key[0] >= 'A' && k.Key[0] <= 'Z' {
		// Terminals report shifted letters as the upper-case rune.
		b.WriteString(k.Key)
		return b.String()
	}
	if ctrl {
		b.WriteString("ctrl+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(name)
	return b.String()
}

// Binding returns a key binding for the chord with the given help text.
// None yields a disabled binding.
func (k Keys) Binding(help string) key.Binding {
	if k.IsZero() {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(k.TeaString()),
		key.WithHelp(strings.ToLower(k.String()), help),
	)
}

// MarshalText implements encoding.TextMarshaler so chords read naturally in
// YAML and JSON.
func (k Keys) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Keys) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
