// Package theme holds the light/dark mode and accent colour of the page.
//
// There is no package-level current theme. A Preference is read once with
// Init and then passed to whatever renders.
package theme

import (
	"fmt"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	}
	return "", fmt.Errorf("theme: unknown mode %q", s)
}

type Color string

const (
	Emerald Color = "emerald"
	Blue    Color = "blue"
	Purple  Color = "purple"
	Amber   Color = "amber"
	Rose    Color = "rose"
)

// Colors in selector order.
var Colors = []Color{Emerald, Blue, Purple, Amber, Rose}

func ParseColor(s string) (Color, error) {
	for _, c := range Colors {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("theme: unknown color %q", s)
}

// Palette is the set of classes one accent colour maps to.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Bg        string
	BgHover   string
	Border    string
	Tag       string
	// Terminal is a 256-colour code for the terminal preview.
	Terminal string
}

func (c Color) Palette() Palette {
	name := string(c)
	if _, err := ParseColor(name); err != nil {
		name = string(Emerald)
	}
	return Palette{
		Primary:   fmt.Sprintf("text-%s-800 dark:text-%s-200", name, name),
		Secondary: fmt.Sprintf("text-%s-700 dark:text-%s-300", name, name),
		Accent:    fmt.Sprintf("text-%s-500 dark:text-%s-400", name, name),
		Bg:        fmt.Sprintf("bg-%s-600", name),
		BgHover:   fmt.Sprintf("hover:bg-%s-700 dark:hover:bg-%s-500", name, name),
		Border:    fmt.Sprintf("border-%s-300 dark:border-%s-800", name, name),
		Tag:       fmt.Sprintf("bg-%s-100 text-%s-800 dark:bg-%s-900/60 dark:text-%s-200", name, name, name, name),
		Terminal:  terminalColors[Color(name)],
	}
}

var terminalColors = map[Color]string{
	Emerald: "36",
	Blue:    "33",
	Purple:  "135",
	Amber:   "214",
	Rose:    "204",
}

// Preference is the theme a page or terminal renders with.
type Preference struct {
	Mode  Mode  `yaml:"mode"`
	Color Color `yaml:"color"`
}

// Default is light mode with the emerald accent.
var Default = Preference{Mode: Light, Color: Emerald}

func (p Preference) Valid() bool {
	_, errM := ParseMode(string(p.Mode))
	_, errC := ParseColor(string(p.Color))
	return errM == nil && errC == nil
}

// Store persists a preference.
type Store interface {
	// Load returns ok=false when nothing has been saved yet.
	Load() (p Preference, ok bool, err error)
	Save(p Preference) error
}

// Init reads the saved preference once. Without one, the system's dark
// signal decides the mode. Store errors fall back to the same defaults.
func Init(store Store, systemDark bool) (Preference, error) {
	fallback := Default
	if systemDark {
		fallback.Mode = Dark
	}
	if store == nil {
		return fallback, nil
	}
	p, ok, err := store.Load()
	if err != nil {
		return fallback, fmt.Errorf("theme: load preference: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	if p.Color == "" {
		p.Color = Emerald
	}
	if !p.Valid() {
		return fallback, nil
	}
	return p, nil
}
