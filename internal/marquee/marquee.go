// Package marquee drives the looping logo strips of the skills section.
//
// A strip holds its items twice back to back. Shifting it by one copy's width
// lands on identical content, so each row only ever moves within one content
// width and snaps back to the opposite edge when it gets there.
package marquee

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultSpeed is the strip speed in pixels per millisecond.
	DefaultSpeed = 0.03
	// DefaultClickPause is how long both rows hold still after an item click.
	DefaultClickPause = 1500 * time.Millisecond
)

// ErrDuplicateItem is returned when two items in one row share a name.
var ErrDuplicateItem = errors.New("marquee: duplicate item name")

// Direction is the way a row travels.
type Direction int

const (
	// Forward rows move left, from 0 towards -contentWidth.
	Forward Direction = iota
	// Reverse rows move right, from -contentWidth towards 0.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "forward"/"reverse" and the "top"/"bottom" row names
// used by the page.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward", "top", "left":
		return Forward, nil
	case "reverse", "bottom", "right":
		return Reverse, nil
	}
	return 0, fmt.Errorf("marquee: unknown direction %q", s)
}

// Item is one logo in a row.
type Item struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

// Validate reports duplicate names; click targeting and keyed rendering rely
// on names being unique within a row.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateItem, it.Name)
		}
		seen[it.Name] = struct{}{}
	}
	return nil
}

// Double returns items followed by a second copy of items.
func Double(items []Item) []Item {
	out := make([]Item, 0, 2*len(items))
	out = append(out, items...)
	return append(out, items...)
}

// Surface is the rendered strip a row moves.
type Surface interface {
	// ScrollWidth is the width of the doubled strip.
	ScrollWidth() float64
	// SetTranslateX applies the horizontal offset.
	SetTranslateX(px float64)
}

// State of a row.
type State int

const (
	Running State = iota
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
