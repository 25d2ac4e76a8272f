package main

import (
	"math"
	"strings"
	"sync"

	"github.com/Zachkp/portfolio/internal/marquee"
)

// textSurface is a carousel row drawn in terminal cells. One cell is one
// unit of offset.
type textSurface struct {
	mu     sync.Mutex
	items  []marquee.Item
	cell   int
	strip  []rune
	offset float64
}

func newTextSurface(items []marquee.Item, cell int) *textSurface {
	if cell < 4 {
		cell = 4
	}
	doubled := marquee.Double(items)
	var b strings.Builder
	for _, it := range doubled {
		b.WriteString(label(it.Name, cell))
	}
	return &textSurface{items: doubled, cell: cell, strip: []rune(b.String())}
}

// label centres name in a cell-wide slot, trimming long names.
func label(name string, cell int) string {
	r := []rune(name)
	if len(r) > cell-2 {
		r = append(r[:cell-3], '…')
	}
	pad := cell - len(r)
	left := pad / 2
	return strings.Repeat(" ", left) + string(r) + strings.Repeat(" ", pad-left)
}

func (s *textSurface) ScrollWidth() float64 {
	return float64(len(s.strip))
}

func (s *textSurface) SetTranslateX(px float64) {
	s.mu.Lock()
	s.offset = px
	s.mu.Unlock()
}

// start is the strip index at the left edge of the viewport.
func (s *textSurface) start() int {
	s.mu.Lock()
	off := s.offset
	s.mu.Unlock()
	n := len(s.strip)
	if n == 0 {
		return 0
	}
	i := int(math.Floor(-off)) % n
	if i < 0 {
		i += n
	}
	return i
}

// view returns width cells of the row as they appear now.
func (s *textSurface) view(width int) string {
	n := len(s.strip)
	if n == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	start := s.start()
	out := make([]rune, width)
	for i := range out {
		out[i] = s.strip[(start+i)%n]
	}
	return string(out)
}

// itemAt names the item under viewport column col.
func (s *textSurface) itemAt(col int) string {
	n := len(s.strip)
	if n == 0 {
		return ""
	}
	i := (s.start() + col) % n
	return s.items[i/s.cell].Name
}
