package carousel

import (
	"math"
	"sync/atomic"
)

// Layout is the fixed size of one logo tile in pixels.
type Layout struct {
	ItemWidth float64
	// ItemGap is the margin on each side of a tile.
	ItemGap float64
}

// DefaultLayout matches the 80px tiles with 16px side margins on the page.
var DefaultLayout = Layout{ItemWidth: 80, ItemGap: 16}

// StripWidth is the width of a strip holding n tiles.
func (l Layout) StripWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * (l.ItemWidth + 2*l.ItemGap)
}

// StripSurface stands in for the browser's strip element. The engine writes
// the offset from its frame goroutine; stream handlers read it.
type StripSurface struct {
	width  float64
	offset atomic.Uint64
}

// NewStripSurface sizes a surface for a strip of tiles (already doubled).
func NewStripSurface(l Layout, tiles int) *StripSurface {
	return &StripSurface{width: l.StripWidth(tiles)}
}

func (s *StripSurface) ScrollWidth() float64 { return s.width }

func (s *StripSurface) SetTranslateX(px float64) {
	s.offset.Store(math.Float64bits(px))
}

// TranslateX is the last offset written.
func (s *StripSurface) TranslateX() float64 {
	return math.Float64frombits(s.offset.Load())
}
