// Package carousel hosts one marquee engine per open skills view. Opening a
// session only reserves it; the engine is mounted while at least one stream
// is attached and unmounted when the last one ends. Sessions nobody streams
// are closed after the attach timeout.
package carousel

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/marquee"
)

var (
	ErrUnknownSession = errors.New("carousel: unknown session")
	ErrUnknownItem    = errors.New("carousel: unknown item")
)

// ClickRecorder is told about item clicks; the admin stats count them.
type ClickRecorder interface {
	RecordClick(name string) error
}

// DefaultAttachTimeout is how long an opened session waits for a stream.
const DefaultAttachTimeout = 10 * time.Second

// stateIdle is reported for a session with no stream attached yet.
const stateIdle = "idle"

// Options configure a Hub.
type Options struct {
	Speed         float64
	ClickPause    time.Duration
	AttachTimeout time.Duration
	Layout        Layout
	Scheduler     marquee.Scheduler
	Clock         marquee.Clock
	Recorder      ClickRecorder
}

// Hub tracks open sessions. All sessions share one frame scheduler.
type Hub struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub(opts Options) *Hub {
	if opts.Layout.ItemWidth <= 0 {
		opts.Layout = DefaultLayout
	}
	if opts.AttachTimeout <= 0 {
		opts.AttachTimeout = DefaultAttachTimeout
	}
	if opts.Clock == nil {
		opts.Clock = marquee.RealClock
	}
	return &Hub{opts: opts, sessions: make(map[string]*Session)}
}

// Layout is the item layout strips are measured with.
func (h *Hub) Layout() Layout {
	return h.opts.Layout
}

// Session is one carousel, mounted while streams are attached.
type Session struct {
	ID     string
	Items  []marquee.Item
	Opened time.Time

	engine *marquee.Engine
	top    *StripSurface
	bottom *StripSurface
	names  map[string]struct{}
	rec    ClickRecorder

	// guarded by Hub.mu
	streams  int
	attached bool
	reap     marquee.Timer
}

// RowSnapshot is what the stream sends for one row.
type RowSnapshot struct {
	Offset float64 `json:"offset"`
	State  string  `json:"state"`
}

// Snapshot is the state of both rows.
type Snapshot struct {
	Top    RowSnapshot `json:"top"`
	Bottom RowSnapshot `json:"bottom"`
}

// Open reserves a session over items. Nothing runs until a stream attaches.
func (h *Hub) Open(items []marquee.Item) (*Session, error) {
	if err := marquee.Validate(items); err != nil {
		return nil, err
	}
	doubled := len(items) * 2
	s := &Session{
		ID:     uuid.NewString(),
		Items:  append([]marquee.Item(nil), items...),
		Opened: time.Now(),
		engine: marquee.NewEngine(marquee.Config{
			Speed:      h.opts.Speed,
			ClickPause: h.opts.ClickPause,
			Scheduler:  h.opts.Scheduler,
			Clock:      h.opts.Clock,
		}),
		top:    NewStripSurface(h.opts.Layout, doubled),
		bottom: NewStripSurface(h.opts.Layout, doubled),
		names:  make(map[string]struct{}, len(items)),
		rec:    h.opts.Recorder,
	}
	for _, it := range items {
		s.names[it.Name] = struct{}{}
	}
	// Same starting transforms the page renders: 0 and -contentWidth.
	s.bottom.SetTranslateX(-s.bottom.ScrollWidth() / 2)

	h.mu.Lock()
	h.sessions[s.ID] = s
	s.reap = h.opts.Clock.AfterFunc(h.opts.AttachTimeout, func() { h.reapUnattached(s.ID) })
	n := len(h.sessions)
	h.mu.Unlock()

	log.Printf("carousel: session %s opened (%d items, %d open)", s.ID, len(items), n)
	return s, nil
}

// Attach adds a stream to a session, mounting the engine for the first one.
// release must be called when the stream ends; the last release closes the
// session. Calling release more than once is fine.
func (h *Hub) Attach(id string) (*Session, func(), error) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if !ok {
		h.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	s.streams++
	if s.streams == 1 && !s.attached {
		s.attached = true
		if s.reap != nil {
			s.reap.Stop()
			s.reap = nil
		}
		s.engine.Mount(s.top, s.bottom)
		log.Printf("carousel: session %s mounted", id)
	}
	h.mu.Unlock()

	var once sync.Once
	return s, func() { once.Do(func() { h.detach(s) }) }, nil
}

func (h *Hub) detach(s *Session) {
	h.mu.Lock()
	s.streams--
	if s.streams > 0 {
		h.mu.Unlock()
		return
	}
	// Close may already have removed it.
	owned := h.sessions[s.ID] == s
	if owned {
		delete(h.sessions, s.ID)
	}
	h.mu.Unlock()
	if owned {
		s.shutdown("last stream ended")
	}
}

func (h *Hub) reapUnattached(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if !ok || s.attached {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, id)
	s.reap = nil
	h.mu.Unlock()
	s.shutdown("no stream attached")
}

func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

// Close unmounts and forgets a session whatever streams it has. Unknown ids
// are ignored.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	if ok && s.reap != nil {
		s.reap.Stop()
		s.reap = nil
	}
	h.mu.Unlock()
	if ok {
		s.shutdown("closed")
	}
}

// CloseAll unmounts every session, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	for _, s := range sessions {
		if s.reap != nil {
			s.reap.Stop()
			s.reap = nil
		}
	}
	h.mu.Unlock()
	for _, s := range sessions {
		s.engine.Unmount()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (s *Session) shutdown(reason string) {
	s.engine.Unmount()
	log.Printf("carousel: session %s unmounted after %s (%s)", s.ID, time.Since(s.Opened).Round(time.Millisecond), reason)
}

// Hover pauses or releases one row.
func (s *Session) Hover(d marquee.Direction, paused bool) {
	s.engine.SetPaused(d, paused)
}

// Click holds both rows so the clicked label can be read.
func (s *Session) Click(name string) error {
	if _, ok := s.names[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	s.engine.Click()
	if s.rec != nil {
		if err := s.rec.RecordClick(name); err != nil {
			log.Printf("carousel: recording click on %q: %v", name, err)
		}
	}
	return nil
}

// Snapshot reads the transforms last applied to both strips.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Top:    RowSnapshot{Offset: s.top.TranslateX(), State: s.state(marquee.Forward)},
		Bottom: RowSnapshot{Offset: s.bottom.TranslateX(), State: s.state(marquee.Reverse)},
	}
}

func (s *Session) state(d marquee.Direction) string {
	if r := s.engine.Row(d); r != nil {
		return r.State().String()
	}
	return stateIdle
}

// Mounted reports whether the session's rows are still running.
func (s *Session) Mounted() bool {
	return s.engine.Mounted()
}
