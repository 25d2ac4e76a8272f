package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/marquee"
	"github.com/Zachkp/portfolio/internal/theme"
)

var (
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	ink   = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type previewModel struct {
	engine *marquee.Engine
	frames *marquee.FrameQueue
	top    *textSurface
	bottom *textSurface
	store  theme.Store
	pref   theme.Preference

	hover   [2]bool
	clicked string
	status  string
	started time.Time
	width   int
}

func newPreviewModel(engine *marquee.Engine, frames *marquee.FrameQueue, top, bottom *textSurface, store theme.Store, pref theme.Preference) previewModel {
	return previewModel{
		engine:  engine,
		frames:  frames,
		top:     top,
		bottom:  bottom,
		store:   store,
		pref:    pref,
		started: time.Now(),
		width:   80,
	}
}

func (m previewModel) Init() tea.Cmd { return tick() }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.engine.Mounted() {
			return m, nil
		}
		m.frames.Tick(float64(time.Time(msg).Sub(m.started)) / float64(time.Millisecond))
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (previewModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.engine.Unmount()
		return m, tea.Quit
	case "1":
		m.hover[0] = !m.hover[0]
		m.engine.SetPaused(marquee.Forward, m.hover[0])
	case "2":
		m.hover[1] = !m.hover[1]
		m.engine.SetPaused(marquee.Reverse, m.hover[1])
	case " ", "enter":
		m.clicked = m.top.itemAt(m.width / 2)
		m.engine.Click()
	case "t":
		m.pref.Mode = m.pref.Mode.Toggle()
		m.save()
	case "c":
		m.pref.Color = nextColor(m.pref.Color)
		m.save()
	}
	return m, nil
}

func (m *previewModel) save() {
	if err := m.store.Save(m.pref); err != nil {
		m.status = "theme not saved: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("theme %s/%s saved", m.pref.Mode, m.pref.Color)
}

func nextColor(c theme.Color) theme.Color {
	for i, col := range theme.Colors {
		if col == c {
			return theme.Colors[(i+1)%len(theme.Colors)]
		}
	}
	return theme.Colors[0]
}

func (m previewModel) View() string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.pref.Color.Palette().Terminal)).Bold(true)
	text := white
	if m.pref.Mode == theme.Light {
		text = ink
	}

	var b strings.Builder
	b.WriteString(accent.Render("My Skills"))
	b.WriteString("\n\n")
	b.WriteString(text.Render(m.top.view(m.width)))
	b.WriteString("\n")
	b.WriteString(text.Render(m.bottom.view(m.width)))
	b.WriteString("\n\n")

	state := func(d marquee.Direction) string {
		if r := m.engine.Row(d); r != nil {
			return r.State().String()
		}
		return marquee.Stopped.String()
	}
	b.WriteString(dim.Render(fmt.Sprintf("top %s  bottom %s", state(marquee.Forward), state(marquee.Reverse))))
	if m.clicked != "" {
		b.WriteString("  ")
		b.WriteString(accent.Render(m.clicked))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(dim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render("1/2 hover row  space click  t mode  c colour  q quit"))
	return b.String()
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, items, err := setup()
	if err != nil {
		return err
	}

	var store theme.Store
	if s, err := theme.OpenGdataStore("marquee"); err != nil {
		log.Printf("theme: %v", err)
		store = theme.NewGdataStore(nil)
	} else {
		store = s
	}
	pref, err := theme.Init(store, true)
	if err != nil {
		log.Printf("theme: %v", err)
	}

	frames := marquee.NewFrameQueue()
	engine := marquee.NewEngine(marquee.Config{
		Speed:      cfg.Marquee.Speed,
		ClickPause: cfg.Marquee.ClickPause(),
		Scheduler:  frames,
		Clock:      marquee.RealClock,
	})
	top := newTextSurface(items, cellWidth)
	bottom := newTextSurface(items, cellWidth)
	engine.Mount(top, bottom)
	defer engine.Unmount()

	p := tea.NewProgram(newPreviewModel(engine, frames, top, bottom, store, pref), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
