// Package animation provides tick-driven terminal animations. Each animated
// element owns a Handle; restarting or cancelling it bumps a generation so
// ticks scheduled by an earlier run are recognised and dropped.
package animation

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FrameInterval is the tick period of every animation.
const FrameInterval = time.Second / 60

// TickMsg is delivered for one frame of the animation identified by ID.
type TickMsg struct {
	ID  string
	Gen uint64
	At  time.Time
}

// Handle tracks the current run of one animated element.
type Handle struct {
	id     string
	gen    uint64
	active bool
}

// NewHandle returns an idle handle for the element id.
func NewHandle(id string) Handle {
	return Handle{id: id}
}

// ID returns the element id.
func (h Handle) ID() string { return h.id }

// Gen returns the current generation.
func (h Handle) Gen() uint64 { return h.gen }

// Active reports whether a run is in progress.
func (h Handle) Active() bool { return h.active }

// Start begins a new run, invalidating ticks of any earlier run.
func (h *Handle) Start() uint64 {
	h.gen++
	h.active = true
	return h.gen
}

// Cancel ends the current run and invalidates its pending ticks.
func (h *Handle) Cancel() {
	h.gen++
	h.active = false
}

// Finish marks the current run complete without changing the generation.
func (h *Handle) Finish() {
	h.active = false
}

// Accepts reports whether msg belongs to the current, active run.
func (h Handle) Accepts(msg TickMsg) bool {
	return h.active && msg.ID == h.id && msg.Gen == h.gen
}

// Tick schedules the next frame of the current run after d.
func (h Handle) Tick(d time.Duration) tea.Cmd {
	id, gen := h.id, h.gen
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen, At: t}
	})
}

// Frame schedules the next frame after FrameInterval.
func (h Handle) Frame() tea.Cmd {
	return h.Tick(FrameInterval)
}
