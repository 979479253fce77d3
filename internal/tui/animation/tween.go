package animation

import (
	"math"
	"time"

	tea "charm.land/bubbletea/v2"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(p float64) float64

// EaseOutCubic decelerates towards the end: 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Linear is the identity easing.
func Linear(p float64) float64 { return p }

// Tween interpolates between two values over a duration.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// Progress returns the linear progress at now, clamped to [0,1].
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, p))
}

// At returns the interpolated value at now.
func (t Tween) At(now time.Time) float64 {
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return t.From + (t.To-t.From)*ease(t.Progress(now))
}

// Done reports whether the tween has reached its end at now.
func (t Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Value is a number that animates towards its target through a Handle.
type Value struct {
	handle   Handle
	tween    Tween
	current  float64
	duration time.Duration
	ease     Easing
	enabled  bool
}

// NewValue returns a value animated over duration with ease. When enabled
// is false, Animate jumps straight to the target.
func NewValue(id string, duration time.Duration, ease Easing, enabled bool) Value {
	return Value{
		handle:   NewHandle(id),
		duration: duration,
		ease:     ease,
		enabled:  enabled,
	}
}

// Current returns the displayed value.
func (v Value) Current() float64 { return v.current }

// Target returns the value being animated to.
func (v Value) Target() float64 {
	if v.handle.Active() {
		return v.tween.To
	}
	return v.current
}

// Animating reports whether a run is in progress.
func (v Value) Animating() bool { return v.handle.Active() }

// Handle returns the underlying handle.
func (v Value) Handle() Handle { return v.handle }

// Set jumps to target, cancelling any run.
func (v *Value) Set(target float64) {
	v.handle.Cancel()
	v.current = target
}

// Animate starts a run from the displayed value to target, superseding any
// run in progress. It returns the first frame command, or nil when no
// animation is needed.
func (v *Value) Animate(target float64, now time.Time) tea.Cmd {
	if !v.enabled || v.duration <= 0 || target == v.current {
		v.Set(target)
		return nil
	}
	v.handle.Start()
	v.tween = Tween{From: v.current, To: target, Start: now, Duration: v.duration, Ease: v.ease}
	return v.handle.Frame()
}

// Update advances the value for msg. It returns handled=false for ticks
// that belong to another element or to a superseded run.
func (v *Value) Update(msg TickMsg) (cmd tea.Cmd, handled bool) {
	if !v.handle.Accepts(msg) {
		return nil, false
	}
	v.current = v.tween.At(msg.At)
	if v.tween.Done(msg.At) {
		v.current = v.tween.To
		v.handle.Finish()
		return nil, true
	}
	return v.handle.Frame(), true
}
