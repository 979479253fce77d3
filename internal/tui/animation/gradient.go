package animation

import (
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Gradient constants.
const (
	GradientPeriod   = 20 * time.Second
	gradientInterval = 200 * time.Millisecond
)

// GradientStops are the header colours, blended left to right.
var GradientStops = []string{"#f7f4ea", "#ebe7e6", "#ded9e2", "#c0b9dd"}

// Gradient is the slowly shifting header band.
type Gradient struct {
	handle Handle
	stops  []colorful.Color
	start  time.Time
	phase  float64
}

// NewGradient parses the stops. Invalid stops are skipped.
func NewGradient(stops []string) Gradient {
	g := Gradient{handle: NewHandle("gradient")}
	for _, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			continue
		}
		g.stops = append(g.stops, c)
	}
	return g
}

// Active reports whether the band is shifting.
func (g Gradient) Active() bool { return g.handle.Active() }

// Phase returns the current shift in [0,1).
func (g Gradient) Phase() float64 { return g.phase }

// Start begins shifting from now.
func (g *Gradient) Start(now time.Time) tea.Cmd {
	if len(g.stops) < 2 {
		return nil
	}
	g.start = now
	g.handle.Start()
	return g.handle.Tick(gradientInterval)
}

// Stop freezes the band at its current phase.
func (g *Gradient) Stop() {
	g.handle.Cancel()
}

// Update advances the phase. Ticks of a stopped run are ignored.
func (g *Gradient) Update(msg TickMsg) (tea.Cmd, bool) {
	if !g.handle.Accepts(msg) {
		return nil, false
	}
	elapsed := msg.At.Sub(g.start)
	g.phase = math.Mod(float64(elapsed)/float64(GradientPeriod), 1)
	return g.handle.Tick(gradientInterval), true
}

// ColorAt returns the blended colour at horizontal position t in [0,1],
// shifted by the current phase. The band wraps so the shift is seamless.
func (g Gradient) ColorAt(t float64) colorful.Color {
	switch len(g.stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return g.stops[0]
	}

	// Mirror the stops so the colour at 0 equals the colour at 1.
	pos := math.Mod(t+g.phase, 1) * 2
	if pos > 1 {
		pos = 2 - pos
	}

	seg := pos * float64(len(g.stops)-1)
	i := min(int(seg), len(g.stops)-2)
	return g.stops[i].BlendLab(g.stops[i+1], seg-float64(i)).Clamped()
}

// Render paints text centred on a band of width cells.
func (g Gradient) Render(text string, width int, fg string) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(text)
	pad := max((width-len(runes))/2, 0)

	var b strings.Builder
	for x := range width {
		ch := " "
		if i := x - pad; i >= 0 && i < len(runes) {
			ch = string(runes[i])
		}
		bg := g.ColorAt(float64(x) / float64(width))
		style := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
		if fg != "" {
			style = style.Foreground(lipgloss.Color(fg)).Bold(true)
		}
		b.WriteString(style.Render(ch))
	}
	return b.String()
}
