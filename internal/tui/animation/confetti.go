package animation

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
)

// Confetti constants.
const (
	ConfettiPieces   = 30
	ConfettiLifetime = 2 * time.Second
	confettiGlyph    = "▪"
)

// ConfettiColors are the piece colours.
var ConfettiColors = []string{"#ff6b6b", "#ffd93d", "#6bcf7f", "#4d96ff", "#c77dff"}

// Piece is one confetti fragment travelling from the burst origin to its
// landing offset.
type Piece struct {
	DX, DY float64
	Color  string
}

// Confetti is a burst of pieces thrown from the centre of the screen.
type Confetti struct {
	handle Handle
	pieces []Piece
	start  time.Time
	now    time.Time
	width  int
	height int
}

// NewConfetti returns an idle burst.
func NewConfetti() Confetti {
	return Confetti{handle: NewHandle("confetti")}
}

// Active reports whether a burst is on screen.
func (c Confetti) Active() bool { return c.handle.Active() }

// Pieces returns the pieces of the current burst.
func (c Confetti) Pieces() []Piece { return c.pieces }

// Burst throws a new set of pieces for a width x height screen, replacing
// any burst still in flight.
func (c *Confetti) Burst(width, height int, now time.Time, rng *rand.Rand) tea.Cmd {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)) //nolint:gosec // decorative
	}

	c.width, c.height = width, height
	c.start, c.now = now, now
	c.pieces = make([]Piece, ConfettiPieces)

	spreadX := float64(width) / 2
	for i := range c.pieces {
		c.pieces[i] = Piece{
			DX:    (rng.Float64() - 0.5) * spreadX,
			DY:    rng.Float64()*float64(height)/3 + float64(height)/8,
			Color: ConfettiColors[rng.IntN(len(ConfettiColors))],
		}
	}

	c.handle.Start()
	return c.handle.Frame()
}

// Update advances the burst. Ticks of superseded bursts are ignored.
func (c *Confetti) Update(msg TickMsg) (tea.Cmd, bool) {
	if !c.handle.Accepts(msg) {
		return nil, false
	}
	c.now = msg.At
	if msg.At.Sub(c.start) >= ConfettiLifetime {
		c.Stop()
		return nil, true
	}
	return c.handle.Frame(), true
}

// Stop removes the burst from the screen.
func (c *Confetti) Stop() {
	c.handle.Cancel()
	c.pieces = nil
}

// Placed is a piece at its cell for the current frame.
type Placed struct {
	X, Y  int
	Color string
}

// Positions returns the on-screen pieces at the current frame.
func (c Confetti) Positions() []Placed {
	if !c.Active() {
		return nil
	}

	tw := Tween{From: 0, To: 1, Start: c.start, Duration: ConfettiLifetime, Ease: EaseOutCubic}
	p := tw.At(c.now)
	cx, cy := float64(c.width)/2, float64(c.height)/3

	out := make([]Placed, 0, len(c.pieces))
	for _, piece := range c.pieces {
		x := int(cx + piece.DX*p)
		y := int(cy + piece.DY*p)
		if x < 0 || y < 0 || x >= c.width || y >= c.height {
			continue
		}
		out = append(out, Placed{X: x, Y: y, Color: piece.Color})
	}
	return out
}

// Layers returns one compositor layer per visible piece at depth z.
func (c Confetti) Layers(z int) []*lipgloss.Layer {
	placed := c.Positions()
	layers := make([]*lipgloss.Layer, 0, len(placed))
	for _, p := range placed {
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(confettiGlyph)
		layers = append(layers, lipgloss.NewLayer(glyph).X(p.X).Y(p.Y).Z(z))
	}
	return layers
}
