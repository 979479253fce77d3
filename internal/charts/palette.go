package charts

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Editorial colours.
const (
	PrimaryColor   = "#00401A"
	SecondaryColor = "#990000"
	TertiaryColor  = "#1C1C1C"
)

// BasePalette is the segment palette of doughnut and pie charts.
var BasePalette = []string{
	"#00401A", "#990000", "#1C1C1C",
	"#5A5A5A", "#E0E0E0", "#425e44",
	"#8B0000", "#2F4F2F", "#696969",
}

// passLighten is how far each extra pass through the palette moves toward white.
const passLighten = 0.3

var white = colorful.Color{R: 1, G: 1, B: 1}

// Palette returns n segment colours. The base palette repeats, blended
// lighter on every pass after the first so neighbouring segments stay
// distinguishable.
func Palette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		base, _ := colorful.Hex(BasePalette[i%len(BasePalette)])
		pass := i / len(BasePalette)
		if pass == 0 {
			out[i] = base
			continue
		}
		t := min(passLighten*float64(pass), 0.8)
		out[i] = base.BlendLab(white, t).Clamped()
	}
	return out
}
