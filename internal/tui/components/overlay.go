// Package components provides reusable TUI components.
package components

import (
	lipgloss "charm.land/lipgloss/v2"
)

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x,y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Centered returns the rectangle of modal centred on a width x height screen.
func Centered(modal string, width, height int) Rect {
	w := lipgloss.Width(modal)
	h := lipgloss.Height(modal)
	return Rect{
		X: max((width-w)/2, 0),
		Y: max((height-h)/2, 0),
		W: w,
		H: h,
	}
}

// Overlay composites modal centred over background and returns the
// composed frame with the modal rectangle.
func Overlay(background, modal string, width, height int) (string, Rect) {
	r := Centered(modal, width, height)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal).X(r.X).Y(r.Y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render(), r
}
