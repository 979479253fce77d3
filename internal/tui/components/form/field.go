package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

const fieldWidth = 48

// Spec describes a form field. Key names the value in Dialog.Values and
// matches the field name used by validation errors.
type Spec struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
	Required    bool
}

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Spec() Spec
	// SetError shows msg under the field. An empty msg clears it.
	SetError(msg string)
	// Reset restores the default value and clears any error.
	Reset()
}

// multiline is implemented by fields that take enter as input.
type multiline interface {
	Multiline() bool
}

// filterer is implemented by fields that can be in a filtering mode where
// esc belongs to the field.
type filterer interface {
	IsFiltering() bool
}

// base holds the state shared by every field type.
type base struct {
	spec    Spec
	err     string
	focused bool
}

func (b *base) Spec() Spec          { return b.spec }
func (b *base) Focused() bool       { return b.focused }
func (b *base) SetError(msg string) { b.err = msg }

// view draws the label, body and error of a field inside its border.
func (b *base) view(body string) string {
	titleStyle := styles.TextMutedStyle
	borderStyle := styles.FormFieldStyle
	if b.focused {
		titleStyle = styles.FormTitleStyle
		borderStyle = styles.FormFieldFocusedStyle
	}

	title := titleStyle.Render(b.spec.Label)
	if b.spec.Required {
		title += styles.FormErrorStyle.Render(" *")
	}

	parts := []string{title, body}
	if b.err != "" {
		parts = append(parts, styles.FormErrorStyle.Render(b.err))
	}
	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
