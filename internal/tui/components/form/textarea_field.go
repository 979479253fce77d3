package form

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

const textAreaHeight = 4

// TextAreaField is a multi-line input for report descriptions and free
// text. Enter inserts a newline instead of moving focus.
type TextAreaField struct {
	base
	input textarea.Model
}

// NewTextAreaField returns an unfocused multi-line field holding s.Default.
func NewTextAreaField(s Spec) *TextAreaField {
	ta := textarea.New()
	ta.Placeholder = s.Placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(textAreaHeight)
	ta.SetWidth(fieldWidth)
	ta.SetValue(s.Default)

	return &TextAreaField{base: base{spec: s}, input: ta}
}

func (f *TextAreaField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextAreaField) View() string { return f.view(f.input.View()) }

func (f *TextAreaField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextAreaField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextAreaField) Value() string   { return f.input.Value() }
func (f *TextAreaField) Multiline() bool { return true }

func (f *TextAreaField) Reset() {
	f.input.SetValue(f.spec.Default)
	f.err = ""
}
