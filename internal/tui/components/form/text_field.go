package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// TextField is a single-line input, used for company names and websites.
type TextField struct {
	base
	input textinput.Model
}

// NewTextField returns an unfocused single-line field holding s.Default.
func NewTextField(s Spec) *TextField {
	ti := textinput.New()
	ti.Placeholder = s.Placeholder
	ti.Prompt = ""
	ti.SetWidth(fieldWidth)
	ti.SetValue(s.Default)

	st := textinput.DefaultStyles(true)
	st.Cursor.Color = styles.ColorPrimary
	st.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	st.Blurred.Placeholder = st.Focused.Placeholder
	ti.SetStyles(st)

	return &TextField{base: base{spec: s}, input: ti}
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string { return f.view(f.input.View()) }

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextField) Value() string { return f.input.Value() }

func (f *TextField) Reset() {
	f.input.SetValue(f.spec.Default)
	f.err = ""
}
