package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

const selectMaxVisible = 8

// option is a list entry remembering its position in the unfiltered list.
type option struct {
	label string
	index int
}

func (o option) FilterValue() string { return o.label }

type optionDelegate struct{}

func (optionDelegate) Height() int                           { return 1 }
func (optionDelegate) Spacing() int                          { return 0 }
func (optionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	o, ok := item.(option)
	if !ok {
		return
	}
	if index == m.Index() {
		_, _ = io.WriteString(w, "> "+styles.SelectFieldItemSelectedStyle.Render(o.label))
		return
	}
	_, _ = io.WriteString(w, "  "+styles.TextForegroundStyle.Render(o.label))
}

// SelectField picks one of a fixed set of options, such as the report
// error types. Typing / filters the options.
type SelectField struct {
	base
	list    list.Model
	options []string
	initial int
}

// NewSelectField returns a field over options with s.Default highlighted,
// or the first option when s.Default is not among them.
func NewSelectField(s Spec, options []string) *SelectField {
	items := make([]list.Item, len(options))
	initial := 0
	for i, label := range options {
		items[i] = option{label: label, index: i}
		if label == s.Default {
			initial = i
		}
	}

	l := list.New(items, optionDelegate{}, fieldWidth, max(min(len(options), selectMaxVisible), 1))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(true)
	l.SetShowPagination(len(options) > selectMaxVisible)
	l.Styles.TitleBar = lipgloss.NewStyle()

	l.FilterInput.Prompt = "/ "
	fs := textinput.DefaultStyles(true)
	fs.Focused.Prompt = styles.TextPrimaryStyle
	fs.Cursor.Color = styles.ColorPrimary
	l.FilterInput.SetStyles(fs)

	if len(options) > 0 {
		l.Select(initial)
	}

	return &SelectField{base: base{spec: s}, list: l, options: options, initial: initial}
}

func (f *SelectField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.list, cmd = f.list.Update(msg)
	return f, cmd
}

func (f *SelectField) View() string {
	body := f.list.View()
	if f.list.SettingFilter() {
		body = lipgloss.JoinVertical(lipgloss.Left, f.list.FilterInput.View(), body)
	}
	return f.view(body)
}

func (f *SelectField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *SelectField) Blur() { f.focused = false }

// Value returns the highlighted option, or "" when there are none.
func (f *SelectField) Value() string {
	if i := f.Index(); i >= 0 {
		return f.options[i]
	}
	return ""
}

// Index returns the position of the highlighted option in the unfiltered
// list, or -1 when nothing is highlighted.
func (f *SelectField) Index() int {
	o, ok := f.list.SelectedItem().(option)
	if !ok || o.index >= len(f.options) {
		return -1
	}
	return o.index
}

func (f *SelectField) Reset() {
	f.list.ResetFilter()
	if len(f.options) > 0 {
		f.list.Select(f.initial)
	}
	f.err = ""
}

// IsFiltering reports whether the filter input is active.
func (f *SelectField) IsFiltering() bool {
	return f.list.SettingFilter()
}
