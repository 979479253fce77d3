// Package form provides the multi-field form dialog and its field types
// used by the report and suggestion modals.
package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields. Fields are addressed by the Key
// of their Spec.
type Dialog struct {
	fields       []Field
	focusedField int
	submitted    bool
	cancelled    bool
	err          string
	Title        string
}

// NewDialog creates a form dialog over fields. The first field is focused
// automatically.
func NewDialog(title string, fields ...Field) *Dialog {
	d := &Dialog{
		fields: fields,
		Title:  title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "ctrl+s":
		d.submitted = true
		return d, nil
	case "enter":
		if d.isMultilineFocused() {
			// Multi-line fields take enter as a newline
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus()
	case "esc":
		if d.isFocusedFieldFiltering() {
			return d.updateFocusedField(msg)
		}
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	var parts []string
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	if d.err != "" {
		parts = append(parts, "", styles.FormErrorStyle.Render(d.err))
	}

	help := styles.FormHelpStyle.Render("tab: nästa  shift+tab: föregående  ctrl+s: skicka  esc: avbryt")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Values returns the field values keyed by Spec.Key.
func (d *Dialog) Values() map[string]string {
	result := make(map[string]string, len(d.fields))
	for _, field := range d.fields {
		result[field.Spec().Key] = field.Value()
	}
	return result
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Resume clears the submitted flag so the form accepts input again after
// a failed submission.
func (d *Dialog) Resume() { d.submitted = false }

// SetError shows msg below the fields. An empty msg clears it.
func (d *Dialog) SetError(msg string) { d.err = msg }

// Error returns the dialog-level error message.
func (d *Dialog) Error() string { return d.err }

// SetFieldErrors replaces the per-field messages, keyed by Spec.Key.
// Fields without an entry are cleared.
func (d *Dialog) SetFieldErrors(errs map[string]string) {
	for _, field := range d.fields {
		field.SetError(errs[field.Spec().Key])
	}
}

// Focus moves focus to the field with the given key.
func (d *Dialog) Focus(key string) tea.Cmd {
	for i, field := range d.fields {
		if field.Spec().Key != key {
			continue
		}
		d.fields[d.focusedField].Blur()
		d.focusedField = i
		return field.Focus()
	}
	return nil
}

// FocusedKey returns the key of the focused field.
func (d *Dialog) FocusedKey() string {
	if len(d.fields) == 0 {
		return ""
	}
	return d.fields[d.focusedField].Spec().Key
}

// Reset restores every field, clears errors and focuses the first field.
func (d *Dialog) Reset() {
	for _, f := range d.fields {
		f.Reset()
		f.Blur()
	}
	d.focusedField = 0
	d.submitted = false
	d.cancelled = false
	d.err = ""
	if len(d.fields) > 0 {
		d.fields[0].Focus()
	}
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		// Past the last field submits
		d.submitted = true
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField = next
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField--
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isMultilineFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	f, ok := d.fields[d.focusedField].(multiline)
	return ok && f.Multiline()
}

func (d *Dialog) isFocusedFieldFiltering() bool {
	if len(d.fields) == 0 {
		return false
	}
	if f, ok := d.fields[d.focusedField].(filterer); ok {
		return f.IsFiltering()
	}
	return false
}
