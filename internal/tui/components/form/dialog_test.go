package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func text(key, label, def string) *TextField {
	return NewTextField(Spec{Key: key, Label: label, Default: def})
}

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := text("name", "Name", "")
		f2 := text("email", "Email", "")
		d := NewDialog("Test", f1, f2)

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty")
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
		assert.Empty(t, d.Values())
		assert.Empty(t, d.FocusedKey())
	})

	t.Run("tab advances focus", func(t *testing.T) {
		f1 := text("a", "A", "")
		f2 := text("b", "B", "")
		f3 := text("c", "C", "")
		d := NewDialog("Test", f1, f2, f3)

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.False(t, f1.Focused())
		assert.True(t, f2.Focused())
		assert.False(t, f3.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.False(t, f2.Focused())
		assert.True(t, f3.Focused())
		assert.Equal(t, "c", d.FocusedKey())
	})

	t.Run("tab past last field submits", func(t *testing.T) {
		d := NewDialog("Test", text("a", "A", ""))

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, d.Submitted())
	})

	t.Run("shift+tab retreats focus", func(t *testing.T) {
		f1 := text("a", "A", "")
		f2 := text("b", "B", "")
		d := NewDialog("Test", f1, f2)

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f2.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
	})

	t.Run("shift+tab on first field stays", func(t *testing.T) {
		f1 := text("a", "A", "")
		d := NewDialog("Test", f1)

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("enter advances focus on single-line field", func(t *testing.T) {
		f1 := text("a", "A", "")
		f2 := text("b", "B", "")
		d := NewDialog("Test", f1, f2)

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.False(t, f1.Focused())
		assert.True(t, f2.Focused())
	})

	t.Run("enter on last single-line field submits", func(t *testing.T) {
		d := NewDialog("Test", text("a", "A", ""))

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, d.Submitted())
	})

	t.Run("enter on textarea does not advance", func(t *testing.T) {
		f1 := NewTextAreaField(Spec{Key: "body", Label: "Body"})
		f2 := text("name", "Name", "")
		d := NewDialog("Test", f1, f2)

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("escape cancels", func(t *testing.T) {
		d := NewDialog("Test", text("a", "A", ""))

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("values are keyed by spec key", func(t *testing.T) {
		d := NewDialog("Test",
			text("company_name", "Företagsnamn", "Acme AB"),
			text("company_website", "Hemsida", "acme.se"),
		)

		assert.Equal(t, map[string]string{
			"company_name":    "Acme AB",
			"company_website": "acme.se",
		}, d.Values())
	})

	t.Run("view renders labels and help", func(t *testing.T) {
		d := NewDialog("Test Form",
			text("name", "Name", ""),
			NewSelectField(Spec{Key: "color", Label: "Color"}, []string{"red", "blue"}),
		)

		view := d.View()
		assert.Contains(t, view, "Name")
		assert.Contains(t, view, "Color")
		assert.Contains(t, view, "tab")
	})

	t.Run("ctrl+s submits from any field", func(t *testing.T) {
		d := NewDialog("Test",
			NewTextAreaField(Spec{Key: "body", Label: "Body"}),
			text("name", "Name", ""),
		)

		d.Update(tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl}))
		assert.True(t, d.Submitted())

		d.Resume()
		assert.False(t, d.Submitted())
	})

	t.Run("field errors and focus", func(t *testing.T) {
		f1 := text("name", "Name", "")
		f2 := text("site", "Site", "")
		d := NewDialog("Test", f1, f2)

		d.SetFieldErrors(map[string]string{"site": "obligatorisk"})
		d.Focus("site")

		assert.Equal(t, "site", d.FocusedKey())
		assert.True(t, f2.Focused())
		assert.False(t, f1.Focused())
		assert.Contains(t, d.View(), "obligatorisk")

		d.SetFieldErrors(nil)
		assert.NotContains(t, d.View(), "obligatorisk")
	})

	t.Run("focus on unknown key keeps focus", func(t *testing.T) {
		f1 := text("name", "Name", "")
		d := NewDialog("Test", f1)

		assert.Nil(t, d.Focus("missing"))
		assert.True(t, f1.Focused())
	})

	t.Run("reset restores initial state", func(t *testing.T) {
		f1 := text("name", "Name", "")
		f2 := text("site", "Site", "default")
		d := NewDialog("Test", f1, f2)

		f1.input.SetValue("typed")
		f2.input.SetValue("changed")
		d.Focus("site")
		d.SetError("Servern svarade inte")
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))

		d.Reset()
		assert.Equal(t, map[string]string{"name": "", "site": "default"}, d.Values())
		assert.Equal(t, "name", d.FocusedKey())
		assert.True(t, f1.Focused())
		assert.False(t, d.Cancelled())
		assert.Empty(t, d.Error())
	})

	t.Run("view with empty dialog", func(t *testing.T) {
		d := NewDialog("Empty")
		assert.Contains(t, d.View(), "tab")
	})
}
