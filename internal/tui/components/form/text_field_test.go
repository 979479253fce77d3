package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("creation with defaults", func(t *testing.T) {
		f := NewTextField(Spec{Key: "name", Label: "Name", Placeholder: "enter name"})
		assert.Equal(t, "Name", f.Spec().Label)
		assert.Equal(t, "name", f.Spec().Key)
		assert.Empty(t, f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := text("name", "Name", "hello")
		assert.Equal(t, "hello", f.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := text("name", "Name", "")
		assert.NotNil(t, f.Focus())
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := text("name", "Name", "")
		field, cmd := f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("typing when focused", func(t *testing.T) {
		f := text("name", "Name", "")
		f.Focus()
		f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		assert.Equal(t, "a", f.Value())
	})

	t.Run("view changes with focus", func(t *testing.T) {
		f := text("name", "Name", "")
		unfocused := f.View()
		assert.Contains(t, unfocused, "Name")

		f.Focus()
		assert.NotEqual(t, unfocused, f.View())
	})

	t.Run("error shown under field until reset", func(t *testing.T) {
		f := text("name", "Name", "")
		f.SetError("Fältet är obligatoriskt")
		assert.Contains(t, f.View(), "Fältet är obligatoriskt")

		f.Reset()
		assert.NotContains(t, f.View(), "Fältet är obligatoriskt")
	})

	t.Run("reset restores default", func(t *testing.T) {
		f := text("name", "Name", "start")
		f.input.SetValue("changed")
		f.Reset()
		assert.Equal(t, "start", f.Value())
	})
}
