package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestSelectField(t *testing.T) {
	options := []string{"alpha", "beta", "gamma"}
	pick := func(def string, opts []string) *SelectField {
		return NewSelectField(Spec{Key: "pick", Label: "Pick", Default: def}, opts)
	}

	t.Run("creation with no default", func(t *testing.T) {
		f := pick("", options)
		assert.Equal(t, "Pick", f.Spec().Label)
		assert.False(t, f.Focused())
		assert.Equal(t, "alpha", f.Value())
	})

	t.Run("creation with default value", func(t *testing.T) {
		assert.Equal(t, "beta", pick("beta", options).Value())
	})

	t.Run("invalid default falls back to first", func(t *testing.T) {
		assert.Equal(t, "alpha", pick("nonexistent", options).Value())
	})

	t.Run("empty options", func(t *testing.T) {
		assert.Empty(t, pick("", []string{}).Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := pick("", options)
		f.Focus()
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := pick("", options)
		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: 'j'}))
		assert.Equal(t, "alpha", field.Value())
	})

	t.Run("update moves selection when focused", func(t *testing.T) {
		f := pick("", options)
		f.Focus()

		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: 'j'}))
		assert.Equal(t, "beta", field.Value())
	})

	t.Run("is not filtering initially", func(t *testing.T) {
		assert.False(t, pick("", options).IsFiltering())
	})

	t.Run("view shows label", func(t *testing.T) {
		assert.Contains(t, pick("", options).View(), "Pick")
		assert.Contains(t, pick("", []string{}).View(), "Pick")
	})

	t.Run("required marker", func(t *testing.T) {
		f := NewSelectField(Spec{Key: "t", Label: "Typ", Required: true}, options)
		assert.Contains(t, f.View(), "*")
	})

	t.Run("index tracks original position", func(t *testing.T) {
		assert.Equal(t, 2, pick("gamma", options).Index())
		assert.Equal(t, -1, pick("", []string{}).Index())
	})

	t.Run("reset returns to default", func(t *testing.T) {
		f := pick("beta", options)
		f.Focus()
		f.Update(tea.KeyPressMsg(tea.Key{Code: 'j'}))
		assert.Equal(t, "gamma", f.Value())

		f.SetError("fel")
		f.Reset()
		assert.Equal(t, "beta", f.Value())
		assert.NotContains(t, f.View(), "fel")
	})
}
