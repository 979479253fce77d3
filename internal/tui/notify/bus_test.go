package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/core/notify"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus()

	var received []notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = append(received, n)
	})

	bus.Errorf("test error: %d", 42)
	bus.Infof("info msg")
	bus.Warnf("warn msg")
	bus.Successf("Tack!")

	require.Len(t, received, 4)
	assert.Equal(t, notify.LevelError, received[0].Level)
	assert.Equal(t, "test error: 42", received[0].Message)
	assert.Equal(t, notify.LevelInfo, received[1].Level)
	assert.Equal(t, notify.LevelWarning, received[2].Level)
	assert.Equal(t, notify.LevelSuccess, received[3].Level)
}

func TestBus_Publish_assigns_ids(t *testing.T) {
	bus := NewBus()

	var ids []int64
	bus.Subscribe(func(n notify.Notification) {
		ids = append(ids, n.ID)
	})

	bus.Infof("a")
	bus.Infof("b")

	assert.Equal(t, []int64{1, 2}, ids)
}

func TestBus_History_returns_newest_first(t *testing.T) {
	bus := NewBus()

	bus.Infof("first")
	bus.Infof("second")
	bus.Infof("third")

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Message)
	assert.Equal(t, "first", history[2].Message)
}

func TestBus_History_is_bounded(t *testing.T) {
	bus := NewBus()

	for i := range historySize + 5 {
		bus.Infof("n%d", i)
	}

	history := bus.History()
	require.Len(t, history, historySize)
	assert.Equal(t, fmt.Sprintf("n%d", historySize+4), history[0].Message)
	assert.Equal(t, "n5", history[historySize-1].Message)
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	bus.Infof("to be cleared")
	bus.Clear()

	assert.Empty(t, bus.History())
}

func TestBus_Publish_sets_created_at(t *testing.T) {
	bus := NewBus()

	var received notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = n
	})

	bus.Infof("timestamp check")
	assert.False(t, received.CreatedAt.IsZero())
}
