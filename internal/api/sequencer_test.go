package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer(t *testing.T) {
	var s Sequencer

	first, ctx1 := s.Next(context.Background())
	assert.True(t, s.Current(first))
	assert.NoError(t, ctx1.Err())

	second, ctx2 := s.Next(context.Background())
	assert.Greater(t, second, first)
	assert.False(t, s.Current(first), "older token is superseded")
	assert.True(t, s.Current(second))
	assert.ErrorIs(t, ctx1.Err(), context.Canceled, "issuing a token cancels the previous request")
	assert.NoError(t, ctx2.Err())
	assert.Equal(t, second, s.Latest())

	s.Done(first)
	assert.NoError(t, ctx2.Err(), "done on a stale token is a no-op")

	s.Done(second)
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.True(t, s.Current(second), "done does not advance the sequence")

	_, ctx3 := s.Next(context.Background())
	s.Stop()
	assert.ErrorIs(t, ctx3.Err(), context.Canceled)
}
