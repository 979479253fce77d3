package api

import (
	"context"
	"sync"
)

// Sequencer orders list requests so only the most recently issued one can
// be delivered. Issuing a new token cancels the previous request's context.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// Next issues a new token and a context derived from parent that is
// cancelled when a newer token is issued or Done is called.
func (s *Sequencer) Next(parent context.Context) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	s.latest++
	s.cancel = cancel
	return s.latest, ctx
}

// Current reports whether token is still the latest issued token.
func (s *Sequencer) Current(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.latest
}

// Latest returns the most recently issued token.
func (s *Sequencer) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Done releases the context of token if it is still the latest.
func (s *Sequencer) Done(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.latest && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Stop cancels any in-flight request.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
