package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultDeferredLimit caps a DeferredWriter created with a zero Limit.
const DefaultDeferredLimit = 64 << 10

// DeferredWriter holds writes in memory until Flush is called. Whole writes
// beyond Limit bytes are dropped and counted. Safe for concurrent use.
type DeferredWriter struct {
	// Limit is the maximum number of buffered bytes. Zero uses DefaultDeferredLimit.
	Limit int

	mu      sync.Mutex
	buf     bytes.Buffer
	dropped int
}

// Write stores p unless it would exceed the limit. It never fails, so a
// full buffer cannot break the logger writing into it.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	limit := d.Limit
	if limit <= 0 {
		limit = DefaultDeferredLimit
	}
	if d.buf.Len()+len(p) > limit {
		d.dropped++
		return len(p), nil
	}
	return d.buf.Write(p)
}

// Flush writes the buffered data to w, followed by a note when writes were
// dropped, and resets the writer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dropped := d.dropped
	d.dropped = 0

	if d.buf.Len() > 0 {
		if _, err := d.buf.WriteTo(w); err != nil {
			return err
		}
	}
	if dropped > 0 {
		if _, err := fmt.Fprintf(w, "(%d further log lines dropped)\n", dropped); err != nil {
			return err
		}
	}
	return nil
}
