package charts

import "sync"

// Chart is a rendered chart bound to a canvas id.
type Chart struct {
	spec     Spec
	width    int
	view     string
	disposed bool
}

// Spec returns the chart's data.
func (c *Chart) Spec() Spec { return c.spec }

// View returns the rendered chart, or "" once disposed.
func (c *Chart) View() string {
	if c.disposed {
		return ""
	}
	return c.view
}

// Disposed reports whether the chart has been destroyed.
func (c *Chart) Disposed() bool { return c.disposed }

func (c *Chart) dispose() {
	c.disposed = true
	c.view = ""
}

// Registry holds at most one live chart per canvas id.
type Registry struct {
	mu     sync.Mutex
	charts map[string]*Chart
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{charts: make(map[string]*Chart)}
}

// Render disposes any chart bound to spec.CanvasID and binds a new one
// drawn at width.
func (r *Registry) Render(spec Spec, width int) *Chart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.charts[spec.CanvasID]; ok {
		prev.dispose()
	}

	c := &Chart{spec: spec, width: width, view: Draw(spec, width)}
	r.charts[spec.CanvasID] = c
	return c
}

// Get returns the live chart for a canvas id.
func (r *Registry) Get(canvasID string) (*Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.charts[canvasID]
	return c, ok
}

// Resize redraws every live chart at a new width.
func (r *Registry) Resize(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.charts {
		if c.width != width {
			c.width = width
			c.view = Draw(c.spec, width)
		}
	}
}

// DestroyAll disposes every chart.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.charts {
		c.dispose()
		delete(r.charts, id)
	}
}

// Len returns the number of live charts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}
