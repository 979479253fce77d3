package directory

// Cursor is the pagination position.
type Cursor struct {
	Page       int
	TotalPages int
}

// NewCursor returns a cursor on the first of one page.
func NewCursor() Cursor {
	return Cursor{Page: 1, TotalPages: 1}
}

// TotalPages returns ceil(total/perPage), at least 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Normalize clamps the cursor so 1 <= Page <= TotalPages.
func (c Cursor) Normalize() Cursor {
	if c.TotalPages < 1 {
		c.TotalPages = 1
	}
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Page > c.TotalPages {
		c.Page = c.TotalPages
	}
	return c
}

// CanPrev reports whether a previous page exists.
func (c Cursor) CanPrev() bool {
	return c.Page > 1
}

// CanNext reports whether a next page exists.
func (c Cursor) CanNext() bool {
	return c.Page < c.TotalPages
}

// Label returns the "Sida X av Y" caption.
func (c Cursor) Label() string {
	return "Sida " + itoa(c.Page) + " av " + itoa(c.TotalPages)
}
