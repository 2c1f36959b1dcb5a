// Package carousel tracks the visible image of a detail page slideshow.
package carousel

// Cursor is a circular index over a fixed image list. On an empty list
// Next and Prev do nothing and Current reports false.
type Cursor struct {
	images []string
	idx    int
}

func New(images []string) *Cursor {
	return &Cursor{images: append([]string(nil), images...)}
}

func (c *Cursor) Len() int   { return len(c.images) }
func (c *Cursor) Index() int { return c.idx }

func (c *Cursor) Current() (string, bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.idx], true
}

func (c *Cursor) Next() {
	if n := len(c.images); n > 0 {
		c.idx = (c.idx + 1) % n
	}
}

func (c *Cursor) Prev() {
	if n := len(c.images); n > 0 {
		c.idx = (c.idx - 1 + n) % n
	}
}
