package tracking

// cursor is a byte position in the source text that keeps line bookkeeping
// up to date as it advances.
type cursor struct {
	src       string
	off       int
	line      int // 1-based
	lineStart int // offset of the first byte of the current line
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1}
}

// eof reports whether the cursor is past the last byte.
func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the current byte, or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}

	return c.src[c.off]
}

// peek2 returns the current and the next byte. ok is false when there is no
// next byte, in which case b1 is 0.
func (c *cursor) peek2() (b0, b1 byte, ok bool) {
	b0 = c.peek()
	if c.off+1 >= len(c.src) {
		return b0, 0, false
	}

	return b0, c.src[c.off+1], true
}

// bump advances one byte and returns it.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}

	b := c.src[c.off]
	c.off++

	if b == '\n' {
		c.line++
		c.lineStart = c.off
	}

	return b
}

// col is the 0-based byte column of the cursor within its line.
func (c *cursor) col() int {
	return c.off - c.lineStart
}
