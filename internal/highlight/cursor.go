package highlight

// cursor walks a source string byte by byte
type cursor struct {
	src string
	off int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the current byte, or 0 at end of input
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peek2 returns the current and next byte
func (c *cursor) peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= len(c.src) {
		return 0, 0, false
	}
	return c.src[c.off], c.src[c.off+1], true
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// skipUntil advances to the first occurrence of b, or to end of input
func (c *cursor) skipUntil(b byte) {
	for !c.eof() && c.src[c.off] != b {
		c.off++
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
