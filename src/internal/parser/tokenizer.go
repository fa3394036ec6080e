package parser

// next reads the word starting at pos, skipping leading spaces. Single
// character tokens (`;`, `,`, limiters) are consumed; multi-character words
// leave the cursor on their terminator. The sentinel is returned without
// advancing, so a caller that sees it must stop.
func (p *Parser) next(pos int) (string, int) {
	for p.buf[pos] == ' ' {
		pos++
	}

	c := p.buf[pos]
	switch {
	case c == p.sentinel:
		return p.end, pos
	case c == ';' || c == ',' || isLimiter(c):
		return p.buf[pos : pos+1], pos + 1
	}

	start := pos
	for !p.isTerminator(p.buf[pos]) {
		pos++
	}
	return p.buf[start:pos], pos
}

// peek performs the same scan as next without committing to it.
func (p *Parser) peek(pos int) string {
	word, _ := p.next(pos)
	return word
}

func (p *Parser) isTerminator(c byte) bool {
	return c == ' ' || c == ';' || c == ',' || c == p.sentinel || isLimiter(c)
}

func (p *Parser) atEnd(word string) bool {
	return word == p.end
}

func (p *Parser) unexpectedEnd(pos int, construct string) error {
	return structuralf(pos, "unexpected end of input in %s", construct)
}

// strayCloser fails on a closing bracket the current construct does not
// accept, naming the opener it would have had to match.
func (p *Parser) strayCloser(at int, word, construct string) error {
	if top, err := p.stack.Peek(at); err == nil {
		return structuralf(at, "unexpected %q in %s, open bracket is %q", word, construct, top)
	}
	return structuralf(at, "unexpected %q in %s", word, construct)
}
