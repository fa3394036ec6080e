package parser

import "strings"

// captureRaw scans characters from pos until closer is met while the stack is
// back at depth, the depth recorded right after the matching opener was
// pushed. Every bracket in between is pushed or popped, so nested spans only
// need to balance. The closer is consumed and its opener popped; the span is
// returned trimmed of surrounding spaces.
func (p *Parser) captureRaw(pos int, closer byte, depth int) (string, int, error) {
	start := pos
	for {
		c := p.buf[pos]
		switch {
		case c == p.sentinel:
			return "", pos, p.unexpectedEnd(pos, "raw block")
		case c == closer && p.stack.Depth() == depth:
			if err := p.stack.Expect(openerOf(closer), pos); err != nil {
				return "", pos, err
			}
			return strings.Trim(p.buf[start:pos], " "), pos + 1, nil
		case c == '(' || c == '[' || c == '{':
			p.stack.Push(c)
		case c == ')' || c == ']' || c == '}':
			if err := p.stack.Expect(openerOf(c), pos); err != nil {
				return "", pos, err
			}
		}
		pos++
	}
}

// parseBlockText pushes the `{` just consumed and captures the block.
func (p *Parser) parseBlockText(pos int) (*string, int, error) {
	p.stack.Push('{')
	text, pos, err := p.captureRaw(pos, '}', p.stack.Depth())
	if err != nil {
		return nil, pos, err
	}
	return &text, pos, nil
}

// parseArgsText pushes the `(` just consumed and captures up to its `)`.
func (p *Parser) parseArgsText(pos int) (string, int, error) {
	p.stack.Push('(')
	return p.captureRaw(pos, ')', p.stack.Depth())
}
