package parser

// parseParameters reads a parameter list whose `(` has already been pushed.
//
// The grammar is not LL(1) over identifiers: in `(MyStruct memory s)` the
// word MyStruct is a type only because the word after it is not `,` or `)`.
// One word of lookahead settles every identifier as a name or a type.
func (p *Parser) parseParameters(pos int) ([]Parameter, int, error) {
	var (
		params    []Parameter
		typ       string
		modifiers []string
		dims      []string
		inArray   bool
	)

	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return nil, at, p.unexpectedEnd(at, "parameter list")
		case word == ")":
			if err := p.stack.Expect('(', at); err != nil {
				return nil, at, err
			}
			return params, pos, nil
		case word == "}":
			return nil, at, p.strayCloser(at, word, "parameter list")
		case word == "[":
			p.stack.Push('[')
			modifiers = append(modifiers, "array")
			dims = append(dims, "")
			inArray = true
		case word == "]":
			if err := p.stack.Expect('[', at); err != nil {
				return nil, at, err
			}
			inArray = false
		case inArray:
			// length of a fixed-size array, e.g. uint[3] or bytes32[N]
			dims[len(dims)-1] += word
		case word == ",":
		case word == "(":
			// type suffix such as mapping(address => uint) or function(uint)
			args, after, err := p.parseArgsText(pos)
			if err != nil {
				return nil, after, err
			}
			typ += "(" + args + ")"
			pos = after
		case IsType(word):
			typ = word
			modifiers = nil
			dims = nil
		case IsReserved(word):
			modifiers = append(modifiers, word)
		default:
			if la := p.peek(pos); la == "," || la == ")" {
				params = append(params, Parameter{Type: typ, Name: word, Modifiers: modifiers, Dims: dims})
				continue
			}
			typ = word
			modifiers = nil
			dims = nil
		}
	}
}

// parseReturns reads `(type, ...)` after the returns keyword. Only elementary
// type keywords are kept unless KeepUserReturnTypes is set, in which case the
// first non-reserve word of every slot is kept as its type.
func (p *Parser) parseReturns(pos int) ([]string, int, error) {
	word, next := p.next(pos)
	if word != "(" {
		return nil, pos, malformedf(pos, "expected ( after returns, got %q", word)
	}
	p.stack.Push('(')
	pos = next

	var (
		returns  []string
		slotOpen = true
	)
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return nil, at, p.unexpectedEnd(at, "returns list")
		case word == ")":
			if err := p.stack.Expect('(', at); err != nil {
				return nil, at, err
			}
			return returns, pos, nil
		case word == ",":
			slotOpen = true
		case word == "}":
			return nil, at, p.strayCloser(at, word, "returns list")
		case word == "[":
			p.stack.Push('[')
		case word == "]":
			if err := p.stack.Expect('[', at); err != nil {
				return nil, at, err
			}
		case IsType(word):
			returns = append(returns, word)
			slotOpen = false
		case IsReserved(word):
		default:
			if p.opts.KeepUserReturnTypes && slotOpen {
				returns = append(returns, word)
				slotOpen = false
			}
		}
	}
}
