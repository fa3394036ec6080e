package parser

// parseBlockBody reads members until the `}` closing the library, interface
// or contract whose `{` is already on the stack.
func (p *Parser) parseBlockBody(pos int) (*Body, int, error) {
	body := &Body{}
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		var err error
		switch {
		case p.atEnd(word):
			return nil, at, p.unexpectedEnd(at, "block body")
		case word == "}":
			if err := p.stack.Expect('{', at); err != nil {
				return nil, at, err
			}
			return body, pos, nil
		case word == ")" || word == "]":
			err = p.strayCloser(at, word, "block body")
		case word == ";":
		case IsType(word):
			var v Variable
			v, pos, err = p.parseVariable(pos, word)
			body.Variables = append(body.Variables, v)
		case word == "using":
			var u Using
			u, pos, err = p.parseUsing(pos)
			body.Usings = append(body.Usings, u)
		case word == "mapping":
			var m Mapping
			m, pos, err = p.parseMapping(pos)
			body.Mappings = append(body.Mappings, m)
		case word == "event":
			var e Event
			e, pos, err = p.parseEvent(pos, "event")
			body.Events = append(body.Events, e)
		case word == "error" && p.peek(pos) != "(":
			var e Event
			e, pos, err = p.parseEvent(pos, "error")
			body.Errors = append(body.Errors, e)
		case word == "modifier":
			var m Modifier
			m, pos, err = p.parseModifier(pos)
			body.Modifiers = append(body.Modifiers, m)
		case word == "function":
			var f Function
			f, pos, err = p.parseFunction(pos, "")
			body.Functions = append(body.Functions, f)
		case (word == "fallback" || word == "receive") && p.peek(pos) == "(":
			var f Function
			f, pos, err = p.parseFunction(pos, word)
			body.Functions = append(body.Functions, f)
		case word == "struct":
			var s Struct
			s, pos, err = p.parseStruct(pos)
			body.Structs = append(body.Structs, s)
		case word == "constructor":
			var c Constructor
			c, pos, err = p.parseConstructor(pos)
			body.Constructor = &c
		case word == "enum":
			var e Enum
			e, pos, err = p.parseEnum(pos)
			body.Enums = append(body.Enums, e)
		default:
			// Unknown leading words are user-defined types (structs,
			// contracts, enums) declaring a state variable.
			var v Variable
			v, pos, err = p.parseVariable(pos, word)
			body.Variables = append(body.Variables, v)
		}
		if err != nil {
			return nil, pos, err
		}
	}
}

// parseFunction reads a function after its keyword. name is preset for
// fallback/receive declared without the function keyword.
func (p *Parser) parseFunction(pos int, name string) (Function, int, error) {
	fn := Function{Type: "function", Name: name}

	if fn.Name == "" {
		if p.peek(pos) == "(" {
			fn.Name = "fallback"
		} else {
			at := pos
			fn.Name, pos = p.next(pos)
			if p.atEnd(fn.Name) {
				return fn, pos, p.unexpectedEnd(pos, "function")
			}
			if isCloser(fn.Name) {
				return fn, at, p.strayCloser(at, fn.Name, "function header")
			}
		}
	}

	word, next := p.next(pos)
	if word != "(" {
		return fn, pos, malformedf(pos, "expected ( after function %s, got %q", fn.Name, word)
	}
	p.stack.Push('(')
	params, pos, err := p.parseParameters(next)
	if err != nil {
		return fn, pos, err
	}
	fn.Parameters = params

	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return fn, at, p.unexpectedEnd(at, "function "+fn.Name)
		case word == "returns":
			fn.Returns, pos, err = p.parseReturns(pos)
			if err != nil {
				return fn, pos, err
			}
		case word == ";":
			return fn, pos, nil
		case word == "{":
			fn.Body, pos, err = p.parseBlockText(pos)
			return fn, pos, err
		case word == "(":
			fn.Modifiers, pos, err = p.attachArgs(fn.Modifiers, pos)
			if err != nil {
				return fn, pos, err
			}
		case isCloser(word):
			return fn, at, p.strayCloser(at, word, "function "+fn.Name)
		default:
			fn.Modifiers = append(fn.Modifiers, word)
		}
	}
}

func (p *Parser) parseConstructor(pos int) (Constructor, int, error) {
	ctor := Constructor{Type: "constructor"}

	word, next := p.next(pos)
	if word != "(" {
		return ctor, pos, malformedf(pos, "expected ( after constructor, got %q", word)
	}
	p.stack.Push('(')
	params, pos, err := p.parseParameters(next)
	if err != nil {
		return ctor, pos, err
	}
	ctor.Parameters = params

	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return ctor, at, p.unexpectedEnd(at, "constructor")
		case word == ";":
			return ctor, pos, nil
		case word == "{":
			ctor.Body, pos, err = p.parseBlockText(pos)
			return ctor, pos, err
		case word == "(":
			ctor.Modifiers, pos, err = p.attachArgs(ctor.Modifiers, pos)
			if err != nil {
				return ctor, pos, err
			}
		case isCloser(word):
			return ctor, at, p.strayCloser(at, word, "constructor")
		default:
			ctor.Modifiers = append(ctor.Modifiers, word)
		}
	}
}

func (p *Parser) parseModifier(pos int) (Modifier, int, error) {
	mod := Modifier{Type: "modifier"}

	at := pos
	mod.Name, pos = p.next(pos)
	if p.atEnd(mod.Name) {
		return mod, pos, p.unexpectedEnd(pos, "modifier")
	}
	if isCloser(mod.Name) {
		return mod, at, p.strayCloser(at, mod.Name, "modifier header")
	}

	var err error
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return mod, at, p.unexpectedEnd(at, "modifier "+mod.Name)
		case word == ";":
			return mod, pos, nil
		case word == "(":
			p.stack.Push('(')
			mod.Parameters, pos, err = p.parseParameters(pos)
			if err != nil {
				return mod, pos, err
			}
		case word == "{":
			mod.Body, pos, err = p.parseBlockText(pos)
			return mod, pos, err
		case isCloser(word):
			return mod, at, p.strayCloser(at, word, "modifier "+mod.Name)
		default:
			mod.Modifiers = append(mod.Modifiers, word)
		}
	}
}

// attachArgs captures the argument span of a modifier invocation such as
// onlyRole(ADMIN) and folds it into the last collected modifier.
func (p *Parser) attachArgs(modifiers []string, pos int) ([]string, int, error) {
	args, pos, err := p.parseArgsText(pos)
	if err != nil {
		return modifiers, pos, err
	}
	call := "(" + args + ")"
	if n := len(modifiers); n > 0 {
		modifiers[n-1] += call
		return modifiers, pos, nil
	}
	return append(modifiers, call), pos, nil
}

// parseEvent reads an event or custom error declaration; kind is the tag
// stored on the node.
func (p *Parser) parseEvent(pos int, kind string) (Event, int, error) {
	ev := Event{Type: kind}

	at := pos
	ev.Name, pos = p.next(pos)
	if p.atEnd(ev.Name) {
		return ev, pos, p.unexpectedEnd(pos, kind)
	}
	if isCloser(ev.Name) {
		return ev, at, p.strayCloser(at, ev.Name, kind)
	}

	var err error
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return ev, at, p.unexpectedEnd(at, kind+" "+ev.Name)
		case word == ";":
			return ev, pos, nil
		case word == "(":
			p.stack.Push('(')
			ev.Parameters, pos, err = p.parseParameters(pos)
			if err != nil {
				return ev, pos, err
			}
		case isCloser(word):
			return ev, at, p.strayCloser(at, word, kind+" "+ev.Name)
		}
	}
}

// parseVariable reads a state variable whose type word was already consumed.
// A `}` ends the declaration without being consumed so the enclosing block
// can close.
func (p *Parser) parseVariable(pos int, typ string) (Variable, int, error) {
	v := Variable{Type: typ}
	for {
		at := pos
		word, next := p.next(pos)

		switch {
		case p.atEnd(word):
			return v, at, p.unexpectedEnd(at, "variable")
		case word == ";":
			return v, next, nil
		case word == "}":
			return v, at, nil
		case word == ")":
			return v, at, p.strayCloser(at, word, "variable")
		case word == "[":
			p.stack.Push('[')
			v.Modifiers = append(v.Modifiers, "array")
		case word == "]":
			if err := p.stack.Expect('[', at); err != nil {
				return v, at, err
			}
		case IsReserved(word):
			v.Modifiers = append(v.Modifiers, word)
		case word == "=":
			value, after, err := p.readStatement(next)
			if err != nil {
				return v, after, err
			}
			v.DefaultValue = value
			return v, after, nil
		default:
			v.Name = word
		}
		pos = next
	}
}

// readStatement returns the raw text from pos through the next `;`. When a
// `}` comes first the value is absent and the `}` is left for the caller.
func (p *Parser) readStatement(pos int) (string, int, error) {
	for p.buf[pos] == ' ' {
		pos++
	}
	if p.buf[pos] == '}' {
		return "", pos, nil
	}

	start := pos
	for p.buf[pos] != ';' {
		if p.buf[pos] == p.sentinel {
			return "", pos, p.unexpectedEnd(pos, "initializer")
		}
		pos++
	}
	return p.buf[start : pos+1], pos + 1, nil
}

func (p *Parser) parseUsing(pos int) (Using, int, error) {
	u := Using{Type: "using"}

	at := pos
	u.From, pos = p.next(pos)
	if isCloser(u.From) {
		return u, at, p.strayCloser(at, u.From, "using")
	}
	if p.atEnd(u.From) || u.From == ";" {
		return u, pos, malformedf(pos, "expected library name after using")
	}

	word, next := p.next(pos)
	if word != "for" {
		return u, pos, malformedf(pos, "expected for in using %s, got %q", u.From, word)
	}
	pos = next

	at = pos
	u.Target, pos = p.next(pos)
	if isCloser(u.Target) {
		return u, at, p.strayCloser(at, u.Target, "using")
	}
	if p.atEnd(u.Target) || u.Target == ";" {
		return u, pos, malformedf(pos, "expected target type in using %s", u.From)
	}

	word, next = p.next(pos)
	if word == "global" {
		word, next = p.next(next)
	}
	if word != ";" {
		return u, pos, malformedf(pos, "expected ; after using %s for %s, got %q", u.From, u.Target, word)
	}
	return u, next, nil
}

// parseMapping consumes a mapping declaration through its `;`. The last
// plain word before the `;` is the name.
func (p *Parser) parseMapping(pos int) (Mapping, int, error) {
	m := Mapping{Type: "mapping"}
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return m, at, p.unexpectedEnd(at, "mapping")
		case word == ";":
			return m, pos, nil
		case word == "(":
			p.stack.Push('(')
		case word == ")":
			if err := p.stack.Expect('(', at); err != nil {
				return m, at, err
			}
		case word == "[":
			p.stack.Push('[')
		case word == "]":
			if err := p.stack.Expect('[', at); err != nil {
				return m, at, err
			}
		case word == "}":
			return m, at, p.strayCloser(at, word, "mapping")
		case word == "mapping", IsType(word):
		default:
			m.Name = word
		}
	}
}

func (p *Parser) parseStruct(pos int) (Struct, int, error) {
	s := Struct{Type: "struct"}

	at := pos
	s.Name, pos = p.next(pos)
	if p.atEnd(s.Name) {
		return s, pos, p.unexpectedEnd(pos, "struct")
	}
	if isCloser(s.Name) {
		return s, at, p.strayCloser(at, s.Name, "struct")
	}

	word, next := p.next(pos)
	if word != "{" {
		return s, pos, malformedf(pos, "expected { after struct %s, got %q", s.Name, word)
	}
	p.stack.Push('{')
	pos = next

	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return s, at, p.unexpectedEnd(at, "struct "+s.Name)
		case word == "}":
			if err := p.stack.Expect('{', at); err != nil {
				return s, at, err
			}
			return s, pos, nil
		case word == ")" || word == "]":
			return s, at, p.strayCloser(at, word, "struct "+s.Name)
		case word == ";":
		case word == "mapping":
			m, after, err := p.parseMapping(pos)
			if err != nil {
				return s, after, err
			}
			s.Fields = append(s.Fields, StructField{Type: m.Type, Name: m.Name})
			pos = after
		default:
			field, after, err := p.parseField(pos, word)
			if err != nil {
				return s, after, err
			}
			s.Fields = append(s.Fields, field)
			pos = after
		}
	}
}

// parseField reads the rest of a struct field after its type word, leaving
// the cursor on the terminating `;`.
func (p *Parser) parseField(pos int, typ string) (StructField, int, error) {
	f := StructField{Type: typ}
	inArray := false
	for {
		at := pos
		word, next := p.next(pos)

		switch {
		case p.atEnd(word):
			return f, at, p.unexpectedEnd(at, "struct field")
		case word == ";" || word == "}":
			return f, at, nil
		case word == ")":
			return f, at, p.strayCloser(at, word, "struct field")
		case word == "[":
			p.stack.Push('[')
			f.Modifiers = append(f.Modifiers, "array")
			f.Dims = append(f.Dims, "")
			inArray = true
		case word == "]":
			if err := p.stack.Expect('[', at); err != nil {
				return f, at, err
			}
			inArray = false
		case inArray:
			f.Dims[len(f.Dims)-1] += word
		default:
			f.Name = word
		}
		pos = next
	}
}

func (p *Parser) parseEnum(pos int) (Enum, int, error) {
	e := Enum{Type: "enum"}

	at := pos
	e.Name, pos = p.next(pos)
	if p.atEnd(e.Name) {
		return e, pos, p.unexpectedEnd(pos, "enum")
	}
	if isCloser(e.Name) {
		return e, at, p.strayCloser(at, e.Name, "enum")
	}

	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return e, at, p.unexpectedEnd(at, "enum "+e.Name)
		case word == "{":
			p.stack.Push('{')
		case word == "}":
			if err := p.stack.Expect('{', at); err != nil {
				return e, at, err
			}
			return e, pos, nil
		case word == ")" || word == "]":
			return e, at, p.strayCloser(at, word, "enum "+e.Name)
		case word == ",":
		default:
			e.Definitions = append(e.Definitions, word)
		}
	}
}
