package parser

import "strings"

func (p *Parser) parsePragma(pos int) (Declaration, int, error) {
	var words []string
	for {
		at := pos
		word, next := p.next(pos)
		pos = next
		if p.atEnd(word) {
			return Declaration{}, at, p.unexpectedEnd(at, "pragma")
		}
		if word == ";" {
			break
		}
		if isCloser(word) {
			return Declaration{}, at, p.strayCloser(at, word, "pragma")
		}
		words = append(words, word)
	}
	return Declaration{Type: DeclPragma, Content: strings.Join(words, " ")}, pos, nil
}

// parseImport handles the plain, unit-alias, wildcard and symbol-list forms:
//
//	import "p";  import "p" as X;  import * as X from "p";  import {A, B as C} from "p";
//
// The path is kept verbatim, quotes included.
func (p *Parser) parseImport(pos int) (Declaration, int, error) {
	decl := Declaration{Type: DeclImport}
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return Declaration{}, at, p.unexpectedEnd(at, "import")
		case word == ";":
			if decl.From == "" {
				return Declaration{}, at, malformedf(at, "import without a path")
			}
			return decl, pos, nil
		case word == "{":
			p.stack.Push('{')
			symbols, after, err := p.parseImportSymbols(pos)
			if err != nil {
				return Declaration{}, after, err
			}
			decl.Symbols = symbols
			pos = after
		case word == "as":
			alias, after := p.next(pos)
			if p.atEnd(alias) || alias == ";" {
				return Declaration{}, pos, malformedf(pos, "expected alias after as")
			}
			decl.As = alias
			pos = after
		case word == "from":
			path, after := p.next(pos)
			if p.atEnd(path) || path == ";" {
				return Declaration{}, pos, malformedf(pos, "expected path after from")
			}
			decl.From = path
			pos = after
		case word == "*":
		case isCloser(word):
			return Declaration{}, at, p.strayCloser(at, word, "import")
		default:
			if decl.From != "" {
				return Declaration{}, at, malformedf(at, "unexpected %q in import", word)
			}
			decl.From = word
		}
	}
}

func (p *Parser) parseImportSymbols(pos int) ([]ImportSymbol, int, error) {
	var symbols []ImportSymbol
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return nil, at, p.unexpectedEnd(at, "import symbol list")
		case word == "}":
			if err := p.stack.Expect('{', at); err != nil {
				return nil, at, err
			}
			return symbols, pos, nil
		case word == ")" || word == "]":
			return nil, at, p.strayCloser(at, word, "import symbol list")
		case word == ",":
		default:
			sym := ImportSymbol{Name: word}
			if p.peek(pos) == "as" {
				_, pos = p.next(pos)
				alias, after := p.next(pos)
				if p.atEnd(alias) {
					return nil, pos, p.unexpectedEnd(pos, "import symbol list")
				}
				sym.Alias = alias
				pos = after
			}
			symbols = append(symbols, sym)
		}
	}
}

// contractLike builds the shared handler for library, interface and contract.
func (p *Parser) contractLike(kind DeclKind) handler {
	return func(pos int) (Declaration, int, error) {
		decl := Declaration{Type: kind}

		name, next := p.next(pos)
		if isCloser(name) {
			return Declaration{}, pos, p.strayCloser(pos, name, string(kind))
		}
		if p.atEnd(name) || name == "{" || name == ";" {
			return Declaration{}, pos, malformedf(pos, "expected %s name, got %q", kind, name)
		}
		decl.Name = name
		pos = next

		at := pos
		word, next := p.next(pos)
		pos = next
		switch word {
		case "{":
			p.stack.Push('{')
		case "is":
			inheritance, after, err := p.parseInheritance(pos)
			if err != nil {
				return Declaration{}, after, err
			}
			decl.Inheritance = inheritance
			pos = after
		default:
			return Declaration{}, at, malformedf(at, "expected { or is after %s %s, got %q", kind, name, word)
		}

		body, after, err := p.parseBlockBody(pos)
		if err != nil {
			return Declaration{}, after, err
		}
		decl.Body = body
		return decl, after, nil
	}
}

// parseInheritance reads `A, B(args), C {`, pushing the final `{`.
// Base constructor arguments are validated for balance and dropped.
func (p *Parser) parseInheritance(pos int) ([]string, int, error) {
	var bases []string
	for {
		at := pos
		word, next := p.next(pos)
		pos = next

		switch {
		case p.atEnd(word):
			return nil, at, p.unexpectedEnd(at, "inheritance list")
		case word == "{":
			p.stack.Push('{')
			return bases, pos, nil
		case word == ",":
		case word == "(":
			_, after, err := p.parseArgsText(pos)
			if err != nil {
				return nil, after, err
			}
			pos = after
		case isCloser(word):
			return nil, at, p.strayCloser(at, word, "inheritance list")
		default:
			bases = append(bases, word)
		}
	}
}
