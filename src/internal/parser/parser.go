// Package parser turns normalized Solidity source into an ordered list of
// declarations. It works on a whitespace-collapsed buffer terminated by a
// sentinel character (see package normalize) and validates bracket nesting
// with a single shared stack; function bodies are kept as raw text.
package parser

import (
	"fmt"
	"strings"

	"github.com/VectorBits/solo/src/internal/logger"
)

// DefaultSentinel is the end-of-input marker appended by the normalizer.
const DefaultSentinel byte = '$'

// Options tunes parser behaviour.
type Options struct {
	// Sentinel marks the end of the buffer. Zero means DefaultSentinel;
	// other values must satisfy ValidSentinel.
	Sentinel byte
	// KeepUserReturnTypes records non-keyword return types (user-defined
	// structs, contracts, enums) instead of dropping them.
	KeepUserReturnTypes bool
}

type handler func(pos int) (Declaration, int, error)

// Parser holds the state of one parse. It is not reusable: build a new
// instance for every input.
type Parser struct {
	buf      string
	sentinel byte
	end      string
	stack    *BracketStack
	opts     Options
	used     bool
	err      error

	blocks map[string]handler
}

// New creates a parser over content, which must already be normalized. If
// content does not end with the sentinel, " " + sentinel is appended.
func New(content string, opts Options) *Parser {
	if opts.Sentinel == 0 {
		opts.Sentinel = DefaultSentinel
	}
	p := &Parser{
		sentinel: opts.Sentinel,
		end:      string(opts.Sentinel),
		stack:    NewBracketStack(),
		opts:     opts,
	}
	if !ValidSentinel(opts.Sentinel) {
		p.err = fmt.Errorf("%w: %q", ErrInvalidSentinel, opts.Sentinel)
	}
	if !strings.HasSuffix(content, p.end) {
		content += " " + p.end
	}
	p.buf = content
	p.blocks = map[string]handler{
		"pragma":    p.parsePragma,
		"import":    p.parseImport,
		"library":   p.contractLike(DeclLibrary),
		"interface": p.contractLike(DeclInterface),
		"contract":  p.contractLike(DeclContract),
	}
	return p
}

// Parse runs the top-level driver until the sentinel. On failure no
// declarations are returned.
func (p *Parser) Parse() ([]Declaration, error) {
	if p.used {
		return nil, ErrReused
	}
	p.used = true
	if p.err != nil {
		return nil, p.err
	}

	decls := make([]Declaration, 0)
	pos := 0
	for {
		word, next := p.next(pos)
		if p.atEnd(word) {
			pos = next
			break
		}

		h, ok := p.blocks[word]
		if !ok {
			return nil, unknownf(pos, "can't handle top-level word %q", word)
		}

		decl, after, err := h(next)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed %s %s", decl.Type, decl.Name)
		decls = append(decls, decl)
		pos = after
	}

	if p.stack.Depth() != 0 {
		return nil, structuralf(pos, "%d unclosed bracket(s) at end of input", p.stack.Depth())
	}
	return decls, nil
}

// Parse is a convenience for New(content, opts).Parse().
func Parse(content string, opts Options) ([]Declaration, error) {
	return New(content, opts).Parse()
}
