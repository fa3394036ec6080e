package parser

import (
	"strconv"
	"strings"
)

// reserveWords are recognized as modifiers (visibility, mutability, storage
// location, ...) rather than types.
var reserveWords = toSet(
	"pragma", "library", "contract", "is",
	"function", "event", "emit", "modifier",
	"return", "public", "private", "const",
	"external", "internal", "payable", "assert",
	"require", "throw", "import", "as",
	"indexed", "pure", "view", "memory",
	"storage", "calldata",
	"constant", "immutable", "virtual", "override",
	"anonymous",
)

var typeWords = buildTypeWords()

func buildTypeWords() map[string]struct{} {
	words := toSet("address", "bool", "string", "var", "int", "uint", "byte", "bytes")
	for bits := 8; bits <= 256; bits += 8 {
		n := strconv.Itoa(bits)
		words["int"+n] = struct{}{}
		words["uint"+n] = struct{}{}
	}
	for size := 1; size <= 32; size++ {
		words["bytes"+strconv.Itoa(size)] = struct{}{}
	}
	return words
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsType reports whether word is an elementary type keyword.
func IsType(word string) bool {
	_, ok := typeWords[word]
	return ok
}

// IsReserved reports whether word is a reserve (modifier) keyword.
func IsReserved(word string) bool {
	_, ok := reserveWords[word]
	return ok
}

// sentinels lists the bytes accepted as end-of-input marker: none of them
// can occur in normalized Solidity outside comments.
const sentinels = "$#@`\\"

// ValidSentinel reports whether c can terminate a normalized buffer.
func ValidSentinel(c byte) bool {
	return strings.IndexByte(sentinels, c) >= 0
}

func isLimiter(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']':
		return true
	}
	return false
}

func isCloser(word string) bool {
	return word == ")" || word == "]" || word == "}"
}

// openerOf maps a closing bracket to the opener it must match.
func openerOf(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}
