// Package selector derives ABI signatures, 4-byte function/error selectors
// and event topics from parsed declarations.
package selector

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/VectorBits/solo/src/internal/parser"
)

// Kind of an Entry.
const (
	KindFunction = "function"
	KindEvent    = "event"
	KindError    = "error"
)

// Entry is one externally visible ABI item.
type Entry struct {
	Contract  string `json:"contract" yaml:"contract"`
	Kind      string `json:"kind" yaml:"kind"`
	Signature string `json:"signature" yaml:"signature"`
	// Selector is 4 bytes for functions and errors, the full topic hash for events.
	Selector string `json:"selector" yaml:"selector"`
}

var aliases = map[string]string{
	"uint": "uint256",
	"int":  "int256",
	"byte": "bytes1",
}

// CanonicalType returns the ABI spelling of a parameter type. User-defined
// types are left as written; Derive resolves them against their declarations.
func CanonicalType(p parser.Parameter) string {
	var idx *typeIndex
	return idx.canonical(p.Type, p.Modifiers, p.Dims, 0)
}

// Signature renders name(type1,type2,...).
func Signature(name string, params []parser.Parameter) string {
	var idx *typeIndex
	return idx.signature(name, params)
}

// FunctionSelector is the first four bytes of keccak256(sig), hex encoded.
func FunctionSelector(sig string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(sig))[:4])
}

// EventTopic is keccak256(sig), the topic0 of a non-anonymous event.
func EventTopic(sig string) common.Hash {
	return crypto.Keccak256Hash([]byte(sig))
}

// externallyVisible reports whether fn gets a dispatch selector. Interface
// members without a visibility keyword are external.
func externallyVisible(kind parser.DeclKind, fn parser.Function) bool {
	if fn.Name == "fallback" || fn.Name == "receive" {
		return false
	}
	visibility := ""
	for _, m := range fn.Modifiers {
		switch m {
		case "public", "external", "internal", "private":
			visibility = m
		}
	}
	if visibility == "" {
		return kind == parser.DeclInterface
	}
	return visibility == "public" || visibility == "external"
}

// Derive lists the selectors of every contract-like declaration, in
// declaration order: functions, then events, then errors. Contract and
// interface types encode as address, enums as uint8 and structs as tuples.
func Derive(decls []parser.Declaration) []Entry {
	idx := newTypeIndex(decls)
	var entries []Entry
	for _, d := range decls {
		if d.Body == nil {
			continue
		}
		for _, fn := range d.Body.Functions {
			if !externallyVisible(d.Type, fn) {
				continue
			}
			sig := idx.signature(fn.Name, fn.Parameters)
			entries = append(entries, Entry{Contract: d.Name, Kind: KindFunction, Signature: sig, Selector: FunctionSelector(sig)})
		}
		for _, ev := range d.Body.Events {
			sig := idx.signature(ev.Name, ev.Parameters)
			entries = append(entries, Entry{Contract: d.Name, Kind: KindEvent, Signature: sig, Selector: EventTopic(sig).Hex()})
		}
		for _, e := range d.Body.Errors {
			sig := idx.signature(e.Name, e.Parameters)
			entries = append(entries, Entry{Contract: d.Name, Kind: KindError, Signature: sig, Selector: FunctionSelector(sig)})
		}
	}
	return entries
}
