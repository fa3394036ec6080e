package selector

import (
	"strings"

	"github.com/VectorBits/solo/src/internal/parser"
)

// maxTupleDepth bounds struct expansion; recursive structs cannot appear in
// an external signature anyway.
const maxTupleDepth = 16

// typeIndex maps user-defined type names of one source unit to what the ABI
// encodes them as.
type typeIndex struct {
	addresses map[string]bool
	enums     map[string]bool
	structs   map[string][]parser.StructField
}

func newTypeIndex(decls []parser.Declaration) *typeIndex {
	idx := &typeIndex{
		addresses: make(map[string]bool),
		enums:     make(map[string]bool),
		structs:   make(map[string][]parser.StructField),
	}
	for _, d := range decls {
		switch d.Type {
		case parser.DeclContract, parser.DeclInterface:
			idx.addresses[d.Name] = true
		}
		if d.Body == nil {
			continue
		}
		for _, e := range d.Body.Enums {
			idx.enums[e.Name] = true
		}
		for _, s := range d.Body.Structs {
			idx.structs[s.Name] = s.Fields
		}
	}
	return idx
}

// elementary resolves the element type, without array suffixes.
func (idx *typeIndex) elementary(typ string, depth int) string {
	if a, ok := aliases[typ]; ok {
		return a
	}
	if idx == nil {
		return typ
	}
	// Lib.S and IERC20 resolve by their last segment
	name := typ
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	switch {
	case idx.addresses[name]:
		return "address"
	case idx.enums[name]:
		return "uint8"
	}
	fields, ok := idx.structs[name]
	if !ok || depth >= maxTupleDepth {
		return typ
	}
	types := make([]string, 0, len(fields))
	for _, f := range fields {
		types = append(types, idx.canonical(f.Type, f.Modifiers, f.Dims, depth+1))
	}
	return "(" + strings.Join(types, ",") + ")"
}

func (idx *typeIndex) canonical(typ string, modifiers, dims []string, depth int) string {
	t := idx.elementary(typ, depth)
	if len(dims) > 0 {
		for _, d := range dims {
			t += "[" + d + "]"
		}
		return t
	}
	for _, m := range modifiers {
		if m == "array" {
			t += "[]"
		}
	}
	return t
}

func (idx *typeIndex) signature(name string, params []parser.Parameter) string {
	types := make([]string, 0, len(params))
	for _, p := range params {
		types = append(types, idx.canonical(p.Type, p.Modifiers, p.Dims, 0))
	}
	return name + "(" + strings.Join(types, ",") + ")"
}
