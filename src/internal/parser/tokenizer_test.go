package parser

import (
	"reflect"
	"testing"
)

func words(t *testing.T, src string) []string {
	t.Helper()
	p := New(src, Options{})
	var out []string
	pos := 0
	for i := 0; i < 1000; i++ {
		w, next := p.next(pos)
		if p.atEnd(w) {
			return out
		}
		out = append(out, w)
		pos = next
	}
	t.Fatal("tokenizer did not reach the sentinel")
	return nil
}

func TestNextWords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"pragma", "pragma solidity ^0.8.0;", []string{"pragma", "solidity", "^0.8.0", ";"}},
		{"call", "f(a,b)", []string{"f", "(", "a", ",", "b", ")"}},
		{"array", "uint[] arr;", []string{"uint", "[", "]", "arr", ";"}},
		{"braces", "contract C {}", []string{"contract", "C", "{", "}"}},
		{"extra_spaces", "  a   b ", []string{"a", "b"}},
		{"sentinel_present", "a b $", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := words(t, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("words = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextLeavesCursorOnTerminator(t *testing.T) {
	p := New("abc;", Options{})
	w, pos := p.next(0)
	if w != "abc" || pos != 3 {
		t.Fatalf("next = (%q, %d), want (\"abc\", 3)", w, pos)
	}
	w, pos = p.next(pos)
	if w != ";" || pos != 4 {
		t.Fatalf("next = (%q, %d), want (\";\", 4)", w, pos)
	}
}

func TestNextDoesNotAdvancePastSentinel(t *testing.T) {
	p := New("x", Options{})
	_, pos := p.next(0)
	w, end := p.next(pos)
	if !p.atEnd(w) {
		t.Fatalf("expected sentinel, got %q", w)
	}
	again, end2 := p.next(end)
	if !p.atEnd(again) || end2 != end {
		t.Errorf("second read moved cursor from %d to %d", end, end2)
	}
}

func TestPeekDoesNotCommit(t *testing.T) {
	p := New("a b", Options{})
	if got := p.peek(0); got != "a" {
		t.Errorf("peek = %q, want a", got)
	}
	if got, _ := p.next(0); got != "a" {
		t.Errorf("next after peek = %q, want a", got)
	}
}

func TestCustomSentinel(t *testing.T) {
	p := New("pragma x;", Options{Sentinel: '#'})
	if p.buf != "pragma x; #" {
		t.Fatalf("buf = %q", p.buf)
	}
	decls, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(decls) != 1 || decls[0].Content != "x" {
		t.Errorf("decls = %+v", decls)
	}
}

func TestKeywordTables(t *testing.T) {
	for _, w := range []string{"uint", "uint8", "uint256", "int128", "bytes", "bytes1", "bytes32", "address", "bool", "string"} {
		if !IsType(w) {
			t.Errorf("IsType(%q) = false", w)
		}
	}
	for _, w := range []string{"uint7", "bytes33", "MyStruct", "mapping"} {
		if IsType(w) {
			t.Errorf("IsType(%q) = true", w)
		}
	}
	for _, w := range []string{"public", "memory", "indexed", "view", "override"} {
		if !IsReserved(w) {
			t.Errorf("IsReserved(%q) = false", w)
		}
	}
}
