package parser

import (
	"errors"
	"testing"
)

func TestBracketStackLIFO(t *testing.T) {
	s := NewBracketStack()
	s.Push('{')
	s.Push('(')
	s.Push('[')
	if s.Depth() != 3 {
		t.Fatalf("Depth = %d, want 3", s.Depth())
	}

	for _, want := range []byte{'[', '(', '{'} {
		top, err := s.Peek(0)
		if err != nil || top != want {
			t.Fatalf("Peek = (%q, %v), want %q", top, err, want)
		}
		got, err := s.Pop(0)
		if err != nil || got != want {
			t.Fatalf("Pop = (%q, %v), want %q", got, err, want)
		}
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d after draining", s.Depth())
	}
}

func TestBracketStackEmpty(t *testing.T) {
	s := NewBracketStack()
	if _, err := s.Pop(7); !errors.Is(err, ErrStructural) {
		t.Errorf("Pop on empty: err = %v, want ErrStructural", err)
	}
	if _, err := s.Peek(7); !errors.Is(err, ErrStructural) {
		t.Errorf("Peek on empty: err = %v, want ErrStructural", err)
	}

	var perr *Error
	if err := s.Expect('(', 7); !errors.As(err, &perr) || perr.Pos != 7 {
		t.Errorf("Expect on empty: err = %v, want *Error at 7", err)
	}
}

func TestBracketStackExpect(t *testing.T) {
	s := NewBracketStack()
	s.Push('{')
	if err := s.Expect('[', 3); !errors.Is(err, ErrStructural) {
		t.Fatalf("Expect mismatch: err = %v, want ErrStructural", err)
	}
	if s.Depth() != 1 {
		t.Errorf("mismatch popped the stack, Depth = %d", s.Depth())
	}
	if err := s.Expect('{', 4); err != nil {
		t.Fatalf("Expect match: %v", err)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}
