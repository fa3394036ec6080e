package parser

// BracketStack is the LIFO of opener symbols shared by every handler of one
// parse. Positions passed to it are only used to annotate errors.
type BracketStack struct {
	items []byte
}

func NewBracketStack() *BracketStack {
	return &BracketStack{items: make([]byte, 0, 16)}
}

func (s *BracketStack) Push(opener byte) {
	s.items = append(s.items, opener)
}

func (s *BracketStack) Pop(pos int) (byte, error) {
	if len(s.items) == 0 {
		return 0, structuralf(pos, "pop on empty bracket stack")
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, nil
}

func (s *BracketStack) Peek(pos int) (byte, error) {
	if len(s.items) == 0 {
		return 0, structuralf(pos, "peek on empty bracket stack")
	}
	return s.items[len(s.items)-1], nil
}

func (s *BracketStack) Depth() int {
	return len(s.items)
}

// Expect verifies that the top of the stack is opener and pops it.
func (s *BracketStack) Expect(opener byte, pos int) error {
	top, err := s.Peek(pos)
	if err != nil {
		return err
	}
	if top != opener {
		return structuralf(pos, "expected %q on bracket stack, found %q", opener, top)
	}
	_, err = s.Pop(pos)
	return err
}
