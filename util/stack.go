package util

import "slices"

type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	defer func() {
		s.items = s.items[:lastIndex]
	}()
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}

// From returns a copy of the items from the first one matching f to the top
// of the stack, or nil if none matches
func (s *Stack[A]) From(f func(A) bool) []A {
	i := slices.IndexFunc(s.items, f)
	if i < 0 {
		return nil
	}
	return slices.Clone(s.items[i:])
}
