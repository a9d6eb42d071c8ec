// Package set implements a minimal generic set.
package set

import (
	"cmp"
	"slices"
)

type Set[T cmp.Ordered] map[T]struct{}

func New[T cmp.Ordered](elements ...T) Set[T] {
	s := make(Set[T], len(elements))
	s.Add(elements...)
	return s
}

func (s Set[T]) Add(elements ...T) {
	for _, v := range elements {
		s[v] = struct{}{}
	}
}

func (s Set[T]) Del(ele T) {
	delete(s, ele)
}

func (s Set[T]) Has(ele T) bool {
	_, ok := s[ele]
	return ok
}

// ToList returns the elements in ascending order.
func (s Set[T]) ToList() []T {
	list := make([]T, 0, len(s))
	for k := range s {
		list = append(list, k)
	}
	slices.Sort(list)
	return list
}
