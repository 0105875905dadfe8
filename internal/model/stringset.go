package model

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// ErrEmptyValue is returned when a blank string is added to an OrderedSet
var ErrEmptyValue = errors.New("value must not be empty")

// OrderedSet is a set of unique strings that remembers insertion order.
// Membership is exact and case-sensitive.
type OrderedSet struct {
	items []string
	index map[string]int
}

// NewOrderedSet build a set from values, skipping blanks and duplicates.
func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]int, len(values))}
	for _, v := range values {
		_, _ = s.Add(v)
	}
	return s
}

// Add trims value and append it if not already present.
func (s *OrderedSet) Add(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, ErrEmptyValue
	}
	if _, ok := s.index[value]; ok {
		return false, nil
	}
	s.index[value] = len(s.items)
	s.items = append(s.items, value)
	return true, nil
}

// Remove deletes value by exact match
func (s *OrderedSet) Remove(value string) bool {
	i, ok := s.index[value]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, value)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Contains reports exact membership
func (s *OrderedSet) Contains(value string) bool {
	_, ok := s.index[value]
	return ok
}

// Len returns number of items
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Values returns a copy of items in insertion order, never nil.
func (s *OrderedSet) Values() pq.StringArray {
	out := make(pq.StringArray, len(s.items))
	copy(out, s.items)
	return out
}
