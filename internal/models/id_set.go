package models

import "sort"

// IDSet is a value set of route ids. The zero value is an empty set, and
// every mutating method returns a new set leaving the receiver untouched.
type IDSet struct {
	ids map[int]struct{}
}

// NewIDSet creates a set holding the given ids
func NewIDSet(ids ...int) IDSet {
	s := IDSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains checks if id is in the set
func (s IDSet) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids
func (s IDSet) Len() int {
	return len(s.ids)
}

// Add returns a set that also contains id
func (s IDSet) Add(id int) IDSet {
	if s.Contains(id) {
		return s
	}
	out := s.copy(1)
	out.ids[id] = struct{}{}
	return out
}

// Remove returns a set without id
func (s IDSet) Remove(id int) IDSet {
	if !s.Contains(id) {
		return s
	}
	out := s.copy(0)
	delete(out.ids, id)
	return out
}

// Toggle adds id when absent and removes it when present
func (s IDSet) Toggle(id int) IDSet {
	if s.Contains(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}

// Values returns the ids in ascending order
func (s IDSet) Values() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (s IDSet) copy(extra int) IDSet {
	out := IDSet{ids: make(map[int]struct{}, len(s.ids)+extra)}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	return out
}
