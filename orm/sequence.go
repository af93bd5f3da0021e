package orm

import (
	"errors"
	"fmt"
)

type Identifiable[ID comparable] interface {
	GetID() ID
}

var ErrNotFound = errors.New("orm: item not found")

// Sequence is an ordered slice of identifiable models.
// Order is insertion order unless changed by Move.
// Methods that change membership or order return a new backing slice,
// so a caller holding the old value never observes a partial change.
type Sequence[M Identifiable[ID], ID comparable] []M

func (s Sequence[M, ID]) Len() int {
	return len(s)
}

// IndexOf returns the position of id, or -1
func (s Sequence[M, ID]) IndexOf(id ID) int {
	for i, m := range s {
		if m.GetID() == id {
			return i
		}
	}
	return -1
}

func (s Sequence[M, ID]) Has(id ID) bool {
	return s.IndexOf(id) >= 0
}

func (s Sequence[M, ID]) Find(id ID) (M, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s[i], true
	}
	var zero M
	return zero, false
}

// Append adds m at the tail. A duplicate id is rejected.
func (s Sequence[M, ID]) Append(m M) (Sequence[M, ID], error) {
	if s.Has(m.GetID()) {
		return s, fmt.Errorf("orm: duplicate id %v", m.GetID())
	}
	out := make(Sequence[M, ID], len(s), len(s)+1)
	copy(out, s)
	return append(out, m), nil
}

// Replace swaps the model carrying the same id in place, keeping its position
func (s Sequence[M, ID]) Replace(m M) (Sequence[M, ID], error) {
	i := s.IndexOf(m.GetID())
	if i < 0 {
		return s, fmt.Errorf("%w: %v", ErrNotFound, m.GetID())
	}
	out := s.Clone()
	out[i] = m
	return out, nil
}

// Remove drops the model with id. Relative order of the rest is kept.
func (s Sequence[M, ID]) Remove(id ID) (Sequence[M, ID], error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	out := make(Sequence[M, ID], 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}

// Move relocates the model at index `from` to index `to`,
// the same splice-out/splice-in semantics as a drag-and-drop list
func (s Sequence[M, ID]) Move(from int, to int) (Sequence[M, ID], error) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return s, fmt.Errorf("orm: move %d -> %d out of range [0,%d)", from, to, len(s))
	}
	out := s.Clone()
	if from == to {
		return out, nil
	}
	m := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = m
	return out, nil
}

func (s Sequence[M, ID]) Clone() Sequence[M, ID] {
	if s == nil {
		return nil
	}
	return append(make(Sequence[M, ID], 0, len(s)), s...)
}

func (s Sequence[M, ID]) IDs() []ID {
	ids := make([]ID, len(s))
	for i, m := range s {
		ids[i] = m.GetID()
	}
	return ids
}

// ToIDMap indexes models by id. Later duplicates win.
func ToIDMap[M Identifiable[ID], ID comparable](items []M) map[ID]M {
	idItems := make(map[ID]M, len(items))
	for _, m := range items {
		idItems[m.GetID()] = m
	}
	return idItems
}
