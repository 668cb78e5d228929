package portspec

import (
	"fmt"
	"strings"
)

// Pair forwards Source on the host side to Dest inside the container.
type Pair struct {
	Source int
	Dest   int
}

// Mapping is an ordered set of pairs with unique source ports. The zero
// value is an empty mapping ready to use.
type Mapping struct {
	pairs []Pair
	index map[int]int
}

// Add appends source -> dest. It returns false, leaving the mapping
// unchanged, when source is already mapped.
func (m *Mapping) Add(source, dest int) bool {
	if m.index == nil {
		m.index = make(map[int]int)
	}
	if _, ok := m.index[source]; ok {
		return false
	}
	m.index[source] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Source: source, Dest: dest})
	return true
}

// Pairs returns the pairs in insertion order.
func (m Mapping) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Len returns the number of pairs.
func (m Mapping) Len() int {
	return len(m.pairs)
}

func (m Mapping) String() string {
	parts := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		parts[i] = fmt.Sprintf("%d:%d", p.Source, p.Dest)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Equal reports whether both mappings hold the same pairs in the same order.
func (m Mapping) Equal(o Mapping) bool {
	if len(m.pairs) != len(o.pairs) {
		return false
	}
	for i := range m.pairs {
		if m.pairs[i] != o.pairs[i] {
			return false
		}
	}
	return true
}
