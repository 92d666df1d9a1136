package mapslicehelp

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"
)

// LastMax returns the newest key holding the largest value and the number of keys holding it.
// An empty map gives zero values.
func LastMax[K comparable, V constraints.Ordered](m *orderedmap.OrderedMap[K, V]) (key K, val V, ties uint) {
	for p := m.Oldest(); p != nil; p = p.Next() {
		switch {
		case ties == 0 || p.Value > val:
			key, val, ties = p.Key, p.Value, 1
		case p.Value == val:
			key = p.Key
			ties++
		}
	}
	return key, val, ties
}

// Keys returns the keys of m, oldest first.
func Keys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	keys := make([]K, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

func CountFunc[K comparable, V any](m *orderedmap.OrderedMap[K, V], match func(V) bool) int {
	n := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		if match(p.Value) {
			n++
		}
	}
	return n
}

// SumVals adds up all values, oldest first.
func SumVals[K comparable, V constraints.Integer | constraints.Float](m *orderedmap.OrderedMap[K, V]) V {
	var sum V
	for p := m.Oldest(); p != nil; p = p.Next() {
		sum += p.Value
	}
	return sum
}
