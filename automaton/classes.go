// SPDX-License-Identifier: MIT

package automaton

import "strconv"

// Classes partitions the arena into language-equivalence classes by Moore
// refinement. class[i] == class[j] iff states i and j accept the same
// continuations. Classes are numbered by first occurrence, so class[0] == 0.
// A minimal oracle yields one class per state.
func (a *Arena) Classes() []int {
	n := len(a.succ)
	class := make([]int, n)
	for i, ok := range a.accepting {
		if ok {
			class[i] = 1
		}
	}
	count := -1
	buf := make([]byte, 0, 8*(len(a.edges)+1))
	for {
		sig := make(map[string]int, n)
		next := make([]int, n)
		for i, row := range a.succ {
			buf = strconv.AppendInt(buf[:0], int64(class[i]), 36)
			for _, j := range row {
				buf = append(buf, ',')
				buf = strconv.AppendInt(buf, int64(class[j]), 36)
			}
			id, ok := sig[string(buf)]
			if !ok {
				id = len(sig)
				sig[string(buf)] = id
			}
			next[i] = id
		}
		class = next
		if len(sig) == count {
			return class
		}
		count = len(sig)
	}
}

// IsMinimal reports whether no two reachable states are equivalent.
func (a *Arena) IsMinimal() bool {
	seen := make(map[int]bool, len(a.succ))
	for _, c := range a.Classes() {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
