// SPDX-License-Identifier: MIT

package alphabet

import "sort"

// Ordinal returns the fixed ordinal of a literal: the sum of its code points.
func Ordinal(l Literal) int {
	sum := 0
	for _, r := range string(l) {
		sum += int(r)
	}
	return sum
}

// Weight returns the sum of the ordinals of the literals true in v.
func Weight(a Alphabet, v Valuation) int {
	w := 0
	for i, l := range a.lits {
		if v.Has(i) {
			w += Ordinal(l)
		}
	}
	return w
}

// Edges enumerates every valuation of a in canonical order.
//
// Product order is generated first (literal 0 varies slowest, true before
// false), then stable-sorted by Weight so ties keep product order.
func Edges(a Alphabet) []Valuation {
	n := a.Len()
	if n == 0 {
		return nil
	}
	total := 1 << uint(n)
	edges := make([]Valuation, 0, total)
	full := Valuation(total - 1)
	// counting k upward with literal 0 as the most significant position and
	// "true" mapped to 0 reproduces product([True, False], repeat=n)
	for k := 0; k < total; k++ {
		var v Valuation
		for i := 0; i < n; i++ {
			if k&(1<<uint(n-1-i)) != 0 {
				v |= 1 << uint(i)
			}
		}
		edges = append(edges, full^v)
	}

	weights := make(map[Valuation]int, total)
	for _, v := range edges {
		weights[v] = Weight(a, v)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return weights[edges[i]] < weights[edges[j]]
	})
	return edges
}
