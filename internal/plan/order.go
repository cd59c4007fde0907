package plan

import (
	"errors"
	"fmt"
	"slices"

	"slicegen/internal/catalog"
)

// orderFamilies returns set in emission order: every family after the
// families it requires, ties broken by catalogue order. The result depends
// only on the contents of set, never on its order.
func orderFamilies(set []catalog.Family) ([]catalog.Family, error) {
	nodes := slices.Clone(set)
	slices.Sort(nodes)
	nodes = slices.Compact(nodes)

	index := make(map[catalog.Family]int, len(nodes))
	for i, f := range nodes {
		index[f] = i
	}

	order, err := topoSort(len(nodes), func(i int) []int {
		var deps []int

		for _, r := range catalog.RuleOf(nodes[i]).Requires {
			if j, ok := index[r]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	res := make([]catalog.Family, 0, len(order))
	for _, i := range order {
		res = append(res, nodes[i])
	}

	return res, nil
}

// topoSort returns indices in dependency order.
//
// depsFn(i) yields indices that must come before i. When multiple nodes are
// ready the smallest index wins, so the result is deterministic. A cycle is
// an error.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("cycle detected")
	}

	return order, nil
}
