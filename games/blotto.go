package games

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret"
)

// BlottoAllocations returns every way to allocate units soldiers
// to the given number of battlefields, in lexicographic order.
func BlottoAllocations(units, battlefields int) [][]int {
	var result [][]int
	current := make([]int, battlefields)
	var enumerate func(field, remaining int)
	enumerate = func(field, remaining int) {
		if field == battlefields-1 {
			current[field] = remaining
			result = append(result, append([]int(nil), current...))
			return
		}

		for n := 0; n <= remaining; n++ {
			current[field] = n
			enumerate(field+1, remaining-n)
		}
	}

	enumerate(0, units)
	return result
}

// ColonelBlotto returns the two-player Colonel Blotto game in which each player
// simultaneously allocates units soldiers to battlefields. A battlefield is
// won by the player who sends more soldiers to it. The player who wins more
// battlefields receives 1 and the other -1; otherwise both receive 0.
//
// Actions are indexed by BlottoAllocations(units, battlefields).
func ColonelBlotto(units, battlefields int) (*regret.Tensor, error) {
	if units < 1 || battlefields < 1 {
		return nil, errors.Errorf("colonel blotto requires positive units and battlefields, got %d and %d",
			units, battlefields)
	}

	allocations := BlottoAllocations(units, battlefields)
	n := len(allocations)
	data := make([]float64, 0, n*n*2)
	for _, a := range allocations {
		for _, b := range allocations {
			u := blottoOutcome(a, b)
			data = append(data, u, -u)
		}
	}

	return regret.NewTensor([]int{n, n, 2}, data)
}

func blottoOutcome(a, b []int) float64 {
	net := 0
	for i := range a {
		if a[i] > b[i] {
			net++
		} else if a[i] < b[i] {
			net--
		}
	}

	switch {
	case net > 0:
		return 1
	case net < 0:
		return -1
	default:
		return 0
	}
}
