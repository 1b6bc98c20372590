package splitter

import (
	"cmp"
	"slices"

	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
)

// Tier groups delivery methods supported by the same number of basket products.
type Tier struct {
	Occurrences int
	Methods     []string
}

// Rank counts, for every delivery method, how many basket products list it and
// returns the methods grouped into tiers ordered by descending count. Products
// missing from table contribute nothing. Members of a tier keep the order in
// which the counting pass first met them.
func Rank(basket []string, table deliveryconfig.Table) []Tier {
	counts := make(map[string]int)
	seen := make([]string, 0)
	for _, product := range basket {
		for _, method := range table[product] {
			if _, ok := counts[method]; !ok {
				seen = append(seen, method)
			}
			counts[method]++
		}
	}

	slices.SortStableFunc(seen, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})

	tiers := make([]Tier, 0)
	for _, method := range seen {
		count := counts[method]
		if n := len(tiers); n > 0 && tiers[n-1].Occurrences == count {
			tiers[n-1].Methods = append(tiers[n-1].Methods, method)
			continue
		}
		tiers = append(tiers, Tier{Occurrences: count, Methods: []string{method}})
	}

	return tiers
}
